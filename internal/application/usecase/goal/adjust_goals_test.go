package goal

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/finance-tracker/goal-agent/internal/domain/entity"
	"github.com/finance-tracker/goal-agent/internal/domain/valueobject"
)

const adjustBody = `{
	"action": "ADJUST_GOALS",
	"user_id": "user-1",
	"now": "2025-07-03T14:00:00Z",
	"financial_context": {"monthly_surplus": 300000},
	"goals": [
		{"id": 7000, "name": "Car", "saved_amount": 10000, "target_amount": 1000000, "created_at": "2025-01-01", "due_date": "2026-01-01"},
		{"id": 8000, "name": "Trip", "saved_amount": 900, "target_amount": 1000, "created_at": "2025-01-01", "due_date": "2026-01-01"}
	]
}`

func newAdjustUseCase(repo *fakeEpisodicRepository, explainer *fakeExplainer) *AdjustGoalsUseCase {
	clock := fixedClock{now: time.Date(2025, 7, 3, 14, 0, 0, 0, time.UTC)}
	recorder := NewEpisodicRecorder(repo, nil, clock, DefaultSampleSize)
	if explainer == nil {
		return NewAdjustGoalsUseCase(recorder, nil, valueobject.DefaultAllocationConfig(), clock, time.Second)
	}
	return NewAdjustGoalsUseCase(recorder, explainer, valueobject.DefaultAllocationConfig(), clock, time.Second)
}

func TestAdjustGoalsUseCase_Execute(t *testing.T) {
	repo := &fakeEpisodicRepository{}
	uc := newAdjustUseCase(repo, nil)

	output, err := uc.Execute(context.Background(), ActionInput{Payload: decodePayload(t, adjustBody)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Adjustments) != 2 {
		t.Fatalf("expected 2 adjustments, got %d", len(output.Adjustments))
	}
	if output.Adjustments[0].GoalID != 7000 || output.Adjustments[0].AllocatedAmount != 150000 {
		t.Errorf("unexpected first adjustment %+v", output.Adjustments[0])
	}
	if output.Adjustments[1].GoalID != 8000 || output.Adjustments[1].AllocatedAmount != 60000 {
		t.Errorf("unexpected second adjustment %+v", output.Adjustments[1])
	}
	if output.SurplusUsed != 210000 {
		t.Errorf("expected surplus used 210000, got %v", output.SurplusUsed)
	}
	if output.EmotionalMessage != adjustEmotionalMessage {
		t.Errorf("unexpected emotional message %q", output.EmotionalMessage)
	}
	if output.Explanation != "" {
		t.Errorf("expected no explanation without a collaborator, got %q", output.Explanation)
	}

	events := repo.recorded()
	if len(events) != 1 {
		t.Fatalf("expected 1 recorded event, got %d", len(events))
	}
	e := events[0]
	if e.EventType != entity.EventTypeAdjustGoals || e.UserID != "user-1" || e.GoalName != "ADJUST_GOALS" {
		t.Errorf("unexpected event %+v", e)
	}

	var out AdjustGoalsOutput
	if err := json.Unmarshal(e.PayloadOut, &out); err != nil {
		t.Fatalf("payload_out is not valid JSON: %v", err)
	}
	if out.SurplusUsed != output.SurplusUsed {
		t.Errorf("recorded payload_out differs from the response")
	}
}

func TestAdjustGoalsUseCase_NoSurplus(t *testing.T) {
	uc := newAdjustUseCase(&fakeEpisodicRepository{}, nil)
	payload := decodePayload(t, adjustBody)
	payload["financial_context"] = map[string]any{"monthly_surplus": json.Number("-50")}

	output, err := uc.Execute(context.Background(), ActionInput{Payload: payload})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, a := range output.Adjustments {
		if a.AllocatedAmount != 0 {
			t.Errorf("goal %d: expected 0, got %v", a.GoalID, a.AllocatedAmount)
		}
	}
	if output.SurplusUsed != 0 {
		t.Errorf("expected surplus used 0, got %v", output.SurplusUsed)
	}
}

func TestAdjustGoalsUseCase_Explanation(t *testing.T) {
	t.Run("explanation is attached", func(t *testing.T) {
		explainer := &fakeExplainer{available: true, text: "  Most of the surplus goes to your car.  "}
		uc := newAdjustUseCase(&fakeEpisodicRepository{}, explainer)

		output, err := uc.Execute(context.Background(), ActionInput{Payload: decodePayload(t, adjustBody)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Explanation != "Most of the surplus goes to your car." {
			t.Errorf("unexpected explanation %q", output.Explanation)
		}
		if len(explainer.requests) != 1 {
			t.Fatalf("expected 1 explanation request, got %d", len(explainer.requests))
		}
		req := explainer.requests[0]
		if req.UserID != "user-1" || len(req.Goals) != 2 || req.Goals[0].Name != "Car" {
			t.Errorf("unexpected explanation request %+v", req)
		}
		if req.Tone != entity.DefaultRecommendedTone {
			t.Errorf("expected default tone, got %q", req.Tone)
		}
	})

	t.Run("explainer failure keeps the allocation", func(t *testing.T) {
		explainer := &fakeExplainer{available: true, err: errors.New("HTTP 429: quota exceeded")}
		uc := newAdjustUseCase(&fakeEpisodicRepository{}, explainer)

		output, err := uc.Execute(context.Background(), ActionInput{Payload: decodePayload(t, adjustBody)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Explanation != "" {
			t.Errorf("expected empty explanation, got %q", output.Explanation)
		}
		if output.SurplusUsed != 210000 {
			t.Errorf("expected surplus used 210000, got %v", output.SurplusUsed)
		}
	})

	t.Run("unavailable explainer is not called", func(t *testing.T) {
		explainer := &fakeExplainer{available: false, text: "unused"}
		uc := newAdjustUseCase(&fakeEpisodicRepository{}, explainer)

		if _, err := uc.Execute(context.Background(), ActionInput{Payload: decodePayload(t, adjustBody)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(explainer.requests) != 0 {
			t.Errorf("expected no explanation requests, got %d", len(explainer.requests))
		}
	})
}

func TestAdjustGoalsUseCase_RecordingFailureIsNotFatal(t *testing.T) {
	repo := &fakeEpisodicRepository{createErr: errors.New("database is down"), findErr: errors.New("database is down")}
	uc := newAdjustUseCase(repo, nil)

	output, err := uc.Execute(context.Background(), ActionInput{Payload: decodePayload(t, adjustBody)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Adjustments) != 2 {
		t.Errorf("expected 2 adjustments, got %d", len(output.Adjustments))
	}
}
