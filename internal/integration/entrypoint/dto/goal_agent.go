package dto

import (
	"encoding/json"
	"time"

	"github.com/finance-tracker/goal-agent/internal/application/usecase/goal"
	"github.com/finance-tracker/goal-agent/internal/domain/entity"
	"github.com/finance-tracker/goal-agent/internal/domain/valueobject"
)

// ActionResponse wraps the result of an action sent to the generic actions endpoint.
type ActionResponse struct {
	Action string `json:"action"`
	Result any    `json:"result"`
}

// AllocationResponse represents one goal's share of the monthly surplus.
type AllocationResponse struct {
	GoalID          int64   `json:"goal_id"`
	AllocatedAmount float64 `json:"allocated_amount"`
	Reason          string  `json:"reason"`
	Classification  string  `json:"classification"`
	ATR             float64 `json:"atr"`
}

// AdjustGoalsResponse represents the response for ADJUST_GOALS.
type AdjustGoalsResponse struct {
	Adjustments      []AllocationResponse `json:"adjustments"`
	SurplusUsed      float64              `json:"surplus_used"`
	EmotionalMessage string               `json:"emotional_message"`
	Explanation      string               `json:"explanation,omitempty"`
}

// ProjectionResponse represents a goal projection.
type ProjectionResponse struct {
	GoalID                   int64   `json:"goal_id"`
	MonthsLeft               float64 `json:"months_left"`
	ExpectedSavingsByDueDate float64 `json:"expected_savings_by_due_date"`
	Ratio                    float64 `json:"ratio"`
	RiskLevel                string  `json:"risk_level"`
	Status                   string  `json:"status"`
	ATR                      float64 `json:"atr"`
}

// TrackGoalResponse represents the response for TRACK_GOAL.
type TrackGoalResponse struct {
	GoalID          int64                 `json:"goal_id"`
	Status          string                `json:"status"`
	Message         string                `json:"message"`
	Projections     ProjectionResponse    `json:"projections"`
	EpisodicSamples []goal.EpisodicSample `json:"episodic_samples"`
}

// GoalContextResponse represents the response for BUILD_GOAL_CONTEXT.
type GoalContextResponse struct {
	GoalsEnrichedContext []valueobject.EnrichedGoalSnapshot `json:"goals_enriched_context"`
}

// EpisodeResponse represents a stored episodic event.
type EpisodeResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	GoalName   string          `json:"goal_name"`
	EventType  string          `json:"event_type"`
	Message    string          `json:"message"`
	PayloadIn  json.RawMessage `json:"payload_in"`
	PayloadOut json.RawMessage `json:"payload_out"`
	CreatedAt  time.Time       `json:"created_at"`
}

// EpisodeListResponse represents the response for listing episodic events.
type EpisodeListResponse struct {
	Episodes []EpisodeResponse `json:"episodes"`
	Count    int               `json:"count"`
}

// ToAdjustGoalsResponse converts an AdjustGoalsOutput to an AdjustGoalsResponse DTO.
func ToAdjustGoalsResponse(output *goal.AdjustGoalsOutput) AdjustGoalsResponse {
	adjustments := make([]AllocationResponse, len(output.Adjustments))
	for i, a := range output.Adjustments {
		adjustments[i] = AllocationResponse{
			GoalID:          a.GoalID,
			AllocatedAmount: a.AllocatedAmount,
			Reason:          a.Reason,
			Classification:  string(a.Classification),
			ATR:             a.ATR,
		}
	}

	return AdjustGoalsResponse{
		Adjustments:      adjustments,
		SurplusUsed:      output.SurplusUsed,
		EmotionalMessage: output.EmotionalMessage,
		Explanation:      output.Explanation,
	}
}

// ToTrackGoalResponse converts a TrackGoalOutput to a TrackGoalResponse DTO.
func ToTrackGoalResponse(output *goal.TrackGoalOutput) TrackGoalResponse {
	p := output.Projections
	samples := output.EpisodicSamples
	if samples == nil {
		samples = []goal.EpisodicSample{}
	}

	return TrackGoalResponse{
		GoalID:  output.GoalID,
		Status:  string(output.Status),
		Message: output.Message,
		Projections: ProjectionResponse{
			GoalID:                   p.GoalID,
			MonthsLeft:               p.MonthsLeft,
			ExpectedSavingsByDueDate: p.ExpectedSavingsByDueDate,
			Ratio:                    p.Ratio,
			RiskLevel:                string(p.RiskLevel),
			Status:                   string(p.Status),
			ATR:                      p.ATR,
		},
		EpisodicSamples: samples,
	}
}

// ToGoalContextResponse converts a BuildGoalContextOutput to a GoalContextResponse DTO.
func ToGoalContextResponse(output *goal.BuildGoalContextOutput) GoalContextResponse {
	snapshots := output.GoalsEnrichedContext
	if snapshots == nil {
		snapshots = []valueobject.EnrichedGoalSnapshot{}
	}
	return GoalContextResponse{GoalsEnrichedContext: snapshots}
}

// ToActionResult converts whichever action ran to its response DTO.
func ToActionResult(output *goal.HandleActionOutput) any {
	switch {
	case output.Adjust != nil:
		return ToAdjustGoalsResponse(output.Adjust)
	case output.Track != nil:
		return ToTrackGoalResponse(output.Track)
	case output.Context != nil:
		return ToGoalContextResponse(output.Context)
	default:
		return nil
	}
}

// ToEpisodeListResponse converts domain EpisodicEvents to an EpisodeListResponse DTO.
func ToEpisodeListResponse(events []*entity.EpisodicEvent) EpisodeListResponse {
	episodes := make([]EpisodeResponse, len(events))
	for i, e := range events {
		episodes[i] = EpisodeResponse{
			ID:         e.ID.String(),
			UserID:     e.UserID,
			GoalName:   e.GoalName,
			EventType:  string(e.EventType),
			Message:    e.Message,
			PayloadIn:  rawOrNull(e.PayloadIn),
			PayloadOut: rawOrNull(e.PayloadOut),
			CreatedAt:  e.CreatedAt,
		}
	}

	return EpisodeListResponse{
		Episodes: episodes,
		Count:    len(episodes),
	}
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
}
