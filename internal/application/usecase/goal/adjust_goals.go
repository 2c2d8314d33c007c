package goal

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	"github.com/finance-tracker/goal-agent/internal/domain/entity"
	"github.com/finance-tracker/goal-agent/internal/domain/valueobject"
)

const (
	// DefaultExplanationTimeout bounds the best-effort explanation call.
	DefaultExplanationTimeout = 10 * time.Second

	adjustEmotionalMessage = "Great work this month. Your goals keep moving forward sustainably and without pressure."
	adjustEventMessage     = "Automatic goal adjustment with monthly surplus"
)

// AdjustGoalsOutput represents the output of a surplus adjustment.
type AdjustGoalsOutput struct {
	Adjustments      []valueobject.Allocation `json:"adjustments"`
	SurplusUsed      float64                  `json:"surplus_used"`
	EmotionalMessage string                   `json:"emotional_message"`
	Explanation      string                   `json:"explanation,omitempty"`
}

// AdjustGoalsUseCase distributes the monthly surplus across the supplied goals.
type AdjustGoalsUseCase struct {
	recorder       *EpisodicRecorder
	explainer      adapter.ExplanationService
	allocation     valueobject.AllocationConfig
	clock          adapter.Clock
	explainTimeout time.Duration
}

// NewAdjustGoalsUseCase creates a new AdjustGoalsUseCase instance. explainer may be nil.
func NewAdjustGoalsUseCase(
	recorder *EpisodicRecorder,
	explainer adapter.ExplanationService,
	allocation valueobject.AllocationConfig,
	clock adapter.Clock,
	explainTimeout time.Duration,
) *AdjustGoalsUseCase {
	if explainTimeout <= 0 {
		explainTimeout = DefaultExplanationTimeout
	}
	return &AdjustGoalsUseCase{
		recorder:       recorder,
		explainer:      explainer,
		allocation:     allocation,
		clock:          clock,
		explainTimeout: explainTimeout,
	}
}

// Execute scores every goal and allocates the surplus. The explanation never alters the allocation.
func (uc *AdjustGoalsUseCase) Execute(ctx context.Context, input ActionInput) (*AdjustGoalsOutput, error) {
	logger := slog.Default().With("action", ActionAdjustGoals)

	req, err := loadRequest(input.Payload, uc.clock, logger)
	if err != nil {
		return nil, err
	}
	logger = logger.With("user_id", req.userID)

	results := make([]valueobject.ATRResult, 0, len(req.goals))
	for _, g := range req.goals {
		results = append(results, valueobject.ComputeATR(g, req.now))
	}

	plan := valueobject.Allocate(results, req.financial.MonthlySurplus, uc.allocation)

	output := &AdjustGoalsOutput{
		Adjustments:      plan.Allocations,
		SurplusUsed:      plan.SurplusUsed,
		EmotionalMessage: adjustEmotionalMessage,
	}

	samples := uc.recorder.RecentSamples(ctx, req.userID)
	output.Explanation = uc.explain(ctx, req, plan, samples, logger)

	uc.recorder.Record(ctx, req.userID, entity.EventTypeAdjustGoals, adjustEventMessage, input.Payload, output)

	logger.Info("Goals adjusted",
		"goal_count", len(plan.Allocations),
		"monthly_surplus", req.financial.MonthlySurplus,
		"surplus_used", plan.SurplusUsed,
	)

	return output, nil
}

// explain asks the collaborator for a narrative, returning "" on any failure.
func (uc *AdjustGoalsUseCase) explain(ctx context.Context, req *request, plan valueobject.AllocationPlan, samples []EpisodicSample, logger *slog.Logger) string {
	if uc.explainer == nil || !uc.explainer.IsAvailable() || len(plan.Allocations) == 0 {
		return ""
	}

	goals := make([]adapter.ExplanationGoal, 0, len(plan.Allocations))
	for i, a := range plan.Allocations {
		goals = append(goals, adapter.ExplanationGoal{
			GoalID:          a.GoalID,
			Name:            req.goals[i].Name,
			ATR:             a.ATR,
			Classification:  string(a.Classification),
			AllocatedAmount: a.AllocatedAmount,
			Reason:          a.Reason,
		})
	}

	history := make([]json.RawMessage, 0, len(samples))
	for _, s := range samples {
		if raw, err := json.Marshal(s); err == nil {
			history = append(history, raw)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, uc.explainTimeout)
	defer cancel()

	text, err := uc.explainer.Explain(ctx, &adapter.ExplanationRequest{
		UserID:          req.userID,
		MonthlySurplus:  req.financial.MonthlySurplus,
		SurplusUsed:     plan.SurplusUsed,
		Tone:            req.guidance.RecommendedTone,
		Goals:           goals,
		EpisodicSamples: history,
	})
	if err != nil {
		failure := classifyExplanationError(err)
		logger.Debug("Adjust explanation failed; continuing with deterministic allocations",
			"code", failure.Code,
			"retryable", failure.Retryable,
			"error", err,
		)
		return ""
	}

	return strings.TrimSpace(text)
}
