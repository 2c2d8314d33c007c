package goal

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	"github.com/finance-tracker/goal-agent/internal/domain/entity"
	"github.com/finance-tracker/goal-agent/internal/domain/valueobject"
)

const buildContextEventMessage = "Enriched goal contexts generated"

// BuildGoalContextOutput represents the enriched context of every supplied goal.
type BuildGoalContextOutput struct {
	GoalsEnrichedContext []valueobject.EnrichedGoalSnapshot `json:"goals_enriched_context"`
}

// BuildGoalContextUseCase produces machine-consumable goal snapshots.
type BuildGoalContextUseCase struct {
	recorder *EpisodicRecorder
	clock    adapter.Clock
}

// NewBuildGoalContextUseCase creates a new BuildGoalContextUseCase instance.
func NewBuildGoalContextUseCase(recorder *EpisodicRecorder, clock adapter.Clock) *BuildGoalContextUseCase {
	return &BuildGoalContextUseCase{
		recorder: recorder,
		clock:    clock,
	}
}

// Execute builds one snapshot per well-formed goal, in input order.
func (uc *BuildGoalContextUseCase) Execute(ctx context.Context, input ActionInput) (*BuildGoalContextOutput, error) {
	logger := slog.Default().With("action", ActionBuildGoalContext)

	req, err := loadRequest(input.Payload, uc.clock, logger)
	if err != nil {
		return nil, err
	}

	output := &BuildGoalContextOutput{
		GoalsEnrichedContext: valueobject.BuildGoalContext(req.goals, req.guidance, req.now),
	}

	uc.recorder.Record(ctx, req.userID, entity.EventTypeBuildGoalContext, buildContextEventMessage, input.Payload, output)

	logger.Debug("Goal context built", "user_id", req.userID, "goal_count", len(output.GoalsEnrichedContext))

	return output, nil
}
