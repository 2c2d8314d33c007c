package goal

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/goal-agent/internal/domain/valueobject"
)

// HandleActionOutput carries the result of whichever action ran.
// Exactly one of the result fields is set.
type HandleActionOutput struct {
	Action  Action
	Adjust  *AdjustGoalsOutput
	Track   *TrackGoalOutput
	Context *BuildGoalContextOutput
}

// Result returns the populated action result.
func (o *HandleActionOutput) Result() any {
	switch {
	case o.Adjust != nil:
		return o.Adjust
	case o.Track != nil:
		return o.Track
	default:
		return o.Context
	}
}

// HandleActionUseCase dispatches an agent request to the use case named by its action.
type HandleActionUseCase struct {
	adjustUseCase  *AdjustGoalsUseCase
	trackUseCase   *TrackGoalUseCase
	contextUseCase *BuildGoalContextUseCase
}

// NewHandleActionUseCase creates a new HandleActionUseCase instance.
func NewHandleActionUseCase(
	adjustUseCase *AdjustGoalsUseCase,
	trackUseCase *TrackGoalUseCase,
	contextUseCase *BuildGoalContextUseCase,
) *HandleActionUseCase {
	return &HandleActionUseCase{
		adjustUseCase:  adjustUseCase,
		trackUseCase:   trackUseCase,
		contextUseCase: contextUseCase,
	}
}

// Execute reads the action from the payload and runs it.
func (uc *HandleActionUseCase) Execute(ctx context.Context, input ActionInput) (*HandleActionOutput, error) {
	action, err := ParseAction(valueobject.CoerceString(input.Payload["action"]))
	if err != nil {
		slog.Warn("Rejected agent action", "action", input.Payload["action"], "error", err)
		return nil, err
	}

	slog.Info("Handling action", "action", action, "user_id", valueobject.CoerceString(input.Payload["user_id"]))

	output := &HandleActionOutput{Action: action}

	switch action {
	case ActionAdjustGoals:
		output.Adjust, err = uc.adjustUseCase.Execute(ctx, input)
	case ActionTrackGoal:
		output.Track, err = uc.trackUseCase.Execute(ctx, input)
	case ActionBuildGoalContext:
		output.Context, err = uc.contextUseCase.Execute(ctx, input)
	}
	if err != nil {
		return nil, err
	}

	return output, nil
}
