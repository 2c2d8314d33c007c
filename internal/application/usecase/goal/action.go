// Package goal contains the goal agent use cases.
package goal

import (
	"fmt"
	"strings"

	domainerror "github.com/finance-tracker/goal-agent/internal/domain/error"
)

// Action names an agent action.
type Action string

const (
	ActionDiscoverGoals    Action = "DISCOVER_GOALS"
	ActionEvaluateGoal     Action = "EVALUATE_GOAL"
	ActionAdjustGoals      Action = "ADJUST_GOALS"
	ActionTrackGoal        Action = "TRACK_GOAL"
	ActionBuildGoalContext Action = "BUILD_GOAL_CONTEXT"
)

// ActionInput is an agent request as decoded from JSON.
// Payload is kept verbatim so it can be stored as the event's payload_in.
type ActionInput struct {
	Payload map[string]any
}

// ParseAction normalizes an action name.
// DISCOVER_GOALS and EVALUATE_GOAL are recognised but only a language model can answer them.
func ParseAction(raw string) (Action, error) {
	action := Action(strings.ToUpper(strings.TrimSpace(raw)))

	switch action {
	case ActionAdjustGoals, ActionTrackGoal, ActionBuildGoalContext:
		return action, nil
	case ActionDiscoverGoals, ActionEvaluateGoal:
		return action, domainerror.NewGoalError(
			domainerror.ErrCodeUnsupportedAction,
			fmt.Sprintf("action %s is not supported by this service", action),
			domainerror.ErrUnsupportedAction,
		)
	case "":
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeUnknownAction,
			"action is required",
			domainerror.ErrUnknownAction,
		)
	default:
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeUnknownAction,
			fmt.Sprintf("unknown action: %s", action),
			domainerror.ErrUnknownAction,
		)
	}
}
