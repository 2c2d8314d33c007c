package goal

import (
	"context"
	"errors"
	"log/slog"

	"github.com/finance-tracker/goal-agent/internal/application/adapter"
	"github.com/finance-tracker/goal-agent/internal/domain/entity"
	domainerror "github.com/finance-tracker/goal-agent/internal/domain/error"
	"github.com/finance-tracker/goal-agent/internal/domain/valueobject"
)

const (
	trackEventMessage          = "Individual goal tracking"
	trackMissingIDEventMessage = "Tracking failed: missing goal_id"
	trackNotFoundEventMessage  = "Tracking failed: goal missing"
)

var trackMessages = map[valueobject.ProjectionStatus]string{
	valueobject.ProjectionOnTrack:  "You're doing great! Keep up the current pace.",
	valueobject.ProjectionBehind:   "You're close. Consider small adjustments or a slightly higher monthly saving.",
	valueobject.ProjectionCritical: "This goal needs a rethink or a stronger monthly budget to avoid frustration.",
}

// TrackGoalOutput represents the projection of a single goal.
type TrackGoalOutput struct {
	GoalID          int64                        `json:"goal_id"`
	Status          valueobject.ProjectionStatus `json:"status"`
	Message         string                       `json:"message"`
	Projections     valueobject.Projection       `json:"projections"`
	EpisodicSamples []EpisodicSample             `json:"episodic_samples"`
}

// trackFailure is stored as payload_out when tracking cannot proceed.
type trackFailure struct {
	Error string `json:"error"`
}

// TrackGoalUseCase projects one goal to its due date.
type TrackGoalUseCase struct {
	recorder *EpisodicRecorder
	clock    adapter.Clock
}

// NewTrackGoalUseCase creates a new TrackGoalUseCase instance.
func NewTrackGoalUseCase(recorder *EpisodicRecorder, clock adapter.Clock) *TrackGoalUseCase {
	return &TrackGoalUseCase{
		recorder: recorder,
		clock:    clock,
	}
}

// Execute looks up goal_id among the supplied goals and projects it with the whole surplus.
func (uc *TrackGoalUseCase) Execute(ctx context.Context, input ActionInput) (*TrackGoalOutput, error) {
	logger := slog.Default().With("action", ActionTrackGoal)

	req, err := loadRequest(input.Payload, uc.clock, logger)
	if err != nil {
		return nil, err
	}

	goalID, err := valueobject.CoerceGoalID(input.Payload["goal_id"])
	if errors.Is(err, valueobject.ErrMissingGoalID) {
		return nil, uc.fail(ctx, req.userID, input.Payload, trackMissingIDEventMessage, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalID,
			"goal_id required",
			domainerror.ErrMissingGoalID,
		))
	}

	var g *entity.SavingsGoal
	if err == nil {
		g = FindGoal(req.goals, goalID)
	}
	if g == nil {
		return nil, uc.fail(ctx, req.userID, input.Payload, trackNotFoundEventMessage, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			"goal not found in provided goals",
			domainerror.ErrGoalNotFound,
		))
	}

	projection := valueobject.Project(g, req.financial.MonthlySurplus, req.now)

	output := &TrackGoalOutput{
		GoalID:          g.ID,
		Status:          projection.Status,
		Message:         trackMessages[projection.Status],
		Projections:     projection,
		EpisodicSamples: uc.recorder.RecentSamples(ctx, req.userID),
	}

	uc.recorder.Record(ctx, req.userID, entity.EventTypeTrackGoal, trackEventMessage, input.Payload, output)

	logger.Info("Goal tracked",
		"user_id", req.userID,
		"goal_id", g.ID,
		"status", projection.Status,
		"risk_level", projection.RiskLevel,
	)

	return output, nil
}

// fail records the failed attempt before handing the error back.
func (uc *TrackGoalUseCase) fail(ctx context.Context, userID string, payload map[string]any, message string, goalErr *domainerror.GoalError) error {
	uc.recorder.Record(ctx, userID, entity.EventTypeTrackGoal, message, payload, trackFailure{Error: goalErr.Message})
	return goalErr
}
