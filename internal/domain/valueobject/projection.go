package valueobject

import (
	"math"
	"time"

	"github.com/finance-tracker/goal-agent/internal/domain/entity"
)

// RiskLevel is the projected risk of missing a goal.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ProjectionStatus is the projected standing of a goal at its due date.
type ProjectionStatus string

const (
	ProjectionOnTrack  ProjectionStatus = "on_track"
	ProjectionBehind   ProjectionStatus = "behind"
	ProjectionCritical ProjectionStatus = "critical"
)

const (
	// defaultMonthsLeft is assumed when the goal has no usable due date.
	defaultMonthsLeft = 12.0

	// minMonthsLeft keeps imminent or overdue goals off a zero divisor.
	minMonthsLeft = 0.1

	onTrackRatio = 1.0
	behindRatio  = 0.7
)

// Projection estimates where a goal will stand at its due date.
type Projection struct {
	GoalID                   int64            `json:"goal_id"`
	MonthsLeft               float64          `json:"months_left"`
	ExpectedSavingsByDueDate float64          `json:"expected_savings_by_due_date"`
	Ratio                    float64          `json:"ratio"`
	RiskLevel                RiskLevel        `json:"risk_level"`
	Status                   ProjectionStatus `json:"status"`
	ATR                      float64          `json:"atr"`
}

// Project assumes the whole monthly surplus goes to the goal until its due date.
func Project(goal *entity.SavingsGoal, monthlySurplus float64, now time.Time) Projection {
	monthsLeft := defaultMonthsLeft
	if goal.DueDate != nil {
		monthsLeft = math.Max(minMonthsLeft, MonthsUntil(now, *goal.DueDate))
	}

	expected := goal.SavedAmount + monthlySurplus*monthsLeft

	ratio := 0.0
	if goal.HasTarget() {
		ratio = expected / goal.TargetAmount
	}

	risk, status := ClassifyProjection(ratio)
	atr := ComputeATR(goal, now)

	return Projection{
		GoalID:                   goal.ID,
		MonthsLeft:               RoundTo(monthsLeft, 2),
		ExpectedSavingsByDueDate: RoundTo(expected, 2),
		Ratio:                    RoundTo(ratio, 4),
		RiskLevel:                risk,
		Status:                   status,
		ATR:                      RoundTo(atr.ATR, 2),
	}
}

// ClassifyProjection maps an expected/target ratio onto a risk level and status.
func ClassifyProjection(ratio float64) (RiskLevel, ProjectionStatus) {
	switch {
	case ratio >= onTrackRatio:
		return RiskLow, ProjectionOnTrack
	case ratio >= behindRatio:
		return RiskMedium, ProjectionBehind
	default:
		return RiskHigh, ProjectionCritical
	}
}
