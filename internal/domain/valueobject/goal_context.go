package valueobject

import (
	"math"
	"time"

	"github.com/finance-tracker/goal-agent/internal/domain/entity"
)

// GoalStatus is the externally facing performance label of a goal.
type GoalStatus string

const (
	GoalStatusAhead    GoalStatus = "ahead"
	GoalStatusBalanced GoalStatus = "balanced"
	GoalStatusBehind   GoalStatus = "behind"
	GoalStatusCritical GoalStatus = "critical"
)

// TimeRisk describes how little time is left before a goal is due.
type TimeRisk string

const (
	TimeRiskLow    TimeRisk = "low"
	TimeRiskMedium TimeRisk = "medium"
	TimeRiskHigh   TimeRisk = "high"
)

const (
	highTimeRiskMonths   = 1.0
	mediumTimeRiskMonths = 3.0
)

// FinancialState is the money side of an enriched snapshot.
type FinancialState struct {
	SavedAmount           float64 `json:"saved_amount"`
	TargetAmount          float64 `json:"target_amount"`
	ProgressRatio         float64 `json:"progress_ratio"`
	RequiredMonthlySaving float64 `json:"required_monthly_saving"`
}

// TimeState is the calendar side of an enriched snapshot.
type TimeState struct {
	DueDate          *string `json:"due_date"`
	TimeElapsedRatio float64 `json:"time_elapsed_ratio"`
	RemainingMonths  float64 `json:"remaining_months"`
}

// Performance summarises how a goal is tracking.
type Performance struct {
	Status   GoalStatus `json:"status"`
	TimeRisk TimeRisk   `json:"time_risk"`
}

// EnrichedGoalSnapshot is the per-goal context handed to downstream consumers.
type EnrichedGoalSnapshot struct {
	GoalID            int64                    `json:"goal_id"`
	Name              string                   `json:"name"`
	FinancialState    FinancialState           `json:"financial_state"`
	TimeState         TimeState                `json:"time_state"`
	Performance       Performance              `json:"performance"`
	EmotionalGuidance entity.EmotionalGuidance `json:"emotional_guidance"`
}

// BuildGoalContext produces one snapshot per goal, in input order. Nil goals are skipped.
func BuildGoalContext(goals []*entity.SavingsGoal, guidance entity.EmotionalGuidance, now time.Time) []EnrichedGoalSnapshot {
	snapshots := make([]EnrichedGoalSnapshot, 0, len(goals))
	for _, g := range goals {
		if g == nil {
			continue
		}
		snapshots = append(snapshots, buildSnapshot(g, guidance, now))
	}
	return snapshots
}

func buildSnapshot(g *entity.SavingsGoal, guidance entity.EmotionalGuidance, now time.Time) EnrichedGoalSnapshot {
	remainingMonths := 0.0
	if g.DueDate != nil {
		remainingMonths = math.Max(0, MonthsUntil(now, *g.DueDate))
	}

	required := 0.0
	if g.HasTarget() && remainingMonths > 0 {
		required = math.Max(0, (g.TargetAmount-g.SavedAmount)/remainingMonths)
	}

	atr := ComputeATR(g, now)

	var dueDate *string
	if g.DueDateRaw != "" {
		raw := g.DueDateRaw
		dueDate = &raw
	}

	return EnrichedGoalSnapshot{
		GoalID: g.ID,
		Name:   g.Name,
		FinancialState: FinancialState{
			SavedAmount:           g.SavedAmount,
			TargetAmount:          g.TargetAmount,
			ProgressRatio:         RoundTo(atr.ProgressRatio, 4),
			RequiredMonthlySaving: RoundTo(required, 2),
		},
		TimeState: TimeState{
			DueDate:          dueDate,
			TimeElapsedRatio: RoundTo(atr.TimeRatio, 4),
			RemainingMonths:  RoundTo(remainingMonths, 2),
		},
		Performance: Performance{
			Status:   StatusFor(atr.Classification),
			TimeRisk: TimeRiskFor(remainingMonths),
		},
		EmotionalGuidance: guidance,
	}
}

// StatusFor collapses the five ATR bands onto the four external status labels.
func StatusFor(c Classification) GoalStatus {
	switch c {
	case ClassificationAhead:
		return GoalStatusAhead
	case ClassificationSlightlyBehind, ClassificationBehind:
		return GoalStatusBehind
	case ClassificationCritical:
		return GoalStatusCritical
	default:
		return GoalStatusBalanced
	}
}

// TimeRiskFor grades the remaining time before a goal is due.
func TimeRiskFor(remainingMonths float64) TimeRisk {
	switch {
	case remainingMonths <= highTimeRiskMonths:
		return TimeRiskHigh
	case remainingMonths <= mediumTimeRiskMonths:
		return TimeRiskMedium
	default:
		return TimeRiskLow
	}
}
