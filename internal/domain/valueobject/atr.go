// Package valueobject contains domain value objects and the goal progress engine.
package valueobject

import (
	"time"

	"github.com/finance-tracker/goal-agent/internal/domain/entity"
)

// Classification is the progress band derived from a goal's ATR.
type Classification string

const (
	ClassificationAhead          Classification = "ahead"
	ClassificationBalanced       Classification = "balanced"
	ClassificationSlightlyBehind Classification = "slightly_behind"
	ClassificationBehind         Classification = "behind"
	ClassificationCritical       Classification = "critical"
)

// Band boundaries. Lower bounds are inclusive; the balanced band includes its upper bound.
const (
	aheadAbove         = 1.1
	balancedFrom       = 0.9
	slightlyBehindFrom = 0.7
	behindFrom         = 0.5
)

// ATRResult is the Advance-Time Ratio score of one goal at a given instant.
type ATRResult struct {
	GoalID         int64          `json:"goal_id"`
	ProgressRatio  float64        `json:"progress_ratio"`
	TimeRatio      float64        `json:"time_ratio"`
	ATR            float64        `json:"atr"`
	Classification Classification `json:"classification"`
}

// ProgressRatio returns saved/target, or 0 when the target is not positive.
func ProgressRatio(saved, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return saved / target
}

// ComputeATR scores a goal's financial progress against its elapsed time.
func ComputeATR(goal *entity.SavingsGoal, now time.Time) ATRResult {
	progress := ProgressRatio(goal.SavedAmount, goal.TargetAmount)
	timeRatio := ElapsedRatio(goal.CreatedAt, goal.DueDate, now)
	atr := progress / timeRatio

	return ATRResult{
		GoalID:         goal.ID,
		ProgressRatio:  progress,
		TimeRatio:      timeRatio,
		ATR:            atr,
		Classification: ClassifyATR(atr),
	}
}

// ClassifyATR maps an ATR value onto its progress band.
func ClassifyATR(atr float64) Classification {
	switch {
	case atr > aheadAbove:
		return ClassificationAhead
	case atr >= balancedFrom:
		return ClassificationBalanced
	case atr >= slightlyBehindFrom:
		return ClassificationSlightlyBehind
	case atr >= behindFrom:
		return ClassificationBehind
	default:
		return ClassificationCritical
	}
}
