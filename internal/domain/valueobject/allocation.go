package valueobject

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// AllocationBucket groups progress bands that share a surplus reservation.
type AllocationBucket string

const (
	BucketLate     AllocationBucket = "late"
	BucketBalanced AllocationBucket = "balanced"
	BucketAhead    AllocationBucket = "ahead"
)

// bucketOrder is the order in which reservations are distributed.
var bucketOrder = []AllocationBucket{BucketLate, BucketBalanced, BucketAhead}

const (
	reasonFloor     = "minimum allocation to keep the goal moving"
	reasonNoSurplus = "no surplus available this month"
)

// Allocation is the share of the monthly surplus assigned to one goal.
type Allocation struct {
	GoalID          int64          `json:"goal_id"`
	AllocatedAmount float64        `json:"allocated_amount"`
	Reason          string         `json:"reason"`
	Classification  Classification `json:"classification"`
	ATR             float64        `json:"atr"`
}

// AllocationPlan is the allocator output for a whole goal set.
// SurplusUsed can exceed the surplus because floor top-ups sit on top of the reservations.
type AllocationPlan struct {
	Allocations []Allocation `json:"allocations"`
	SurplusUsed float64      `json:"surplus_used"`
}

// BucketFor returns the allocation bucket of a classification.
// slightly_behind shares the ahead reservation.
func BucketFor(c Classification) AllocationBucket {
	switch c {
	case ClassificationCritical, ClassificationBehind:
		return BucketLate
	case ClassificationBalanced:
		return BucketBalanced
	default:
		return BucketAhead
	}
}

// Allocate distributes monthlySurplus across the scored goals.
//
// Each non-empty bucket receives its configured share of the surplus, split evenly
// among its goals. Goals still at zero afterwards get the fairness floor. Every input
// result yields exactly one allocation, in input order. A surplus that is not positive
// allocates nothing, floor included.
func Allocate(results []ATRResult, monthlySurplus float64, cfg AllocationConfig) AllocationPlan {
	plan := AllocationPlan{
		Allocations: make([]Allocation, len(results)),
	}

	for i, r := range results {
		plan.Allocations[i] = Allocation{
			GoalID:         r.GoalID,
			Reason:         reasonNoSurplus,
			Classification: r.Classification,
			ATR:            r.ATR,
		}
	}

	if math.IsNaN(monthlySurplus) || math.IsInf(monthlySurplus, 0) || monthlySurplus <= 0 {
		return plan
	}

	surplus := decimal.NewFromFloat(monthlySurplus)
	amounts := make([]decimal.Decimal, len(results))
	used := decimal.Zero

	members := make(map[AllocationBucket][]int, len(bucketOrder))
	for i, r := range results {
		bucket := BucketFor(r.Classification)
		members[bucket] = append(members[bucket], i)
	}

	for _, bucket := range bucketOrder {
		indexes := members[bucket]
		if len(indexes) == 0 {
			continue
		}

		reserved := surplus.Mul(cfg.PercentFor(bucket))
		if !reserved.IsPositive() {
			continue
		}

		share := reserved.Div(decimal.NewFromInt(int64(len(indexes))))
		for _, i := range indexes {
			amounts[i] = share
			plan.Allocations[i].Reason = bucketReason(results[i])
			used = used.Add(share)
		}
	}

	floor := cfg.FloorAmount(surplus)
	for i := range results {
		if amounts[i].IsPositive() {
			continue
		}
		amounts[i] = floor
		plan.Allocations[i].Reason = reasonFloor
		used = used.Add(floor)
	}

	for i := range plan.Allocations {
		plan.Allocations[i].AllocatedAmount = amounts[i].Round(2).InexactFloat64()
	}
	plan.SurplusUsed = used.Round(2).InexactFloat64()

	return plan
}

func bucketReason(r ATRResult) string {
	return fmt.Sprintf("automatic allocation for %s goal (ATR=%.2f)", r.Classification, r.ATR)
}
