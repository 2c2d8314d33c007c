package valueobject

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidAllocationConfig is returned when the surplus split cannot be applied.
var ErrInvalidAllocationConfig = errors.New("invalid allocation config")

// AllocationConfig contains the surplus split used by the allocator.
type AllocationConfig struct {
	// Share of the surplus reserved for each bucket
	LatePercent     decimal.Decimal // 0.5 = 50%
	BalancedPercent decimal.Decimal // 0.3 = 30%
	AheadPercent    decimal.Decimal // 0.2 = 20%

	// Fairness floor: whichever is greater
	FloorPercent decimal.Decimal // 0.01 = 1% of surplus
	FloorMinimum decimal.Decimal // 1.00
}

// DefaultAllocationConfig returns the default allocation configuration.
func DefaultAllocationConfig() AllocationConfig {
	return AllocationConfig{
		LatePercent:     decimal.NewFromFloat(0.5),
		BalancedPercent: decimal.NewFromFloat(0.3),
		AheadPercent:    decimal.NewFromFloat(0.2),
		FloorPercent:    decimal.NewFromFloat(0.01),
		FloorMinimum:    decimal.NewFromInt(1),
	}
}

// PercentFor returns the surplus share reserved for a bucket.
func (c AllocationConfig) PercentFor(bucket AllocationBucket) decimal.Decimal {
	switch bucket {
	case BucketLate:
		return c.LatePercent
	case BucketBalanced:
		return c.BalancedPercent
	case BucketAhead:
		return c.AheadPercent
	default:
		return decimal.Zero
	}
}

// FloorAmount returns the minimum top-up for a goal left without an allocation.
func (c AllocationConfig) FloorAmount(surplus decimal.Decimal) decimal.Decimal {
	return decimal.Max(c.FloorMinimum, surplus.Mul(c.FloorPercent))
}

// Validate rejects negative shares and bucket reservations above the whole surplus.
func (c AllocationConfig) Validate() error {
	for _, d := range []decimal.Decimal{c.LatePercent, c.BalancedPercent, c.AheadPercent, c.FloorPercent, c.FloorMinimum} {
		if d.IsNegative() {
			return ErrInvalidAllocationConfig
		}
	}
	if c.LatePercent.Add(c.BalancedPercent).Add(c.AheadPercent).GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidAllocationConfig
	}
	return nil
}
