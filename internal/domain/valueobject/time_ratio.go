package valueobject

import (
	"math"
	"time"
)

const (
	// MinTimeRatio keeps ATR finite for goals observed at the instant of creation.
	MinTimeRatio = 0.0001

	// fullyElapsed is returned when a goal has no usable time window.
	fullyElapsed = 1.0

	// daysPerMonth is the month length used by projections and snapshots.
	daysPerMonth = 30.0
)

// ElapsedRatio returns the share of a goal's time window that has elapsed at now.
// A goal without both dates, or whose window is empty or inverted, counts as fully
// elapsed so it never earns "ahead of schedule" credit from time alone.
// The result is floored at MinTimeRatio and is not capped above 1.
func ElapsedRatio(createdAt, dueDate *time.Time, now time.Time) float64 {
	if createdAt == nil || dueDate == nil || !createdAt.Before(*dueDate) {
		return fullyElapsed
	}

	total := dueDate.Sub(*createdAt).Seconds()
	if total <= 0 {
		return fullyElapsed
	}

	elapsed := now.UTC().Sub(*createdAt).Seconds()
	return math.Max(MinTimeRatio, elapsed/total)
}

// wholeDaysUntil returns the number of whole days from now to t, rounded toward
// negative infinity so a due date earlier today counts as -1.
func wholeDaysUntil(now, t time.Time) float64 {
	return math.Floor(t.Sub(now.UTC()).Hours() / 24)
}

// MonthsUntil returns the 30-day months from now to due, which may be negative.
func MonthsUntil(now, due time.Time) float64 {
	return wholeDaysUntil(now, due) / daysPerMonth
}
