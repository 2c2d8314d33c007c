// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// SavingsGoal represents a savings objective supplied by the goal-retrieval collaborator.
// Amounts are already coerced to non-negative values and timestamps normalized to UTC.
type SavingsGoal struct {
	ID           int64
	Name         string
	SavedAmount  float64
	TargetAmount float64
	CreatedAt    *time.Time
	DueDate      *time.Time
	DueDateRaw   string // Original due_date text, echoed back in snapshots
	Priority     string
}

// HasTarget reports whether the goal has a positive target amount.
func (g *SavingsGoal) HasTarget() bool {
	return g.TargetAmount > 0
}

// FinancialContext holds the user's monthly financial picture.
// Only MonthlySurplus drives calculations; the rest is carried for collaborators.
type FinancialContext struct {
	MonthlySurplus   float64
	MonthlyIncome    float64
	FixedExpenses    float64
	VariableExpenses float64
	Savings          float64
}

// EmotionalGuidance is pass-through metadata attached to enriched snapshots.
type EmotionalGuidance struct {
	RecommendedTone string `json:"recommended_tone"`
	AvoidPressure   bool   `json:"avoid_pressure"`
}

// DefaultRecommendedTone is used when the caller's semantic memory carries no preference.
const DefaultRecommendedTone = "encouragement"

// NewEmotionalGuidance creates guidance with the given tone, falling back to the default tone.
func NewEmotionalGuidance(tone string) EmotionalGuidance {
	if tone == "" {
		tone = DefaultRecommendedTone
	}
	return EmotionalGuidance{
		RecommendedTone: tone,
		AvoidPressure:   true,
	}
}
