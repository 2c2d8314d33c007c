package adapter

import (
	"context"
	"encoding/json"
)

// ExplanationGoal is the per-goal context handed to the explanation model.
type ExplanationGoal struct {
	GoalID          int64
	Name            string
	ATR             float64
	Classification  string
	AllocatedAmount float64
	Reason          string
}

// ExplanationRequest carries a finished allocation to be described in plain language.
type ExplanationRequest struct {
	UserID          string
	MonthlySurplus  float64
	SurplusUsed     float64
	Tone            string
	Goals           []ExplanationGoal
	EpisodicSamples []json.RawMessage
}

// ExplanationService defines the interface for generating human-friendly allocation explanations.
type ExplanationService interface {
	// Explain returns a short narrative for the allocation. It never alters the allocation itself.
	Explain(ctx context.Context, request *ExplanationRequest) (string, error)

	// IsAvailable checks if the explanation service is available and properly configured.
	IsAvailable() bool
}
