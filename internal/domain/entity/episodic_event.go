// Package entity defines the core business entities for the domain layer.
package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies the agent action that produced an episodic event.
type EventType string

const (
	EventTypeAdjustGoals      EventType = "ADJUST_GOALS"
	EventTypeTrackGoal        EventType = "TRACK_GOAL"
	EventTypeBuildGoalContext EventType = "BUILD_GOAL_CONTEXT"
)

// defaultGoalName is stored when the request carries no goal name or action.
const defaultGoalName = "general"

// EpisodicEvent records one request/response pair for a user's goal history.
type EpisodicEvent struct {
	ID         uuid.UUID
	UserID     string
	GoalName   string
	EventType  EventType
	Message    string
	PayloadIn  json.RawMessage
	PayloadOut json.RawMessage
	CreatedAt  time.Time
}

// NewEpisodicEvent creates a new EpisodicEvent stamped with the current UTC time.
func NewEpisodicEvent(userID, goalName string, eventType EventType, message string, payloadIn, payloadOut json.RawMessage) *EpisodicEvent {
	if goalName == "" {
		goalName = defaultGoalName
	}

	return &EpisodicEvent{
		ID:         uuid.New(),
		UserID:     userID,
		GoalName:   goalName,
		EventType:  eventType,
		Message:    message,
		PayloadIn:  payloadIn,
		PayloadOut: payloadOut,
		CreatedAt:  time.Now().UTC(),
	}
}
