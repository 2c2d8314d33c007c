// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/finance-tracker/goal-agent/internal/domain/entity"
)

// EpisodicEventModel represents the episodic_memory_goals table in the database.
// The JSON tags are used when a user's recent events are cached.
type EpisodicEventModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string         `gorm:"type:varchar(255);not null;index:idx_episodic_user_created,priority:1" json:"user_id"`
	GoalName   string         `gorm:"type:varchar(255);not null" json:"goal_name"`
	EventType  string         `gorm:"type:varchar(50);not null;index" json:"event_type"`
	Message    string         `gorm:"type:text" json:"message"`
	PayloadIn  datatypes.JSON `json:"payload_in"`
	PayloadOut datatypes.JSON `json:"payload_out"`
	CreatedAt  time.Time      `gorm:"not null;index:idx_episodic_user_created,priority:2" json:"created_at"`
}

// TableName returns the table name for the EpisodicEventModel.
func (EpisodicEventModel) TableName() string {
	return "episodic_memory_goals"
}

// ToEntity converts an EpisodicEventModel to a domain EpisodicEvent entity.
func (m *EpisodicEventModel) ToEntity() *entity.EpisodicEvent {
	return &entity.EpisodicEvent{
		ID:         m.ID,
		UserID:     m.UserID,
		GoalName:   m.GoalName,
		EventType:  entity.EventType(m.EventType),
		Message:    m.Message,
		PayloadIn:  json.RawMessage(m.PayloadIn),
		PayloadOut: json.RawMessage(m.PayloadOut),
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

// EpisodicEventFromEntity creates an EpisodicEventModel from a domain EpisodicEvent entity.
func EpisodicEventFromEntity(event *entity.EpisodicEvent) *EpisodicEventModel {
	return &EpisodicEventModel{
		ID:         event.ID,
		UserID:     event.UserID,
		GoalName:   event.GoalName,
		EventType:  string(event.EventType),
		Message:    event.Message,
		PayloadIn:  jsonOrNull(event.PayloadIn),
		PayloadOut: jsonOrNull(event.PayloadOut),
		CreatedAt:  event.CreatedAt.UTC(),
	}
}

// jsonOrNull stores an empty payload as a JSON null.
func jsonOrNull(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(raw)
}
