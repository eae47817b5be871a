// Package models contains domain entities and business models for the dispatch control system
package models

import (
	"time"

	"github.com/google/uuid"
)

// Messenger represents a courier responsible for delivering batches of cards
// Table: messengers
// Immutable after creation; deleting a messenger cascades to its dispatches
// Timestamps default to UTC at DB level
type Messenger struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	ContactNumber string    `gorm:"size:50;not null" json:"contact_number"`
	CreatedAt     time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_messengers_created_at" json:"created_at"`
}

func (Messenger) TableName() string {
	return "messengers"
}

// MessengerFilter represents filter criteria for messenger queries
type MessengerFilter struct {
	ID            *uuid.UUID
	Name          *string
	ContactNumber *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
