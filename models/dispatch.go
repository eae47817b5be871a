// Package models contains domain entities and business models for the dispatch control system
package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used for dispatch filtering and reports
const DateLayout = "2006-01-02"

// Dispatch represents one batch of cards handed to a messenger on a given date
// Table: dispatches
// MessengerName is a point-in-time snapshot taken at creation
// TotalCards always equals the number of items persisted with the dispatch
// Date is the UTC calendar date derived from CreatedAt, never settable on its own
// Indices on messenger_id, date, created_at
type Dispatch struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MessengerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_dispatches_messenger_id" json:"messenger_id"`
	MessengerName string    `gorm:"size:255;not null" json:"messenger_name"`
	TotalCards    int       `gorm:"not null" json:"total_cards"`
	CreatedAt     time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_dispatches_created_at" json:"created_at"`
	Date          string    `gorm:"size:10;not null;index:idx_dispatches_date" json:"date"`

	// Loaded with a second query, never persisted through this struct
	Items []DispatchItem `gorm:"-" json:"items"`

	Messenger *Messenger `gorm:"foreignKey:MessengerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Dispatch) TableName() string {
	return "dispatches"
}

// DispatchFilter represents filter criteria for dispatch queries
type DispatchFilter struct {
	ID            *uuid.UUID
	MessengerID   *uuid.UUID
	Date          *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
