// Package models contains domain entities and business models for the dispatch control system
package models

import (
	"github.com/google/uuid"
)

// Card type constants
const (
	CardTypeBulk     = "bulk"
	CardTypeDebit    = "debit"
	CardTypeTracking = "tracking"
)

// DispatchItem represents a single physical card record within a dispatch
// Table: dispatch_items
// Owned exclusively by its parent dispatch; removed with it by FK cascade
type DispatchItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	DispatchID uuid.UUID `gorm:"type:uuid;not null;index:idx_dispatch_items_dispatch_id" json:"-"`
	CardNumber string    `gorm:"size:64;not null" json:"card_number"`
	CardType   string    `gorm:"size:20;not null" json:"card_type"`

	Dispatch *Dispatch `gorm:"foreignKey:DispatchID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DispatchItem) TableName() string {
	return "dispatch_items"
}

// DispatchItemFilter represents filter criteria for dispatch item queries
type DispatchItemFilter struct {
	ID         *uuid.UUID
	DispatchID *uuid.UUID
	CardNumber *string
	CardType   *string
}
