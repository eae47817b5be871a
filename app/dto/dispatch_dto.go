// Package dto contains request and response shapes for the HTTP API
package dto

// DispatchItemDTO represents a single card within a dispatch
type DispatchItemDTO struct {
	CardNumber string `json:"card_number" validate:"required,min=1,max=64" example:"4532-9812-3344-5566"`
	CardType   string `json:"card_type" validate:"required,oneof=bulk debit tracking" example:"debit"`
}

// CreateDispatchRequest represents the payload for registering a new dispatch
type CreateDispatchRequest struct {
	MessengerID string            `json:"messenger_id" validate:"required,uuid4"`
	Items       []DispatchItemDTO `json:"items" validate:"required,min=1,dive"`
}

// DispatchDTO represents a dispatch in API responses
type DispatchDTO struct {
	ID            string            `json:"id"`
	MessengerID   string            `json:"messenger_id"`
	MessengerName string            `json:"messenger_name"`
	TotalCards    int               `json:"total_cards"`
	CreatedAt     string            `json:"created_at"`
	Date          string            `json:"date"`
	Items         []DispatchItemDTO `json:"items"`
}

// CreateDispatchResponse represents the result of creating a dispatch
type CreateDispatchResponse struct {
	Message  string      `json:"message"`
	Dispatch DispatchDTO `json:"dispatch"`
}

// ListDispatchesResponse represents a filtered list of dispatches
type ListDispatchesResponse struct {
	Message    string        `json:"message"`
	Dispatches []DispatchDTO `json:"dispatches"`
}
