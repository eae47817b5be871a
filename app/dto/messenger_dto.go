// Package dto contains request and response shapes for the HTTP API
package dto

// CreateMessengerRequest represents the payload for registering a new messenger
type CreateMessengerRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=255" example:"Carlos Rodriguez"`
	ContactNumber string `json:"contact_number" validate:"required,min=1,max=50" example:"+58 412 123 4567"`
}

// MessengerDTO represents a messenger in API responses
type MessengerDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	CreatedAt     string `json:"created_at"`
}

// CreateMessengerResponse represents the result of creating a messenger
type CreateMessengerResponse struct {
	Message   string       `json:"message"`
	Messenger MessengerDTO `json:"messenger"`
}

// ListMessengersResponse represents the list of registered messengers
type ListMessengersResponse struct {
	Message    string         `json:"message"`
	Messengers []MessengerDTO `json:"messengers"`
}

// DeleteMessengerResponse represents the result of deleting a messenger
type DeleteMessengerResponse struct {
	Message string `json:"message"`
}
