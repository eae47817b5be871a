// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"dispatch-control-api/app/dto"
	"dispatch-control-api/models"
)

// ClientMetadata holds client-related information for request tracking
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToMessengerDTO converts a messenger model to its API representation
func ToMessengerDTO(messenger models.Messenger) dto.MessengerDTO {
	return dto.MessengerDTO{
		ID:            messenger.ID.String(),
		Name:          messenger.Name,
		ContactNumber: messenger.ContactNumber,
		CreatedAt:     messenger.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ToDispatchItemDTOs converts dispatch item models to their API representation
func ToDispatchItemDTOs(items []models.DispatchItem) []dto.DispatchItemDTO {
	out := make([]dto.DispatchItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.DispatchItemDTO{
			CardNumber: item.CardNumber,
			CardType:   item.CardType,
		})
	}
	return out
}

// ToDispatchDTO converts a dispatch model (with attached items) to its API representation
func ToDispatchDTO(dispatch models.Dispatch) dto.DispatchDTO {
	return dto.DispatchDTO{
		ID:            dispatch.ID.String(),
		MessengerID:   dispatch.MessengerID.String(),
		MessengerName: dispatch.MessengerName,
		TotalCards:    dispatch.TotalCards,
		CreatedAt:     dispatch.CreatedAt.UTC().Format(time.RFC3339),
		Date:          dispatch.Date,
		Items:         ToDispatchItemDTOs(dispatch.Items),
	}
}
