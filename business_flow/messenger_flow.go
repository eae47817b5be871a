// Package businessflow contains use cases for messenger management
package businessflow

import (
	"context"

	"dispatch-control-api/app/dto"
	"dispatch-control-api/models"
	"dispatch-control-api/repository"
	"dispatch-control-api/utils"

	"github.com/google/uuid"
)

// MessengerFlow defines operations for registering and managing messengers
type MessengerFlow interface {
	CreateMessenger(ctx context.Context, req *dto.CreateMessengerRequest, metadata *ClientMetadata) (*dto.CreateMessengerResponse, error)
	ListMessengers(ctx context.Context, metadata *ClientMetadata) (*dto.ListMessengersResponse, error)
	GetMessenger(ctx context.Context, messengerID string, metadata *ClientMetadata) (*dto.MessengerDTO, error)
	DeleteMessenger(ctx context.Context, messengerID string, metadata *ClientMetadata) (*dto.DeleteMessengerResponse, error)
}

type MessengerFlowImpl struct {
	messengerRepo repository.MessengerRepository
}

func NewMessengerFlow(messengerRepo repository.MessengerRepository) MessengerFlow {
	return &MessengerFlowImpl{messengerRepo: messengerRepo}
}

// CreateMessenger registers a new messenger with a generated ID and server-assigned timestamp
func (f *MessengerFlowImpl) CreateMessenger(ctx context.Context, req *dto.CreateMessengerRequest, metadata *ClientMetadata) (*dto.CreateMessengerResponse, error) {
	messenger := models.Messenger{
		ID:            uuid.New(),
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		CreatedAt:     utils.UTCNow(),
	}

	if err := f.messengerRepo.Save(ctx, &messenger); err != nil {
		return nil, NewBusinessError("CREATE_MESSENGER_FAILED", "Failed to create messenger", err)
	}

	return &dto.CreateMessengerResponse{
		Message:   "Messenger created successfully",
		Messenger: ToMessengerDTO(messenger),
	}, nil
}

// ListMessengers returns all registered messengers, newest first
func (f *MessengerFlowImpl) ListMessengers(ctx context.Context, metadata *ClientMetadata) (*dto.ListMessengersResponse, error) {
	rows, err := f.messengerRepo.ByFilter(ctx, models.MessengerFilter{}, "created_at DESC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("LIST_MESSENGERS_FAILED", "Failed to list messengers", err)
	}

	messengers := make([]dto.MessengerDTO, 0, len(rows))
	for _, m := range rows {
		messengers = append(messengers, ToMessengerDTO(*m))
	}

	return &dto.ListMessengersResponse{
		Message:    "Messengers retrieved successfully",
		Messengers: messengers,
	}, nil
}

// GetMessenger returns a single messenger by ID
func (f *MessengerFlowImpl) GetMessenger(ctx context.Context, messengerID string, metadata *ClientMetadata) (*dto.MessengerDTO, error) {
	parsed, err := uuid.Parse(messengerID)
	if err != nil {
		return nil, ErrMessengerNotFound
	}

	messenger, err := f.messengerRepo.ByID(ctx, parsed)
	if err != nil {
		return nil, NewBusinessError("GET_MESSENGER_FAILED", "Failed to get messenger", err)
	}
	if messenger == nil {
		return nil, ErrMessengerNotFound
	}

	result := ToMessengerDTO(*messenger)
	return &result, nil
}

// DeleteMessenger removes a messenger; dependent dispatches are removed by the
// storage-layer FK cascade
func (f *MessengerFlowImpl) DeleteMessenger(ctx context.Context, messengerID string, metadata *ClientMetadata) (*dto.DeleteMessengerResponse, error) {
	parsed, err := uuid.Parse(messengerID)
	if err != nil {
		return nil, ErrMessengerNotFound
	}

	deleted, err := f.messengerRepo.Delete(ctx, parsed)
	if err != nil {
		return nil, NewBusinessError("DELETE_MESSENGER_FAILED", "Failed to delete messenger", err)
	}
	if !deleted {
		return nil, ErrMessengerNotFound
	}

	return &dto.DeleteMessengerResponse{
		Message: "Messenger deleted successfully",
	}, nil
}
