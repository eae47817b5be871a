// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"dispatch-control-api/models"

	"github.com/google/uuid"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uuid.UUID) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// MessengerRepository defines operations for messengers
type MessengerRepository interface {
	Repository[models.Messenger, models.MessengerFilter]
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// DispatchRepository defines operations for dispatches
type DispatchRepository interface {
	Repository[models.Dispatch, models.DispatchFilter]
	ListByDate(ctx context.Context, date string) ([]*models.Dispatch, error)
}

// DispatchItemRepository defines operations for dispatch items
type DispatchItemRepository interface {
	Repository[models.DispatchItem, models.DispatchItemFilter]
	ByDispatchID(ctx context.Context, dispatchID uuid.UUID) ([]*models.DispatchItem, error)
	ByDispatchIDs(ctx context.Context, dispatchIDs []uuid.UUID) (map[uuid.UUID][]models.DispatchItem, error)
}
