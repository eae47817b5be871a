// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"dispatch-control-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessengerRepositoryImpl implements MessengerRepository interface
type MessengerRepositoryImpl struct {
	*BaseRepository[models.Messenger, models.MessengerFilter]
}

// NewMessengerRepository creates a new messenger repository
func NewMessengerRepository(db *gorm.DB) MessengerRepository {
	return &MessengerRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Messenger, models.MessengerFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *MessengerRepositoryImpl) applyFilter(query *gorm.DB, filter models.MessengerFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.ContactNumber != nil {
		query = query.Where("contact_number = ?", *filter.ContactNumber)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves messengers based on filter criteria
func (r *MessengerRepositoryImpl) ByFilter(ctx context.Context, filter models.MessengerFilter, orderBy string, limit, offset int) ([]*models.Messenger, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Messenger{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var messengers []*models.Messenger
	if err := query.Find(&messengers).Error; err != nil {
		return nil, err
	}
	return messengers, nil
}

// Count returns the number of messengers matching the filter
func (r *MessengerRepositoryImpl) Count(ctx context.Context, filter models.MessengerFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Messenger{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any messenger matching the filter exists
func (r *MessengerRepositoryImpl) Exists(ctx context.Context, filter models.MessengerFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes a messenger by ID. Dependent dispatches and their items are
// removed by the FK cascade at the storage layer, not here.
// Returns false when no row matched the ID.
func (r *MessengerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return false, err
	}
	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	result := db.Where("id = ?", id).Delete(&models.Messenger{})
	if result.Error != nil {
		err = result.Error
		return false, err
	}
	return result.RowsAffected > 0, nil
}
