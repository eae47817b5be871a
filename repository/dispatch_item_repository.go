// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"dispatch-control-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DispatchItemRepositoryImpl implements DispatchItemRepository interface
type DispatchItemRepositoryImpl struct {
	*BaseRepository[models.DispatchItem, models.DispatchItemFilter]
}

// NewDispatchItemRepository creates a new dispatch item repository
func NewDispatchItemRepository(db *gorm.DB) DispatchItemRepository {
	return &DispatchItemRepositoryImpl{
		BaseRepository: NewBaseRepository[models.DispatchItem, models.DispatchItemFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *DispatchItemRepositoryImpl) applyFilter(query *gorm.DB, filter models.DispatchItemFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.DispatchID != nil {
		query = query.Where("dispatch_id = ?", *filter.DispatchID)
	}
	if filter.CardNumber != nil {
		query = query.Where("card_number = ?", *filter.CardNumber)
	}
	if filter.CardType != nil {
		query = query.Where("card_type = ?", *filter.CardType)
	}
	return query
}

// ByFilter retrieves dispatch items based on filter criteria
func (r *DispatchItemRepositoryImpl) ByFilter(ctx context.Context, filter models.DispatchItemFilter, orderBy string, limit, offset int) ([]*models.DispatchItem, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.DispatchItem{})

	query = r.applyFilter(query, filter)

	if orderBy == "" {
		orderBy = "id ASC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var items []*models.DispatchItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ByDispatchID retrieves the items belonging to a single dispatch
func (r *DispatchItemRepositoryImpl) ByDispatchID(ctx context.Context, dispatchID uuid.UUID) ([]*models.DispatchItem, error) {
	filter := models.DispatchItemFilter{DispatchID: &dispatchID}
	return r.ByFilter(ctx, filter, "", 0, 0)
}

// ByDispatchIDs retrieves items for a set of dispatches in one query, keyed by dispatch ID
func (r *DispatchItemRepositoryImpl) ByDispatchIDs(ctx context.Context, dispatchIDs []uuid.UUID) (map[uuid.UUID][]models.DispatchItem, error) {
	grouped := make(map[uuid.UUID][]models.DispatchItem, len(dispatchIDs))
	if len(dispatchIDs) == 0 {
		return grouped, nil
	}

	db := r.getDB(ctx)

	var items []models.DispatchItem
	err := db.Model(&models.DispatchItem{}).
		Where("dispatch_id IN ?", dispatchIDs).
		Order("dispatch_id, id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		grouped[item.DispatchID] = append(grouped[item.DispatchID], item)
	}
	return grouped, nil
}

// Count returns the number of dispatch items matching the filter
func (r *DispatchItemRepositoryImpl) Count(ctx context.Context, filter models.DispatchItemFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.DispatchItem{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any dispatch item matching the filter exists
func (r *DispatchItemRepositoryImpl) Exists(ctx context.Context, filter models.DispatchItemFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
