// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"dispatch-control-api/models"

	"gorm.io/gorm"
)

// DispatchRepositoryImpl implements DispatchRepository interface
type DispatchRepositoryImpl struct {
	*BaseRepository[models.Dispatch, models.DispatchFilter]
}

// NewDispatchRepository creates a new dispatch repository
func NewDispatchRepository(db *gorm.DB) DispatchRepository {
	return &DispatchRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Dispatch, models.DispatchFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *DispatchRepositoryImpl) applyFilter(query *gorm.DB, filter models.DispatchFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.MessengerID != nil {
		query = query.Where("messenger_id = ?", *filter.MessengerID)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves dispatches based on filter criteria
func (r *DispatchRepositoryImpl) ByFilter(ctx context.Context, filter models.DispatchFilter, orderBy string, limit, offset int) ([]*models.Dispatch, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Dispatch{})

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

	var dispatches []*models.Dispatch
	if err := query.Find(&dispatches).Error; err != nil {
		return nil, err
	}
	return dispatches, nil
}

// ListByDate retrieves all dispatches for a calendar date, newest first
func (r *DispatchRepositoryImpl) ListByDate(ctx context.Context, date string) ([]*models.Dispatch, error) {
	filter := models.DispatchFilter{Date: &date}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// Count returns the number of dispatches matching the filter
func (r *DispatchRepositoryImpl) Count(ctx context.Context, filter models.DispatchFilter) (int64, error) {
	db := r.getDB(ctx)
	query := db.Model(&models.Dispatch{})
	query = r.applyFilter(query, filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Exists checks if any dispatch matching the filter exists
func (r *DispatchRepositoryImpl) Exists(ctx context.Context, filter models.DispatchFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
