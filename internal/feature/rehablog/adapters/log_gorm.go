// Package adapters provides repository implementations for the rehablog feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"rehablog_backend/internal/feature/rehablog/domain/entity"
	"rehablog_backend/internal/feature/rehablog/usecase"
)

// logGorm is a SQL implementation of the LogRepository interface.
type logGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure logGorm implements LogRepository.
var _ usecase.LogRepository = (*logGorm)(nil)

// NewLogGorm creates a new instance of logGorm.
func NewLogGorm(db *gorm.DB) *logGorm {
	return &logGorm{db: db}
}

// Create persists a new log to the database.
func (r *logGorm) Create(ctx context.Context, log *entity.Log) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByOwner retrieves all logs owned by the given user.
// Ascending ID order matches insertion order.
func (r *logGorm) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Log, error) {
	var logs []entity.Log
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// FindByID retrieves a log by its ID.
func (r *logGorm) FindByID(ctx context.Context, id uint) (*entity.Log, error) {
	var log entity.Log
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

// Delete removes a log by its ID.
func (r *logGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Log{}, "id = ?", id).Error
}
