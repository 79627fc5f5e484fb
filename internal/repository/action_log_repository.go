package repository

import (
	"context"

	"gorm.io/gorm"

	"medidesk/internal/model"
)

// ActionLogRepository defines audit log persistence operations.
type ActionLogRepository interface {
	Create(ctx context.Context, log *model.ActionLog) error
	CreateBatch(ctx context.Context, logs []model.ActionLog) error
	ListRecent(ctx context.Context, limit int) ([]model.ActionLog, error)
}

type actionLogRepository struct {
	db *gorm.DB
}

// NewActionLogRepository creates a new action log repository.
func NewActionLogRepository(db *gorm.DB) ActionLogRepository {
	return &actionLogRepository{db: db}
}

// Create creates a new action log entry.
func (r *actionLogRepository) Create(ctx context.Context, log *model.ActionLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// CreateBatch creates multiple action log entries in a single statement
// per hundred rows.
func (r *actionLogRepository) CreateBatch(ctx context.Context, logs []model.ActionLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}

// ListRecent returns the newest entries first.
func (r *actionLogRepository) ListRecent(ctx context.Context, limit int) ([]model.ActionLog, error) {
	var logs []model.ActionLog
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
