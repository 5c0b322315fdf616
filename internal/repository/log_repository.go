package repository

import (
	"gorm.io/gorm"

	"resifee-be-svc/internal/models"
)

// LogFilter carries the storage-level filters for listing audit logs
type LogFilter struct {
	UserID     *uint
	Action     string
	EntityType string
	Page       int
	Limit      int
}

// LogRepository defines the interface for audit log data operations
type LogRepository interface {
	CreateLog(log *models.Log) error
	ListLogs(filter LogFilter) ([]*models.Log, int64, error)
}

// logRepository implements LogRepository
type logRepository struct {
	db *gorm.DB
}

// NewLogRepository creates a new instance of LogRepository
func NewLogRepository(db *gorm.DB) LogRepository {
	return &logRepository{
		db: db,
	}
}

// CreateLog appends a new audit log row
func (r *logRepository) CreateLog(log *models.Log) error {
	return r.db.Create(log).Error
}

// ListLogs retrieves audit logs matching the filter, newest first
func (r *logRepository) ListLogs(filter LogFilter) ([]*models.Log, int64, error) {
	var logs []*models.Log
	var total int64

	query := r.db.Model(&models.Log{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	err := query.
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
