package repository

import (
	"gorm.io/gorm"

	"resifee-be-svc/internal/models"
)

// NotificationFilter carries the storage-level filters for listing notifications
type NotificationFilter struct {
	UserID *uint
	IsRead *bool
	Page   int
	Limit  int
}

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	GetNotificationByID(id uint) (*models.Notification, error)
	ListNotifications(filter NotificationFilter) ([]*models.Notification, int64, error)
	CreateNotification(notification *models.Notification) error
	UpdateNotification(notification *models.Notification) error
	DeleteNotification(id uint) error
}

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// GetNotificationByID retrieves a notification by ID
func (r *notificationRepository) GetNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification

	err := r.db.Where("id = ?", id).First(&notification).Error
	if err != nil {
		return nil, err
	}

	return &notification, nil
}

// ListNotifications retrieves notifications matching the filter, newest first
func (r *notificationRepository) ListNotifications(filter NotificationFilter) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification
	var total int64

	query := r.db.Model(&models.Notification{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
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
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// CreateNotification inserts a new notification
func (r *notificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// UpdateNotification saves changes to an existing notification
func (r *notificationRepository) UpdateNotification(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

// DeleteNotification physically removes a notification
func (r *notificationRepository) DeleteNotification(id uint) error {
	result := r.db.Delete(&models.Notification{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
