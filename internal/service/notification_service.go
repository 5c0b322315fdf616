package service

import (
	"errors"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/repository"
	"resifee-be-svc/pkg/logger"
)

// ErrNotYourNotification is returned when a resident touches another user's notification
var ErrNotYourNotification = errors.New("Thông báo không thuộc về tài khoản này")

// NotificationInput carries the writable fields of a notification
type NotificationInput struct {
	UserID  uint   `json:"user_id" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Message string `json:"message"`
}

// NotificationService interface defines notification service methods
type NotificationService interface {
	GetNotificationByID(id uint) (*models.Notification, error)
	ListNotifications(filter repository.NotificationFilter) ([]*models.Notification, int64, error)
	CreateNotification(input NotificationInput) (*models.Notification, error)
	UpdateNotification(id uint, input NotificationInput) (before *models.Notification, after *models.Notification, err error)
	DeleteNotification(id uint) (*models.Notification, error)
	MarkRead(id uint, userID uint) (*models.Notification, error)
}

// notificationService implements NotificationService interface
type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepository, logger *logger.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// GetNotificationByID retrieves a notification by ID
func (s *notificationService) GetNotificationByID(id uint) (*models.Notification, error) {
	return s.notificationRepo.GetNotificationByID(id)
}

// ListNotifications gets notifications matching the filter with pagination
func (s *notificationService) ListNotifications(filter repository.NotificationFilter) ([]*models.Notification, int64, error) {
	notifications, total, err := s.notificationRepo.ListNotifications(filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list notifications")
		return nil, 0, err
	}
	return notifications, total, nil
}

// CreateNotification creates a new notification for a user
func (s *notificationService) CreateNotification(input NotificationInput) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
	}

	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		s.logger.WithError(err).WithField("user_id", input.UserID).Error("Failed to create notification")
		return nil, err
	}

	return notification, nil
}

// UpdateNotification saves changes to a notification, returning before/after
// for audit. The read flag is left untouched; only the recipient flips it.
func (s *notificationService) UpdateNotification(id uint, input NotificationInput) (*models.Notification, *models.Notification, error) {
	existing, err := s.notificationRepo.GetNotificationByID(id)
	if err != nil {
		return nil, nil, err
	}
	before := *existing

	existing.UserID = input.UserID
	existing.Title = input.Title
	existing.Message = input.Message

	if err := s.notificationRepo.UpdateNotification(existing); err != nil {
		s.logger.WithError(err).WithField("notification_id", id).Error("Failed to update notification")
		return nil, nil, err
	}

	return &before, existing, nil
}

// DeleteNotification removes a notification and returns the deleted row for audit
func (s *notificationService) DeleteNotification(id uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetNotificationByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.DeleteNotification(id); err != nil {
		s.logger.WithError(err).WithField("notification_id", id).Error("Failed to delete notification")
		return nil, err
	}

	return notification, nil
}

// MarkRead flags a notification as read, verifying it belongs to the caller
func (s *notificationService) MarkRead(id uint, userID uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetNotificationByID(id)
	if err != nil {
		return nil, err
	}

	if notification.UserID != userID {
		return nil, ErrNotYourNotification
	}

	if notification.IsRead {
		return notification, nil
	}

	notification.IsRead = true
	if err := s.notificationRepo.UpdateNotification(notification); err != nil {
		s.logger.WithError(err).WithField("notification_id", id).Error("Failed to mark notification as read")
		return nil, err
	}

	return notification, nil
}
