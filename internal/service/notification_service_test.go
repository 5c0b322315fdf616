package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resifee-be-svc/internal/models"
	"resifee-be-svc/internal/repository"
)

// fakeNotificationRepository is an in-memory NotificationRepository
type fakeNotificationRepository struct {
	notifications []*models.Notification
	nextID        uint
}

func newFakeNotificationRepository(notifications ...*models.Notification) *fakeNotificationRepository {
	repo := &fakeNotificationRepository{nextID: 1}
	for _, notification := range notifications {
		notification.ID = repo.nextID
		repo.nextID++
		repo.notifications = append(repo.notifications, notification)
	}
	return repo
}

func (r *fakeNotificationRepository) GetNotificationByID(id uint) (*models.Notification, error) {
	for _, notification := range r.notifications {
		if notification.ID == id {
			copied := *notification
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepository) ListNotifications(filter repository.NotificationFilter) ([]*models.Notification, int64, error) {
	matched := make([]*models.Notification, 0, len(r.notifications))
	for _, notification := range r.notifications {
		if filter.UserID != nil && notification.UserID != *filter.UserID {
			continue
		}
		if filter.IsRead != nil && notification.IsRead != *filter.IsRead {
			continue
		}
		matched = append(matched, notification)
	}
	return matched, int64(len(matched)), nil
}

func (r *fakeNotificationRepository) CreateNotification(notification *models.Notification) error {
	notification.ID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *fakeNotificationRepository) UpdateNotification(notification *models.Notification) error {
	for i, existing := range r.notifications {
		if existing.ID == notification.ID {
			r.notifications[i] = notification
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepository) DeleteNotification(id uint) error {
	for i, existing := range r.notifications {
		if existing.ID == id {
			r.notifications = append(r.notifications[:i], r.notifications[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestMarkReadFlagsOwnNotification(t *testing.T) {
	repo := newFakeNotificationRepository(
		&models.Notification{UserID: 5, Title: "Hóa đơn mới"},
	)
	svc := NewNotificationService(repo, testLogger())

	notification, err := svc.MarkRead(1, 5)
	require.NoError(t, err)
	assert.True(t, notification.IsRead)
	assert.True(t, repo.notifications[0].IsRead)
}

func TestMarkReadRejectsForeignNotification(t *testing.T) {
	repo := newFakeNotificationRepository(
		&models.Notification{UserID: 5, Title: "Hóa đơn mới"},
	)
	svc := NewNotificationService(repo, testLogger())

	_, err := svc.MarkRead(1, 9)
	assert.ErrorIs(t, err, ErrNotYourNotification)
	assert.False(t, repo.notifications[0].IsRead)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	repo := newFakeNotificationRepository(
		&models.Notification{UserID: 5, Title: "Hóa đơn mới", IsRead: true},
	)
	svc := NewNotificationService(repo, testLogger())

	notification, err := svc.MarkRead(1, 5)
	require.NoError(t, err)
	assert.True(t, notification.IsRead)
}

func TestListNotificationsScopedToUser(t *testing.T) {
	repo := newFakeNotificationRepository(
		&models.Notification{UserID: 5, Title: "A"},
		&models.Notification{UserID: 6, Title: "B"},
		&models.Notification{UserID: 5, Title: "C"},
	)
	svc := NewNotificationService(repo, testLogger())

	userID := uint(5)
	notifications, total, err := svc.ListNotifications(repository.NotificationFilter{UserID: &userID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, notifications, 2)
}
