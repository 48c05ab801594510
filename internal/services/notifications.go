package services

import (
	"fmt"
	"time"

	"inkstream/internal/auth"
	"inkstream/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationsService persists and serves user notifications.
// Delivery is persistence only; the live stream endpoint polls on top
// of it.
type NotificationsService struct {
	db *gorm.DB
}

// NewNotificationsService creates a new NotificationsService
func NewNotificationsService(db *gorm.DB) *NotificationsService {
	return &NotificationsService{db: db}
}

// Notify persists a notification for the user. Fire-and-forget: no
// delivery guarantee beyond the row existing.
func (s *NotificationsService) Notify(userID uuid.UUID, message string) error {
	return s.notifyTx(s.db, userID, message)
}

func (s *NotificationsService) notifyTx(tx *gorm.DB, userID uuid.UUID, message string) error {
	notification := models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
	}
	if err := tx.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ListUnread returns the caller's unread notifications, newest first.
func (s *NotificationsService) ListUnread(userID uuid.UUID, limit, offset int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ? AND read_at IS NULL", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// ListSince returns the caller's notifications created after the given
// time, oldest first. Used by the live stream.
func (s *NotificationsService) ListSince(userID uuid.UUID, since time.Time) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ? AND created_at > ?", userID, since).
		Order("created_at ASC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead sets read_at on the caller's notification. read_at is set
// once and never unset; marking an already-read notification is a
// no-op. Notifications owned by other users are invisible.
func (s *NotificationsService) MarkRead(id uuid.UUID, principal *auth.Principal) error {
	var notification models.Notification
	err := s.db.Where("id = ? AND user_id = ?", id, principal.UserID).
		First(&notification).Error
	if err != nil {
		return translateNotFound(err)
	}

	if notification.ReadAt != nil {
		return nil
	}

	now := time.Now()
	if err := s.db.Model(&notification).UpdateColumn("read_at", now).Error; err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
