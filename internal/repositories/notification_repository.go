package repositories

import (
	"errors"

	"github.com/lumilens-app/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	GetByRecipientID(recipientID string, limit int) ([]models.Notification, error)
	GetUnreadCount(recipientID string) (int64, error)
	MarkAsRead(notificationID uint, recipientID string) error
	MarkAllAsRead(recipientID string) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetByRecipientID returns the recipient's notifications, most recent first,
// bounded by limit.
func (r *postgresNotificationRepository) GetByRecipientID(recipientID string, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("profile_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("profile_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

// MarkAsRead sets is_read on a single notification. The recipient scope is
// part of the lookup: a notification belonging to someone else is ErrNotFound.
// Marking an already-read notification succeeds silently.
func (r *postgresNotificationRepository) MarkAsRead(notificationID uint, recipientID string) error {
	var n models.Notification
	if err := r.db.Where("id = ? AND profile_id = ?", notificationID, recipientID).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if n.IsRead {
		return nil
	}
	return r.db.Model(&models.Notification{}).Where("id = ?", n.ID).Update("is_read", true).Error
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID string) error {
	return r.db.Model(&models.Notification{}).Where("profile_id = ? AND is_read = ?", recipientID, false).Update("is_read", true).Error
}
