package services

import (
	"errors"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

// ListUnreadNotifications returns a user's unread notifications, newest
// first. Clients poll this; read state is the only thing that ever
// changes on a notification.
func ListUnreadNotifications(db *gorm.DB, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification

	err := db.Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error

	return notifications, err
}

func GetNotification(db *gorm.DB, notificationID uint) (models.Notification, error) {
	var notification models.Notification

	if err := db.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notification, types.ErrNotFound
		}
		return notification, err
	}

	return notification, nil
}

func MarkNotificationRead(db *gorm.DB, notification *models.Notification) error {
	return db.Model(notification).Update("is_read", true).Error
}

func MarkAllNotificationsRead(db *gorm.DB, userID uint) error {
	return db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
