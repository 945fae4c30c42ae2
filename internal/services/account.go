package services

import (
	"github.com/taskhive-dev/taskhive/internal/models"
	"gorm.io/gorm"
)

// DeleteAccount removes a user and everything hanging off them: owned
// projects with their tasks, invitations and memberships, plus the user's
// own memberships, notifications and tokens. Tasks assigned to the user
// in other people's projects survive with the assignee detached.
func DeleteAccount(db *gorm.DB, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var ownedIDs []uint

		if err := tx.Model(&models.Project{}).
			Where("owner_id = ?", userID).
			Pluck("id", &ownedIDs).Error; err != nil {
			return err
		}

		for _, projectID := range ownedIDs {
			if err := deleteProjectTx(tx, projectID); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Task{}).
			Where("assignee_id = ?", userID).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.ProjectMembership{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
}
