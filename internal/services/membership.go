package services

import (
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttachMember adds a user to a project's membership set. Attaching an
// existing member is a no-op; concurrent attaches serialize through the
// (user_id, project_id) unique index.
func AttachMember(db *gorm.DB, projectID, userID uint) error {
	membership := models.ProjectMembership{
		ProjectID: projectID,
		UserID:    userID,
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "project_id"}},
		DoNothing: true,
	}).Create(&membership).Error
}

// DetachMember removes a user from a project. The owner can never be
// detached; removing a non-member is a no-op.
func DetachMember(db *gorm.DB, project *models.Project, userID uint) error {
	if userID == project.OwnerID {
		return types.ErrOwnerCannotBeRemoved
	}

	return db.Where("project_id = ? AND user_id = ?", project.ID, userID).
		Delete(&models.ProjectMembership{}).Error
}

// IsMember reports whether a user belongs to a project. The owner counts
// as a member even if their membership row were ever missing.
func IsMember(db *gorm.DB, project *models.Project, userID uint) (bool, error) {
	if project.OwnerID == userID {
		return true, nil
	}

	var count int64

	err := db.Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", project.ID, userID).
		Count(&count).Error

	return count > 0, err
}

func ListMembers(db *gorm.DB, projectID uint) ([]models.User, error) {
	var members []models.User

	err := db.Joins("JOIN project_memberships ON project_memberships.user_id = users.id").
		Where("project_memberships.project_id = ?", projectID).
		Order("users.id").
		Find(&members).Error

	return members, err
}
