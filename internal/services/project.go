package services

import (
	"errors"
	"time"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

type ProjectInput struct {
	Title       string
	Description string
	Deadline    time.Time
}

// CreateProject inserts the project and the owner's membership row in one
// transaction, so the owner is never missing from the member list.
func CreateProject(db *gorm.DB, ownerID uint, input ProjectInput) (models.Project, error) {
	project := models.Project{
		Title:       input.Title,
		Description: input.Description,
		Deadline:    input.Deadline,
		OwnerID:     ownerID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		return AttachMember(tx, project.ID, ownerID)
	})

	return project, err
}

func GetProject(db *gorm.DB, projectID uint) (models.Project, error) {
	var project models.Project

	if err := db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return project, types.ErrNotFound
		}
		return project, err
	}

	return project, nil
}

// ListProjects returns projects the user owns and projects they were
// added to by someone else, both newest first. A project the user owns is
// never repeated in the shared list.
func ListProjects(db *gorm.DB, userID uint) (owned []models.Project, shared []models.Project, err error) {
	if err = db.Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&owned).Error; err != nil {
		return nil, nil, err
	}

	err = db.Joins("JOIN project_memberships ON project_memberships.project_id = projects.id").
		Where("project_memberships.user_id = ? AND projects.owner_id != ?", userID, userID).
		Order("projects.created_at DESC").
		Find(&shared).Error

	return owned, shared, err
}

func UpdateProject(db *gorm.DB, project *models.Project, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	return db.Model(project).Updates(updates).Error
}

// DeleteProject removes the project and everything scoped to it: tasks,
// invitations and membership rows. Explicit cascade keeps the behavior
// identical across database drivers.
func DeleteProject(db *gorm.DB, projectID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		return deleteProjectTx(tx, projectID)
	})
}

func deleteProjectTx(tx *gorm.DB, projectID uint) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.Task{}).Error; err != nil {
		return err
	}

	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectInvitation{}).Error; err != nil {
		return err
	}

	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectMembership{}).Error; err != nil {
		return err
	}

	return tx.Delete(&models.Project{}, projectID).Error
}

// ReachableProjectIDs is the de-duplicated set of projects the user owns
// or is a member of.
func ReachableProjectIDs(db *gorm.DB, userID uint) ([]uint, error) {
	var ownedIDs []uint

	if err := db.Model(&models.Project{}).
		Where("owner_id = ?", userID).
		Pluck("id", &ownedIDs).Error; err != nil {
		return nil, err
	}

	var memberIDs []uint

	if err := db.Model(&models.ProjectMembership{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &memberIDs).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]bool, len(ownedIDs)+len(memberIDs))
	ids := make([]uint, 0, len(ownedIDs)+len(memberIDs))

	for _, id := range append(ownedIDs, memberIDs...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}
