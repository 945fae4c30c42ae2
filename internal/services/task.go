package services

import (
	"errors"
	"time"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
	Deadline    time.Time
	AssigneeID  *uint
}

func CreateTask(db *gorm.DB, projectID uint, input TaskInput) (models.Task, error) {
	task := models.Task{
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      input.Status,
		Deadline:    input.Deadline,
		AssigneeID:  input.AssigneeID,
	}

	if err := db.Create(&task).Error; err != nil {
		return task, err
	}

	return task, nil
}

func GetTask(db *gorm.DB, projectID, taskID uint) (models.Task, error) {
	var task models.Task

	if err := db.Where("id = ? AND project_id = ?", taskID, projectID).
		Preload("Assignee").
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return task, types.ErrNotFound
		}
		return task, err
	}

	return task, nil
}

// UpdateTask applies a partial field set; omitted fields are unchanged.
// Status moves freely between any two values.
func UpdateTask(db *gorm.DB, task *models.Task, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}

	return db.Model(task).Updates(updates).Error
}

// DeleteTask is a hard delete, irreversible.
func DeleteTask(db *gorm.DB, task *models.Task) error {
	return db.Delete(task).Error
}

func ListProjectTasks(db *gorm.DB, projectID uint) ([]models.Task, error) {
	var tasks []models.Task

	err := db.Where("project_id = ?", projectID).
		Preload("Assignee").
		Order("created_at DESC").
		Find(&tasks).Error

	return tasks, err
}

// ListUserTasks returns every task across the projects the user owns or
// is a member of. The reachable-id set is already de-duplicated, so a
// task is listed once even when the user both owns and belongs to its
// project.
func ListUserTasks(db *gorm.DB, userID uint) ([]models.Task, error) {
	projectIDs, err := ReachableProjectIDs(db, userID)

	if err != nil {
		return nil, err
	}

	if len(projectIDs) == 0 {
		return nil, nil
	}

	var tasks []models.Task

	err = db.Where("project_id IN ?", projectIDs).
		Preload("Project").
		Preload("Assignee").
		Order("created_at DESC").
		Find(&tasks).Error

	return tasks, err
}

// UserExists backs the assignee existence check on task create/update.
func UserExists(db *gorm.DB, userID uint) (bool, error) {
	var count int64

	err := db.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error

	return count > 0, err
}
