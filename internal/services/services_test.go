package services

import (
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/taskhive-dev/taskhive/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})

	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.ProjectInvitation{},
		&models.Task{},
		&models.Notification{},
	)

	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sqlDB, err := gdb.DB()

	if err != nil {
		t.Fatalf("unwrap database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })

	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, name, email string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "not-a-real-hash",
	}

	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}

	return user
}

func createProject(t *testing.T, gdb *gorm.DB, ownerID uint, title string) models.Project {
	t.Helper()

	project, err := CreateProject(gdb, ownerID, ProjectInput{
		Title:       title,
		Description: "a project",
		Deadline:    time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	})

	if err != nil {
		t.Fatalf("create project %s: %v", title, err)
	}

	return project
}

func createTask(t *testing.T, gdb *gorm.DB, projectID uint, title, status string) models.Task {
	t.Helper()

	task, err := CreateTask(gdb, projectID, TaskInput{
		Title:       title,
		Description: "a task",
		Priority:    "medium",
		Status:      status,
		Deadline:    time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	})

	if err != nil {
		t.Fatalf("create task %s: %v", title, err)
	}

	return task
}

func membershipCount(t *testing.T, gdb *gorm.DB, projectID, userID uint) int64 {
	t.Helper()

	var count int64

	err := gdb.Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error

	if err != nil {
		t.Fatalf("count memberships: %v", err)
	}

	return count
}
