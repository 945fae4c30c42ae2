package services

import (
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

type StatusCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type DashboardStats struct {
	TotalProjects   int64         `json:"total_projects"`
	TasksInProgress int64         `json:"tasks_in_progress"`
	CompletedTasks  int64         `json:"completed_tasks"`
	TasksByStatus   []StatusCount `json:"tasks_by_status"`
}

// GetDashboardStats recomputes the read-side projection on every call:
// owned-project count plus task counts grouped by status over the
// de-duplicated reachable project set.
func GetDashboardStats(db *gorm.DB, userID uint) (DashboardStats, error) {
	var stats DashboardStats

	if err := db.Model(&models.Project{}).
		Where("owner_id = ?", userID).
		Count(&stats.TotalProjects).Error; err != nil {
		return stats, err
	}

	projectIDs, err := ReachableProjectIDs(db, userID)

	if err != nil {
		return stats, err
	}

	counts := map[string]int64{}

	if len(projectIDs) > 0 {
		var rows []struct {
			Status string
			Count  int64
		}

		if err := db.Model(&models.Task{}).
			Select("status, COUNT(*) AS count").
			Where("project_id IN ?", projectIDs).
			Group("status").
			Scan(&rows).Error; err != nil {
			return stats, err
		}

		for _, row := range rows {
			counts[row.Status] = row.Count
		}
	}

	stats.TasksInProgress = counts[types.TaskStatusInProgress]
	stats.CompletedTasks = counts[types.TaskStatusDone]
	stats.TasksByStatus = []StatusCount{
		{Name: "Todo", Value: counts[types.TaskStatusTodo]},
		{Name: "In Progress", Value: counts[types.TaskStatusInProgress]},
		{Name: "Done", Value: counts[types.TaskStatusDone]},
	}

	return stats, nil
}
