package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/authz"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/services"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high"`
	Status      string `json:"status" binding:"required,oneof=todo in-progress done"`
	Deadline    string `json:"deadline" binding:"required,datetime=2006-01-02"`
	AssigneeID  *uint  `json:"assignee_id"`
}

// UpdateTaskRequest carries a partial field set; omitted fields are left
// unchanged. An assignee_id of 0 clears the assignee.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status      *string `json:"status" binding:"omitempty,oneof=todo in-progress done"`
	Deadline    *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
	AssigneeID  *uint   `json:"assignee_id"`
}

// checkAssignee validates that a supplied assignee references an existing
// user. Membership in the project is deliberately not required.
func checkAssignee(ctx *gin.Context, assigneeID uint) bool {
	exists, err := services.UserExists(db.DB, assigneeID)

	if err != nil {
		utils.RespondError(ctx, err)
		return false
	}

	if !exists {
		utils.RespondFieldErrors(ctx, map[string][]string{
			"assignee_id": {"The selected assignee is invalid."},
		})
		return false
	}

	return true
}

func ListProjectTasks(ctx *gin.Context) {
	project, ok := loadAuthorizedProject(ctx, authz.ProjectRead)

	if !ok {
		return
	}

	tasks, err := services.ListProjectTasks(db.DB, project.ID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	response := make([]types.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, types.NewTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateTask(ctx *gin.Context) {
	project, ok := loadAuthorizedProject(ctx, authz.ProjectMutate)

	if !ok {
		return
	}

	var req CreateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	if req.AssigneeID != nil && !checkAssignee(ctx, *req.AssigneeID) {
		return
	}

	deadline, _ := time.Parse(types.DateFormat, req.Deadline)

	task, err := services.CreateTask(db.DB, project.ID, services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Deadline:    deadline,
		AssigneeID:  req.AssigneeID,
	})

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.NewTaskResponse(task))
}

// loadAuthorizedTask resolves the nested project_id/task_id params and
// runs the action through the gate against the task.
func loadAuthorizedTask(ctx *gin.Context, action authz.Action) (models.Task, bool) {
	var task models.Task

	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return task, false
	}

	projectID, taskID, err := utils.GetProjectTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return task, false
	}

	task, err = services.GetTask(db.DB, projectID, taskID)

	if err != nil {
		utils.RespondError(ctx, err)
		return task, false
	}

	if err := authz.Authorize(db.DB, actor, action, &task); err != nil {
		utils.RespondError(ctx, err)
		return task, false
	}

	return task, true
}

func GetTask(ctx *gin.Context) {
	task, ok := loadAuthorizedTask(ctx, authz.TaskRead)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(task))
}

func UpdateTask(ctx *gin.Context) {
	task, ok := loadAuthorizedTask(ctx, authz.TaskMutate)

	if !ok {
		return
	}

	var req UpdateTaskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	updates := make(map[string]interface{})
	fieldErrors := make(map[string][]string)

	if req.Title != nil {
		if *req.Title == "" {
			fieldErrors["title"] = append(fieldErrors["title"], "This field is required.")
		} else {
			updates["title"] = *req.Title
		}
	}

	if req.Description != nil {
		if *req.Description == "" {
			fieldErrors["description"] = append(fieldErrors["description"], "This field is required.")
		} else {
			updates["description"] = *req.Description
		}
	}

	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}

	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if req.Deadline != nil {
		deadline, err := time.Parse(types.DateFormat, *req.Deadline)
		if err != nil {
			fieldErrors["deadline"] = append(fieldErrors["deadline"], "Must be a valid date in YYYY-MM-DD format.")
		} else {
			updates["deadline"] = deadline
		}
	}

	if req.AssigneeID != nil {
		if *req.AssigneeID == 0 {
			updates["assignee_id"] = nil
		} else {
			exists, err := services.UserExists(db.DB, *req.AssigneeID)

			if err != nil {
				utils.RespondError(ctx, err)
				return
			}

			if !exists {
				fieldErrors["assignee_id"] = append(fieldErrors["assignee_id"], "The selected assignee is invalid.")
			} else {
				updates["assignee_id"] = *req.AssigneeID
			}
		}
	}

	if len(fieldErrors) > 0 {
		utils.RespondFieldErrors(ctx, fieldErrors)
		return
	}

	if err := services.UpdateTask(db.DB, &task, updates); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	task, err := services.GetTask(db.DB, task.ProjectID, task.ID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.NewTaskResponse(task))
}

func DeleteTask(ctx *gin.Context) {
	task, ok := loadAuthorizedTask(ctx, authz.TaskMutate)

	if !ok {
		return
	}

	if err := services.DeleteTask(db.DB, &task); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListUserTasks returns every task reachable by the current user across
// owned and shared projects.
func ListUserTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tasks, err := services.ListUserTasks(db.DB, userID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	response := make([]types.TaskResponse, 0, len(tasks))

	for _, task := range tasks {
		response = append(response, types.NewTaskResponse(task))
	}

	ctx.JSON(http.StatusOK, response)
}
