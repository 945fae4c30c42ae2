package types

import (
	"encoding/json"
	"time"

	"github.com/taskhive-dev/taskhive/internal/models"
)

// DateFormat is the wire format for project and task deadlines.
const DateFormat = "2006-01-02"

type UserResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	ProfilePicturePath string `json:"profile_picture_path,omitempty"`
}

type ProjectResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Deadline    string         `json:"deadline"`
	OwnerID     uint           `json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	Members     []UserResponse `json:"members,omitempty"`
}

type TaskResponse struct {
	ID          uint             `json:"id"`
	ProjectID   uint             `json:"project_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Priority    string           `json:"priority"`
	Status      string           `json:"status"`
	Deadline    string           `json:"deadline"`
	AssigneeID  *uint            `json:"assignee_id"`
	Assignee    *UserResponse    `json:"assignee,omitempty"`
	Project     *ProjectResponse `json:"project,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type InvitationResponse struct {
	ID        uint             `json:"id"`
	ProjectID uint             `json:"project_id"`
	Email     string           `json:"email"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	Project   *ProjectResponse `json:"project,omitempty"`
}

type NotificationResponse struct {
	ID        uint            `json:"id"`
	Message   string          `json:"message"`
	Link      string          `json:"link"`
	IsRead    bool            `json:"is_read"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		ProfilePicturePath: user.ProfilePicturePath,
	}
}

func NewProjectResponse(project models.Project, members []models.User) ProjectResponse {
	resp := ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Deadline:    project.Deadline.Format(DateFormat),
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
	}

	for _, member := range members {
		resp.Members = append(resp.Members, NewUserResponse(member))
	}

	return resp
}

func NewTaskResponse(task models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Status:      task.Status,
		Deadline:    task.Deadline.Format(DateFormat),
		AssigneeID:  task.AssigneeID,
		CreatedAt:   task.CreatedAt,
	}

	if task.Assignee != nil {
		assignee := NewUserResponse(*task.Assignee)
		resp.Assignee = &assignee
	}

	if task.Project.ID != 0 {
		project := NewProjectResponse(task.Project, nil)
		resp.Project = &project
	}

	return resp
}

func NewInvitationResponse(invitation models.ProjectInvitation) InvitationResponse {
	resp := InvitationResponse{
		ID:        invitation.ID,
		ProjectID: invitation.ProjectID,
		Email:     invitation.Email,
		Status:    invitation.Status,
		CreatedAt: invitation.CreatedAt,
	}

	if invitation.Project.ID != 0 {
		project := NewProjectResponse(invitation.Project, nil)
		resp.Project = &project
	}

	return resp
}

func NewNotificationResponse(notification models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		Message:   notification.Message,
		Link:      notification.Link,
		IsRead:    notification.IsRead,
		Data:      json.RawMessage(notification.Data),
		CreatedAt: notification.CreatedAt,
	}
}
