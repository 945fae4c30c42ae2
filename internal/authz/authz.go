// Package authz is the single authorization gate. Every mutating or
// entity-scoped handler asks it the same question — may this actor perform
// this action on this target — so the ownership rules live in exactly one
// place instead of being repeated inline at each endpoint.
package authz

import (
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

type Action string

const (
	ProjectRead       Action = "project:read"
	ProjectMutate     Action = "project:mutate"
	ProjectInvite     Action = "project:invite"
	MemberRemove      Action = "member:remove"
	TaskRead          Action = "task:read"
	TaskMutate        Action = "task:mutate"
	InvitationRespond Action = "invitation:respond"
	NotificationRead  Action = "notification:read"
)

// Actor is the authenticated identity a request resolved to.
type Actor struct {
	ID    uint
	Email string
}

// Authorize returns nil when actor may perform action on target, and
// types.ErrUnauthorized otherwise. Denial is always an explicit error,
// never a silent no-op. Targets are the loaded models the action applies
// to: *models.Project, *models.Task, *models.ProjectInvitation or
// *models.Notification.
func Authorize(db *gorm.DB, actor Actor, action Action, target interface{}) error {
	switch action {
	case ProjectMutate, ProjectInvite, MemberRemove:
		project, ok := target.(*models.Project)
		if ok && project.OwnerID == actor.ID {
			return nil
		}

	case ProjectRead:
		project, ok := target.(*models.Project)
		if !ok {
			break
		}
		if project.OwnerID == actor.ID {
			return nil
		}
		member, err := hasMembership(db, project.ID, actor.ID)
		if err != nil {
			return err
		}
		if member {
			return nil
		}

	case TaskMutate:
		task, ok := target.(*models.Task)
		if !ok {
			break
		}
		ownerID, err := projectOwnerID(db, task.ProjectID)
		if err != nil {
			return err
		}
		// Assignees get no implicit write access.
		if ownerID == actor.ID {
			return nil
		}

	case TaskRead:
		task, ok := target.(*models.Task)
		if !ok {
			break
		}
		ownerID, err := projectOwnerID(db, task.ProjectID)
		if err != nil {
			return err
		}
		if ownerID == actor.ID {
			return nil
		}
		member, err := hasMembership(db, task.ProjectID, actor.ID)
		if err != nil {
			return err
		}
		if member {
			return nil
		}

	case InvitationRespond:
		// Invitations are owned by email match, not by user id.
		invitation, ok := target.(*models.ProjectInvitation)
		if ok && invitation.Email == actor.Email {
			return nil
		}

	case NotificationRead:
		notification, ok := target.(*models.Notification)
		if ok && notification.UserID == actor.ID {
			return nil
		}
	}

	return types.ErrUnauthorized
}

func hasMembership(db *gorm.DB, projectID, userID uint) (bool, error) {
	var count int64

	err := db.Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error

	return count > 0, err
}

func projectOwnerID(db *gorm.DB, projectID uint) (uint, error) {
	var project models.Project

	if err := db.Select("id", "owner_id").First(&project, projectID).Error; err != nil {
		return 0, err
	}

	return project.OwnerID, nil
}
