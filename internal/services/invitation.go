package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InviteResult struct {
	Invitation models.ProjectInvitation
	Invitee    models.User
}

// InviteMember offers project membership to an email address. The email
// must belong to an existing account, and that account must not already
// be a member or the owner. Re-inviting upserts the existing
// (project, email) row back to pending instead of creating a second one.
// The invitee's notification is written in the same transaction as the
// invitation, so neither can exist without the other.
func InviteMember(db *gorm.DB, project *models.Project, email string) (InviteResult, error) {
	var result InviteResult

	email = strings.ToLower(strings.TrimSpace(email))

	var invitee models.User

	if err := db.Where("email = ?", email).First(&invitee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, types.ErrUserNotFound
		}
		return result, err
	}

	member, err := IsMember(db, project, invitee.ID)

	if err != nil {
		return result, err
	}

	if member {
		return result, types.ErrAlreadyMember
	}

	var invitation models.ProjectInvitation

	err = db.Transaction(func(tx *gorm.DB) error {
		invitation = models.ProjectInvitation{
			ProjectID: project.ID,
			Email:     email,
			Status:    types.InvitationPending,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}, {Name: "email"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":     types.InvitationPending,
				"updated_at": time.Now(),
			}),
		}).Create(&invitation).Error; err != nil {
			return err
		}

		// Re-read so a re-invite reports the original row and id.
		if err := tx.Where("project_id = ? AND email = ?", project.ID, email).First(&invitation).Error; err != nil {
			return err
		}

		payload, err := json.Marshal(map[string]interface{}{
			"project_id":    project.ID,
			"invitation_id": invitation.ID,
		})
		if err != nil {
			return err
		}

		notification := models.Notification{
			UserID:  invitee.ID,
			Message: fmt.Sprintf("You have been invited to join the project '%s'.", project.Title),
			Link:    fmt.Sprintf("/projects/%d", project.ID),
			Data:    datatypes.JSON(payload),
		}

		return tx.Create(&notification).Error
	})

	if err != nil {
		return result, err
	}

	sendInvitationMail(invitee, project)

	result.Invitation = invitation
	result.Invitee = invitee

	return result, nil
}

func GetInvitation(db *gorm.DB, invitationID uint) (models.ProjectInvitation, error) {
	var invitation models.ProjectInvitation

	if err := db.First(&invitation, invitationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invitation, types.ErrNotFound
		}
		return invitation, err
	}

	return invitation, nil
}

// ListInvitations returns the pending invitations addressed to an email,
// newest first, with each invitation's project loaded.
func ListInvitations(db *gorm.DB, email string) ([]models.ProjectInvitation, error) {
	var invitations []models.ProjectInvitation

	err := db.Where("email = ? AND status = ?", email, types.InvitationPending).
		Order("created_at DESC").
		Preload("Project").
		Find(&invitations).Error

	return invitations, err
}

// AcceptInvitation attaches the user and marks the invitation accepted.
// Accepting an already-accepted invitation changes nothing: the membership
// insert is idempotent and the status stays accepted.
func AcceptInvitation(db *gorm.DB, invitation *models.ProjectInvitation, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := AttachMember(tx, invitation.ProjectID, userID); err != nil {
			return err
		}

		return tx.Model(invitation).Update("status", types.InvitationAccepted).Error
	})
}

// DeclineInvitation marks the invitation declined. Membership is never
// touched.
func DeclineInvitation(db *gorm.DB, invitation *models.ProjectInvitation) error {
	return db.Model(invitation).Update("status", types.InvitationDeclined).Error
}
