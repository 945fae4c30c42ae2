package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/authz"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/services"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

func ListInvitations(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invitations, err := services.ListInvitations(db.DB, currentUser.Email)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	response := make([]types.InvitationResponse, 0, len(invitations))

	for _, invitation := range invitations {
		response = append(response, types.NewInvitationResponse(invitation))
	}

	ctx.JSON(http.StatusOK, response)
}

// loadAuthorizedInvitation resolves the invitation_id param and checks
// the email-match rule; being a member of the project grants nothing
// here.
func loadAuthorizedInvitation(ctx *gin.Context) (models.ProjectInvitation, bool) {
	var invitation models.ProjectInvitation

	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return invitation, false
	}

	invitationID, err := utils.GetParamID(ctx, "invitation_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return invitation, false
	}

	invitation, err = services.GetInvitation(db.DB, invitationID)

	if err != nil {
		utils.RespondError(ctx, err)
		return invitation, false
	}

	if err := authz.Authorize(db.DB, actor, authz.InvitationRespond, &invitation); err != nil {
		utils.RespondError(ctx, err)
		return invitation, false
	}

	return invitation, true
}

func AcceptInvitation(ctx *gin.Context) {
	invitation, ok := loadAuthorizedInvitation(ctx)

	if !ok {
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := services.AcceptInvitation(db.DB, &invitation, userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invitation accepted successfully."})
}

func DeclineInvitation(ctx *gin.Context) {
	invitation, ok := loadAuthorizedInvitation(ctx)

	if !ok {
		return
	}

	if err := services.DeclineInvitation(db.DB, &invitation); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Invitation declined successfully."})
}
