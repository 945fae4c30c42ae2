package handlers

import (
	"log"
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

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Deadline    string `json:"deadline" binding:"required,datetime=2006-01-02"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline" binding:"omitempty,datetime=2006-01-02"`
}

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func projectResponse(project models.Project) types.ProjectResponse {
	members, err := services.ListMembers(db.DB, project.ID)

	if err != nil {
		log.Printf("Failed to list members of project %d: %v", project.ID, err)
	}

	return types.NewProjectResponse(project, members)
}

func CreateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateProjectRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	deadline, _ := time.Parse(types.DateFormat, req.Deadline)

	project, err := services.CreateProject(db.DB, userID, services.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
	})

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

func ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	owned, shared, err := services.ListProjects(db.DB, userID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ownedResponse := make([]types.ProjectResponse, 0, len(owned))
	sharedResponse := make([]types.ProjectResponse, 0, len(shared))

	for _, project := range owned {
		ownedResponse = append(ownedResponse, projectResponse(project))
	}

	for _, project := range shared {
		sharedResponse = append(sharedResponse, projectResponse(project))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"owned":  ownedResponse,
		"shared": sharedResponse,
	})
}

// loadAuthorizedProject resolves the project_id route param and runs the
// given action through the authorization gate. Responses for the failure
// paths are already written when ok is false.
func loadAuthorizedProject(ctx *gin.Context, action authz.Action) (models.Project, bool) {
	var project models.Project

	actor, err := utils.GetCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return project, false
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return project, false
	}

	project, err = services.GetProject(db.DB, projectID)

	if err != nil {
		utils.RespondError(ctx, err)
		return project, false
	}

	if err := authz.Authorize(db.DB, actor, action, &project); err != nil {
		utils.RespondError(ctx, err)
		return project, false
	}

	return project, true
}

func GetProject(ctx *gin.Context) {
	project, ok := loadAuthorizedProject(ctx, authz.ProjectRead)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func UpdateProject(ctx *gin.Context) {
	project, ok := loadAuthorizedProject(ctx, authz.ProjectMutate)

	if !ok {
		return
	}

	var req UpdateProjectRequest

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

	if req.Deadline != nil {
		deadline, err := time.Parse(types.DateFormat, *req.Deadline)
		if err != nil {
			fieldErrors["deadline"] = append(fieldErrors["deadline"], "Must be a valid date in YYYY-MM-DD format.")
		} else {
			updates["deadline"] = deadline
		}
	}

	if len(fieldErrors) > 0 {
		utils.RespondFieldErrors(ctx, fieldErrors)
		return
	}

	if err := services.UpdateProject(db.DB, &project, updates); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	project, err := services.GetProject(db.DB, project.ID)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func DeleteProject(ctx *gin.Context) {
	project, ok := loadAuthorizedProject(ctx, authz.ProjectMutate)

	if !ok {
		return
	}

	if err := services.DeleteProject(db.DB, project.ID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func InviteMember(ctx *gin.Context) {
	project, ok := loadAuthorizedProject(ctx, authz.ProjectInvite)

	if !ok {
		return
	}

	var req InviteMemberRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	result, err := services.InviteMember(db.DB, &project, req.Email)

	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Invitation sent successfully.",
		"invitation": types.NewInvitationResponse(result.Invitation),
		"user":       types.NewUserResponse(result.Invitee),
	})
}

func RemoveMember(ctx *gin.Context) {
	project, ok := loadAuthorizedProject(ctx, authz.MemberRemove)

	if !ok {
		return
	}

	userID, err := utils.GetParamID(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DetachMember(db.DB, &project, userID); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Member removed successfully."})
}
