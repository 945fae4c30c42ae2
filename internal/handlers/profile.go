package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/db"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/services"
	"github.com/taskhive-dev/taskhive/internal/storage"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=255"`
}

type UpdatePasswordRequest struct {
	CurrentPassword      string `json:"current_password" binding:"required"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

func currentDBUser(ctx *gin.Context) (models.User, bool) {
	var user models.User

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return user, false
	}

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return user, false
	}

	return user, true
}

func UpdateProfile(ctx *gin.Context) {
	user, ok := currentDBUser(ctx)

	if !ok {
		return
	}

	var req UpdateProfileRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	newEmail := strings.ToLower(strings.TrimSpace(req.Email))

	if newEmail != user.Email {
		var existingUser models.User

		err := db.DB.Where("email = ? AND id != ?", newEmail, user.ID).First(&existingUser).Error

		if err == nil {
			utils.RespondFieldErrors(ctx, map[string][]string{
				"email": {"The email has already been taken."},
			})
			return
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when checking existing email: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	updates := map[string]interface{}{
		"name":  strings.TrimSpace(req.Name),
		"email": newEmail,
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Printf("Failed to update profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = newEmail

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"user":    types.NewUserResponse(user),
	})
}

func UpdatePassword(ctx *gin.Context) {
	user, ok := currentDBUser(ctx)

	if !ok {
		return
	}

	var req UpdatePasswordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		utils.RespondFieldErrors(ctx, map[string][]string{
			"current_password": {"The password is incorrect."},
		})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash new password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.Model(&user).Update("password_hash", string(passwordHash)).Error; err != nil {
		log.Printf("Failed to update password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password updated successfully."})
}

func UploadProfilePicture(ctx *gin.Context) {
	user, ok := currentDBUser(ctx)

	if !ok {
		return
	}

	file, err := ctx.FormFile("profile_picture")

	if err != nil {
		utils.RespondFieldErrors(ctx, map[string][]string{
			"profile_picture": {"This field is required."},
		})
		return
	}

	if file.Size > storage.MaxProfilePictureSize {
		utils.RespondFieldErrors(ctx, map[string][]string{
			"profile_picture": {"May not be greater than 2 megabytes."},
		})
		return
	}

	path, err := storage.ProfilePicturePath(file.Filename)

	if err != nil {
		utils.RespondFieldErrors(ctx, map[string][]string{
			"profile_picture": {"Must be an image."},
		})
		return
	}

	if err := ctx.SaveUploadedFile(file, storage.Abs(path)); err != nil {
		log.Printf("Failed to store profile picture: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	oldPath := user.ProfilePicturePath

	if err := db.DB.Model(&user).Update("profile_picture_path", path).Error; err != nil {
		log.Printf("Failed to update profile picture path: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := storage.Remove(oldPath); err != nil {
		log.Printf("Failed to remove old profile picture %s: %v", oldPath, err)
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile picture updated successfully.",
		"path":    path,
	})
}

func RemoveProfilePicture(ctx *gin.Context) {
	user, ok := currentDBUser(ctx)

	if !ok {
		return
	}

	oldPath := user.ProfilePicturePath

	if err := db.DB.Model(&user).Update("profile_picture_path", "").Error; err != nil {
		log.Printf("Failed to clear profile picture path: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := storage.Remove(oldPath); err != nil {
		log.Printf("Failed to remove old profile picture %s: %v", oldPath, err)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile picture removed successfully."})
}

// DeleteAccount re-verifies the password, then removes the user and all
// of their data.
func DeleteAccount(ctx *gin.Context) {
	user, ok := currentDBUser(ctx)

	if !ok {
		return
	}

	var req DeleteAccountRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.RespondFieldErrors(ctx, map[string][]string{
			"password": {"The password is incorrect."},
		})
		return
	}

	if err := services.DeleteAccount(db.DB, user.ID); err != nil {
		log.Printf("Failed to delete account: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := storage.Remove(user.ProfilePicturePath); err != nil {
		log.Printf("Failed to remove profile picture %s: %v", user.ProfilePicturePath, err)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully."})
}
