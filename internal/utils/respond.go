package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/types"
	"gorm.io/gorm"
)

// RespondError maps a business-rule error to its HTTP status and body.
// Anything outside the known taxonomy is logged server-side and surfaced
// as a generic 500 so internals never reach the client.
func RespondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrUnauthorized):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case errors.Is(err, types.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": types.ErrUserNotFound.Error()})
	case errors.Is(err, types.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, types.ErrAlreadyMember):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": types.ErrAlreadyMember.Error()})
	case errors.Is(err, types.ErrOwnerCannotBeRemoved):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": types.ErrOwnerCannotBeRemoved.Error()})
	default:
		log.Printf("Internal error on %s %s: %v", ctx.Request.Method, ctx.FullPath(), err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
