package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetParamID parses a numeric route parameter.
func GetParamID(ctx *gin.Context, name string) (uint, error) {
	idStr := ctx.Param(name)

	id, err := strconv.ParseUint(idStr, 10, 64)

	if err != nil {
		return 0, fmt.Errorf("Invalid %s", name)
	}

	return uint(id), nil
}

func GetProjectID(ctx *gin.Context) (uint, error) {
	return GetParamID(ctx, "project_id")
}

func GetProjectTaskID(ctx *gin.Context) (uint, uint, error) {
	projectID, err := GetProjectID(ctx)

	if err != nil {
		return 0, 0, err
	}

	taskID, err := GetParamID(ctx, "task_id")

	if err != nil {
		return 0, 0, err
	}

	return projectID, taskID, nil
}
