package utils

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report validation failures under the json field name, which is what
	// the frontend keys its error rendering on.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// RespondBindingError converts a gin binding failure into the 422
// per-field error map the frontend expects. Malformed JSON that never
// reached validation is a plain 400.
func RespondBindingError(ctx *gin.Context, err error) {
	var validationErrors validator.ValidationErrors

	if !errors.As(err, &validationErrors) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	fields := make(map[string][]string)

	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = append(fields[fieldError.Field()], validationMessage(fieldError))
	}

	RespondFieldErrors(ctx, fields)
}

// RespondFieldErrors emits a 422 with field-keyed messages for rule
// violations detected past binding, e.g. a taken email.
func RespondFieldErrors(ctx *gin.Context, fields map[string][]string) {
	ctx.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "The given data was invalid.",
		"errors":  fields,
	})
}

func validationMessage(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Must be a valid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters.", fieldError.Param())
	case "max":
		return fmt.Sprintf("May not be greater than %s characters.", fieldError.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.Join(strings.Split(fieldError.Param(), " "), ", "))
	case "datetime":
		return "Must be a valid date in YYYY-MM-DD format."
	case "eqfield":
		return "Confirmation does not match."
	default:
		return "This field is invalid."
	}
}
