package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"meetscribe/internal/api/errors"
)

// Validator is implemented by DTOs with rules beyond struct tags.
type Validator interface {
	Validate() error
}

// ValidateRequest binds the JSON body and runs tag validation, then the
// DTO's own Validate when it has one.
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		validationErrors := make(map[string]string)

		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrs {
				field := strings.ToLower(fieldError.Field())
				validationErrors[field] = tagMessage(fieldError.Tag())
			}
		} else {
			validationErrors["request"] = "invalid JSON format"
		}

		return errors.NewValidationError("Validation failed", validationErrors)
	}

	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "is too small"
	case "max":
		return "is too large"
	case "oneof":
		return "must be one of the allowed values"
	default:
		return "is invalid"
	}
}
