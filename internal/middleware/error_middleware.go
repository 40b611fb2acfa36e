package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/derin/classpanel/internal/app/models/dto"
	"github.com/derin/classpanel/internal/pkg/apperrors"
	"github.com/derin/classpanel/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Sentinels from
// apperrors carry the status; anything unrecognized is a 500 with the
// caller-supplied resource message, and the detail stays in the server log.
func HandleAPIError(c *gin.Context, err error, serverErrorMessage string) {
	switch {
	case errors.Is(err, apperrors.ErrDepartmentNotFound):
		c.JSON(404, dto.NewErrorResponse("Department not found"))
	case errors.Is(err, apperrors.ErrSubjectNotFound):
		c.JSON(404, dto.NewErrorResponse("Subject not found"))
	case errors.Is(err, apperrors.ErrClassNotFound):
		c.JSON(404, dto.NewErrorResponse("Class not found"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(404, dto.NewErrorResponse("User not found"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse("Resource not found"))
	case errors.Is(err, apperrors.ErrDepartmentAlreadyExists):
		c.JSON(409, dto.NewErrorResponse("Department with this code already exists"))
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		c.JSON(409, dto.NewErrorResponse("Student is already enrolled in this class"))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.NewErrorResponse("Resource already exists"))
	case errors.Is(err, apperrors.ErrInvalidRole):
		c.JSON(400, dto.NewErrorResponse("Invalid role"))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(validationMessage(err)))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		c.JSON(500, dto.NewErrorResponse(serverErrorMessage))
	}
}

// validationMessage prefers the specific message a CustomError carries
// over the generic fallback.
func validationMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return "Validation failed"
}
