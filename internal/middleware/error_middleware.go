package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eakgun/sims-backend/internal/app/models/dto"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
	"github.com/eakgun/sims-backend/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP responses. Conflicts and
// validation failures are both client errors (400); only errors nobody
// mapped become a 500, and those are logged with their cause.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.IsConflict(err):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrInvalidRole):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	case apperrors.IsNotFound(err):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "You do not have permission to perform this action")
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid username or password")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrUnauthenticated):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}

// HandleBindingError maps request binding failures onto a 400 with
// field-level messages.
func HandleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
