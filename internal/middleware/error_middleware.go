package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentsvc/internal/app/models/dto"
	"github.com/yigit/studentsvc/internal/pkg/apperrors"
	"github.com/yigit/studentsvc/internal/pkg/logger"
)

// HandleAPIError handles common API errors and returns appropriate responses.
// There is no not-found class: absent students are reported by the handlers.
func HandleAPIError(c *gin.Context, err error) {
	_ = c.Error(err)

	var pErr *apperrors.PersistenceError
	var brErr *apperrors.BadRequestError
	switch {
	case errors.As(err, &pErr):
		logger.Error().Err(err).Str("op", pErr.Op).Str("sqlstate", pErr.Code).
			Str("requestID", RequestID(c)).Msg("Persistence failure")
		detail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database error").
			WithSeverity(dto.ErrorSeverityCritical)
		if pErr.Code != "" {
			detail = detail.WithDetails(map[string]string{"sqlstate": pErr.Code})
		}
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(detail))
	case errors.As(err, &brErr):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, brErr.Message).WithField(brErr.Field)
		if brErr.Details != "" {
			detail = detail.WithDetails(brErr.Details)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	default:
		logger.Error().Err(err).Str("requestID", RequestID(c)).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
	}
}
