package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/pos_backoffice/internal/apperrors"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps a service error onto the response envelope.
// fallback is the message shown for unexpected failures.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var vErr *apperrors.ValidationError
	var fundsErr *apperrors.InsufficientFundsError

	switch {
	case errors.As(err, &vErr):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Failure("Validation failed", vErr.Fields))
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Failure(err.Error(), nil))
	case errors.As(err, &fundsErr):
		logger.Warn("Insufficient capital", slog.String("currency_code", fundsErr.CurrencyCode))
		c.JSON(http.StatusBadRequest, dto.Failure("Not enough capital in "+fundsErr.CurrencyCode, nil))
	case errors.Is(err, apperrors.ErrInsufficientConfiguration):
		logger.Warn("Capital not configured", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.Failure(err.Error(), nil))
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.Failure(err.Error(), nil))
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.Failure(err.Error(), nil))
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent update conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.Failure("The record was changed by another request, please retry", nil))
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.Failure(fallback, nil))
	}
}

// respondBindError reports a request that could not be bound, listing failed fields when known.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make(map[string]string, len(vErrs))
		for _, fe := range vErrs {
			fields[lowerFirst(fe.Field())] = describeFieldError(fe)
		}
		c.JSON(http.StatusBadRequest, dto.Failure("Validation failed", fields))
		return
	}
	c.JSON(http.StatusBadRequest, dto.Failure("Invalid request format: "+err.Error(), nil))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return "must be " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// requireUserID returns the authenticated user, replying 401 when there is none.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.Failure("Unauthorized", nil))
		return "", false
	}
	return userID, true
}
