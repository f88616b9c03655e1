package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qrave1/meetspace/internal/application/constant"
	"github.com/qrave1/meetspace/internal/domain/apperrors"
)

// domainError maps the error taxonomy onto transport status codes.
// Unclassified errors are logged and reported as a server error.
func domainError(c echo.Context, err error) error {
	switch {
	case apperrors.IsValidation(err):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})

	case errors.Is(err, apperrors.ErrRoomNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})

	case errors.Is(err, apperrors.ErrEmailTaken):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})

	default:
		slog.Error("unhandled domain error", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
