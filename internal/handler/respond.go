package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/subhashree8125/rental-platform/internal/service"
	"github.com/subhashree8125/rental-platform/pkg/logger"
)

// httpStatus maps a service error to its HTTP status code.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrDuplicateEmail):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrMissingPassword),
		errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the structured failure payload for a service error. Store and
// filesystem failures are logged with full detail but surface to the client
// as a generic message.
func fail(c echo.Context, err error) error {
	status := httpStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromContext(c).Error("Request failed", zap.Error(err))
		message = "internal server error"
	}
	return c.JSON(status, echo.Map{"success": false, "message": message})
}
