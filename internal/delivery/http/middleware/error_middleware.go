package middleware

import (
	"log/slog"

	"bookmarkd/internal/delivery/http/response"
	domainerrors "bookmarkd/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Try to parse as AppError
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		message := any(appErr.Message())
		if appErr.Details() != "" {
			message = appErr.Details()
		}
		if jsonErr := response.Error(c, appErr.HTTPCode(), message); jsonErr != nil {
			m.logger.Error("Failed to write error response", "error", jsonErr.Error())
		}

		return
	}

	// Check if it's Echo's HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if jsonErr := response.Error(c, httpErr.Code, httpErr.Message); jsonErr != nil {
			m.logger.Error("Failed to write error response", "error", jsonErr.Error())
		}

		return
	}

	// Default to internal error, log error and return generic message
	m.logger.Error("Unhandled error",
		"error", err.Error(),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	)

	if jsonErr := response.InternalServerError(c, "Internal server error"); jsonErr != nil {
		m.logger.Error("Failed to write error response", "error", jsonErr.Error())
	}
}
