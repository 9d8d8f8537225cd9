// Package response defines the wire format of error payloads.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the JSON body returned for every failed request.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error"`
}

// Error writes an ErrorBody with the given status code. When message is empty
// the standard status text is used instead.
func Error(c echo.Context, statusCode int, message any) error {
	if message == nil || message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, ErrorBody{
		StatusCode: statusCode,
		Message:    message,
		Error:      http.StatusText(statusCode),
	})
}

// Unauthorized writes a 401 error body.
func Unauthorized(c echo.Context, message string) error {
	return Error(c, http.StatusUnauthorized, message)
}

// Forbidden writes a 403 error body.
func Forbidden(c echo.Context, message string) error {
	return Error(c, http.StatusForbidden, message)
}

// BadRequest writes a 400 error body.
func BadRequest(c echo.Context, message any) error {
	return Error(c, http.StatusBadRequest, message)
}

// NotFound writes a 404 error body.
func NotFound(c echo.Context, message string) error {
	return Error(c, http.StatusNotFound, message)
}

// InternalServerError writes a 500 error body.
func InternalServerError(c echo.Context, message string) error {
	return Error(c, http.StatusInternalServerError, message)
}
