// Package response implements the unified API response envelope.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Status classifies a response: SUCCESS for 2xx, FAIL for client-caused 4xx
// failures, ERROR for everything else.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFail    Status = "FAIL"
	StatusError   Status = "ERROR"
)

// Response unified API response structure
type Response struct {
	Status     Status `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data,omitempty"`
	ErrorCode  string `json:"errorCode,omitempty"` // Business error code, e.g., "USER_NOT_FOUND"
}

// Success successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	return c.JSON(statusCode, Response{
		Status:     StatusSuccess,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// Fail client-caused failure response (4xx)
func Fail(c echo.Context, statusCode int, errorCode string, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Status:     StatusFail,
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	})
}

// Error server-side error response
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Status:     StatusError,
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	})
}

// BindingError binding error response
func BindingError(c echo.Context, errorCode string, message string) error {
	return Fail(c, http.StatusBadRequest, errorCode, message)
}

// Unauthorized 401 error
func Unauthorized(c echo.Context, errorCode string, message string) error {
	return Fail(c, http.StatusUnauthorized, errorCode, message)
}

// Forbidden 403 error
func Forbidden(c echo.Context, errorCode string, message string) error {
	return Fail(c, http.StatusForbidden, errorCode, message)
}
