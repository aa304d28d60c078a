package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// envelope is the uniform response shape for the JSON API
type envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	ErrorCode string      `json:"error_code,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func fail(c echo.Context, status int, code, message string) error {
	return failWith(c, status, code, message, nil)
}

func failWith(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, envelope{
		Success:   false,
		Message:   message,
		ErrorCode: code,
		Details:   details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func internalError(c echo.Context) error {
	return fail(c, http.StatusInternalServerError, codeInternal, "internal server error")
}
