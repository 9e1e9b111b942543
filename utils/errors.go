package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Domain errors returned by services. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound                = errors.New("not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidTransition       = errors.New("invalid status transition")
	ErrFeedbackAlreadyProvided = errors.New("feedback already provided")
	ErrConflict                = errors.New("already exists")
)

// ValidationError reports a rejected field. It matches ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// HTTPStatus maps a service error to a response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrFeedbackAlreadyProvided), errors.Is(err, ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// RespondError writes err with the status HTTPStatus picks. Internal details are not exposed.
func RespondError(c *gin.Context, message string, err error) {
	status := HTTPStatus(err)
	details := err.Error()
	if status == http.StatusInternalServerError {
		GetLogger().Sugar().Errorw(message, "error", err, "path", c.Request.URL.Path)
		details = ""
	}
	JSONError(c, status, message, details)
}
