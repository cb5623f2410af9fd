package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies service-level failures so handlers can map them
// to HTTP statuses without inspecting raw internal errors.
type ErrorKind string

const (
	KindNotFound             ErrorKind = "NotFound"
	KindInvalidState         ErrorKind = "InvalidState"
	KindStorageFailure       ErrorKind = "StorageFailure"
	KindPreconditionViolated ErrorKind = "PreconditionViolated"
	KindUnauthorized         ErrorKind = "Unauthorized"
)

// Error is the structured failure returned by services. Message is safe
// to show to clients; Err holds the wrapped internal cause, if any.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NotFoundErr builds a NotFound error.
func NotFoundErr(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// InvalidStateErr builds an InvalidState error.
func InvalidStateErr(msg string) error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

// StorageErr wraps a backend failure.
func StorageErr(msg string, err error) error {
	return &Error{Kind: KindStorageFailure, Message: msg, Err: err}
}

// PreconditionErr builds a PreconditionViolated error.
func PreconditionErr(msg string) error {
	return &Error{Kind: KindPreconditionViolated, Message: msg}
}

// UnauthorizedErr builds an Unauthorized error.
func UnauthorizedErr(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// KindOf extracts the error kind, defaulting to StorageFailure for
// untyped errors so nothing internal leaks to clients.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStorageFailure
}

// ErrorResponse defines the structure of error responses.
type ErrorResponse struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// WriteError maps a service error to an HTTP response. Untyped errors
// become a generic storage failure; the internal cause is logged, never
// serialized.
func WriteError(c *gin.Context, err error) {
	logger := GetLogger()

	var se *Error
	if !errors.As(err, &se) {
		logger.Error("unclassified error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Kind:    KindStorageFailure,
			Message: "temporary backend failure, please retry",
		})
		return
	}

	status := http.StatusInternalServerError
	switch se.Kind {
	case KindNotFound:
		status = http.StatusNotFound
	case KindInvalidState:
		status = http.StatusConflict
	case KindPreconditionViolated:
		status = http.StatusBadRequest
	case KindUnauthorized:
		status = http.StatusUnauthorized
	case KindStorageFailure:
		status = http.StatusInternalServerError
	}

	if se.Err != nil {
		logger.Error(se.Message, zap.String("kind", string(se.Kind)), zap.Error(se.Err))
	}
	c.JSON(status, ErrorResponse{Kind: se.Kind, Message: se.Message})
}

// ErrorHandler is a middleware that catches panics and returns a
// structured error instead of a bare 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", r))
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Kind:    KindStorageFailure,
					Message: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
