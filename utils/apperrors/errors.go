package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Type categorizes an error for status mapping and logging.
type Type string

const (
	TypeNotFound        Type = "NOT_FOUND"
	TypeValidation      Type = "VALIDATION"
	TypeForbidden       Type = "FORBIDDEN"
	TypePayloadTooLarge Type = "PAYLOAD_TOO_LARGE"
	TypeTooManyRequests Type = "TOO_MANY_REQUESTS"
	TypeExternal        Type = "EXTERNAL"
	TypeDatabase        Type = "DATABASE_ERROR"
	TypeInternal        Type = "INTERNAL"
)

// Layer identifies where the error was raised.
type Layer string

const (
	LayerRepository     Layer = "repository"
	LayerDomain         Layer = "domain"
	LayerInfrastructure Layer = "infrastructure"
	LayerHandler        Layer = "handler"
)

// Error carries a category, the originating layer and a short reason string
// safe to expose to clients. Internal detail stays in the wrapped error.
type Error struct {
	Type    Type
	Layer   Layer
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", e.Layer, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Layer, e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a typed error.
func New(layer Layer, errType Type, message string, err error) *Error {
	return &Error{Type: errType, Layer: layer, Message: message, Err: err}
}

// Is reports whether err is an *Error of the given type.
func Is(err error, errType Type) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// HTTPStatus maps an error type to its response status code.
func HTTPStatus(errType Type) int {
	switch errType {
	case TypeNotFound:
		return http.StatusNotFound
	case TypeValidation:
		return http.StatusBadRequest
	case TypeForbidden:
		return http.StatusForbidden
	case TypePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case TypeTooManyRequests:
		return http.StatusTooManyRequests
	case TypeExternal:
		return http.StatusBadGateway
	case TypeDatabase, TypeInternal:
		fallthrough
	default:
		return http.StatusInternalServerError
	}
}

// Log writes the error with its structure to the given logger. Client errors
// are logged at warn, everything else at error.
func Log(logger zerolog.Logger, err *Error) {
	if err == nil {
		return
	}
	event := logger.Error()
	if HTTPStatus(err.Type) < http.StatusInternalServerError {
		event = logger.Warn()
	}
	event = event.
		Str("error_type", string(err.Type)).
		Str("layer", string(err.Layer))
	if err.Err != nil {
		event = event.Err(err.Err)
	}
	event.Msg(err.Message)
}
