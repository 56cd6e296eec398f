package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "VALIDATION"
	ErrorTypeUnauthorized  ErrorType = "UNAUTHORIZED"
	ErrorTypeNotFound      ErrorType = "NOT_FOUND"
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"
	ErrorTypeUpstream      ErrorType = "UPSTREAM"
	ErrorTypePersistence   ErrorType = "PERSISTENCE"
	ErrorTypeInternal      ErrorType = "INTERNAL_SERVER_ERROR"
)

// CustomError represents a custom error with associated HTTP status code and type
type CustomError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Internal   error
}

// Error implements the error interface
func (e *CustomError) Error() string {
	return e.Message
}

// Unwrap exposes the wrapped internal error to errors.Is/As.
func (e *CustomError) Unwrap() error {
	return e.Internal
}

func newError(errType ErrorType, message string, statusCode int, internal error) *CustomError {
	return &CustomError{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
		Internal:   internal,
	}
}

// NewValidationError reports missing, malformed or out-of-range input.
func NewValidationError(message string) *CustomError {
	return newError(ErrorTypeValidation, message, http.StatusBadRequest, nil)
}

// NewUnauthorizedError reports a missing or invalid credential on the caller side.
func NewUnauthorizedError() *CustomError {
	return newError(ErrorTypeUnauthorized, "Unauthorized access", http.StatusUnauthorized, nil)
}

// NewNotFoundError reports an absent entity. Lookups for entities owned by
// another user produce this same error, never revealing existence.
func NewNotFoundError(message string) *CustomError {
	return newError(ErrorTypeNotFound, message, http.StatusNotFound, nil)
}

// NewConfigurationError reports a missing upstream credential. Raised before
// any network call is attempted.
func NewConfigurationError(message string) *CustomError {
	return newError(ErrorTypeConfiguration, message, http.StatusServiceUnavailable, nil)
}

// NewUpstreamError carries the completion provider's error message through to
// the caller.
func NewUpstreamError(message string, internal error) *CustomError {
	return newError(ErrorTypeUpstream, message, http.StatusBadGateway, internal)
}

// NewInternalError creates a generic internal server error.
func NewInternalError(internal error) *CustomError {
	return newError(ErrorTypeInternal, "An unexpected error occurred", http.StatusInternalServerError, internal)
}

// FromPersistence classifies a store-layer failure. Record-not-found maps to
// NOT_FOUND, duplicate keys and constraint violations to VALIDATION, anything
// else stays a 500-class persistence fault.
func FromPersistence(err error, notFoundMessage string) *CustomError {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewNotFoundError(notFoundMessage)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return newError(ErrorTypeValidation, "Duplicate field value entered", http.StatusBadRequest, err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated), errors.Is(err, gorm.ErrForeignKeyViolated):
		return newError(ErrorTypeValidation, "Invalid field value", http.StatusBadRequest, err)
	case isDuplicateKeyMessage(err):
		return newError(ErrorTypeValidation, "Duplicate field value entered", http.StatusBadRequest, err)
	default:
		return newError(ErrorTypePersistence, "A storage error occurred", http.StatusInternalServerError, err)
	}
}

// Drivers that bypass GORM's error translation surface duplicate keys as
// SQLSTATE 23505 in the message.
func isDuplicateKeyMessage(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

// IsDuplicateKey reports whether err is a unique-constraint violation.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyMessage(err)
}

// HandleError normalizes any error into the response envelope and sends it.
func HandleError(c *gin.Context, err error) {
	var customErr *CustomError
	if !errors.As(err, &customErr) {
		customErr = NewInternalError(err)
	}

	if customErr.StatusCode >= http.StatusInternalServerError {
		log.Error().
			Err(customErr.Internal).
			Str("type", string(customErr.Type)).
			Str("url", c.Request.URL.String()).
			Msg(customErr.Message)
	}

	c.JSON(customErr.StatusCode, gin.H{
		"success": false,
		"error": gin.H{
			"type":    customErr.Type,
			"message": customErr.Message,
		},
	})
}
