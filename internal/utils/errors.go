package utils

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-sql-driver/mysql"

	"github.com/agendabeleza/backend/internal/constants"
)

// Custom error types for the application
var (
	ErrNotFound           = errors.New(constants.ErrorNotFound)
	ErrUnauthorized       = errors.New(constants.ErrorUnauthorized)
	ErrForbidden          = errors.New(constants.ErrorForbidden)
	ErrBadRequest         = errors.New(constants.ErrorBadRequest)
	ErrInternalServer     = errors.New(constants.ErrorInternalServer)
	ErrValidation         = errors.New(constants.ErrorValidation)
	ErrDuplicate          = errors.New(constants.ErrorDuplicate)
	ErrInvalidCredentials = errors.New(constants.ErrorInvalidCredentials)
	ErrExpiredToken       = errors.New(constants.ErrorExpiredToken)
	ErrInvalidToken       = errors.New(constants.ErrorInvalidToken)
	ErrConnection         = errors.New(constants.ErrorConnection)
	ErrUnauthenticated    = errors.New(constants.ErrorUnauthenticated)
	ErrBooking            = errors.New(constants.ErrorBooking)
	ErrRateLimited        = errors.New(constants.ErrorRateLimited)
)

// AppError represents an application error with additional context
type AppError struct {
	Err        error  // The underlying error
	StatusCode int    // HTTP status code
	Message    string // User-friendly error message
	DevInfo    string // Additional information for developers, never sent to clients
	Field      string // Field related to the error (for validation errors)
	Details    map[string]any
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the given error and status code
func New(err error, statusCode int, message string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
	}
}

// NewWithDevInfo creates a new AppError with developer information
func NewWithDevInfo(err error, statusCode int, message, devInfo string) *AppError {
	return &AppError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
		DevInfo:    devInfo,
	}
}

// NewValidationError creates a new validation error for a specific field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Err:        ErrValidation,
		StatusCode: http.StatusBadRequest,
		Message:    message,
		Field:      field,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Err:        ErrBadRequest,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resourceType string, identifier interface{}) *AppError {
	return &AppError{
		Err:        ErrNotFound,
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier),
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	return &AppError{
		Err:        ErrUnauthorized,
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

// NewUnauthenticatedError is returned by gated operations called without a logged-in user.
func NewUnauthenticatedError() *AppError {
	return &AppError{
		Err:        ErrUnauthenticated,
		StatusCode: http.StatusUnauthorized,
		Message:    constants.MsgAuthRequired,
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = constants.MsgAccessDenied
	}
	return &AppError{
		Err:        ErrForbidden,
		StatusCode: http.StatusForbidden,
		Message:    message,
	}
}

// NewInternalServerError creates a new internal server error
func NewInternalServerError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrInternalServer,
		StatusCode: http.StatusInternalServerError,
		Message:    constants.MsgInternalServerError,
		DevInfo:    devInfo,
	}
}

// NewConnectionError reports that the data store could not be reached.
// The cause is kept for the logs only.
func NewConnectionError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrConnection,
		StatusCode: http.StatusInternalServerError,
		Message:    constants.MsgServiceUnavailable,
		DevInfo:    devInfo,
	}
}

// NewBookingError reports a booking that could not be persisted.
func NewBookingError(err error) *AppError {
	devInfo := ""
	if err != nil {
		devInfo = err.Error()
	}
	return &AppError{
		Err:        ErrBooking,
		StatusCode: http.StatusInternalServerError,
		Message:    constants.MsgBookingFailed,
		DevInfo:    devInfo,
	}
}

// NewRateLimitedError is returned when a client exceeds its request budget.
func NewRateLimitedError() *AppError {
	return &AppError{
		Err:        ErrRateLimited,
		StatusCode: http.StatusTooManyRequests,
		Message:    constants.MsgTooManyRequests,
	}
}

// NewDuplicateError creates a new duplicate resource error
func NewDuplicateError(resourceType, field string, value interface{}) *AppError {
	return &AppError{
		Err:        ErrDuplicate,
		StatusCode: http.StatusConflict,
		Message:    fmt.Sprintf("%s with %s '%v' already exists", resourceType, field, value),
		Field:      field,
	}
}

// NewInvalidCredentialsError creates a new invalid credentials error
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Err:        ErrInvalidCredentials,
		StatusCode: http.StatusUnauthorized,
		Message:    constants.MsgInvalidPassword,
	}
}

// NewExpiredTokenError creates a new expired token error
func NewExpiredTokenError() *AppError {
	return &AppError{
		Err:        ErrExpiredToken,
		StatusCode: http.StatusBadRequest,
		Message:    constants.MsgTokenExpired,
	}
}

// NewInvalidTokenError creates a new invalid token error
func NewInvalidTokenError() *AppError {
	return &AppError{
		Err:        ErrInvalidToken,
		StatusCode: http.StatusBadRequest,
		Message:    constants.MsgInvalidToken,
	}
}

// columnPattern extracts the column name from MySQL 1048 messages: Column 'Nome' cannot be null
var columnPattern = regexp.MustCompile(`Column '([^']+)'`)

// keyPattern extracts the key name from MySQL 1062 messages: ... for key 'Utilizador.Email'
var keyPattern = regexp.MustCompile(`for key '(?:[^'.]+\.)?([^']+)'`)

// ParseError attempts to parse various types of errors into an AppError
func ParseError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError("Resource", "")
	case errors.Is(err, ErrUnauthorized):
		return NewUnauthorizedError("")
	case errors.Is(err, ErrUnauthenticated):
		return NewUnauthenticatedError()
	case errors.Is(err, ErrForbidden):
		return NewForbiddenError("")
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrValidation):
		return NewValidationError("", err.Error())
	case errors.Is(err, ErrDuplicate):
		return NewDuplicateError("Resource", "", "")
	case errors.Is(err, ErrInvalidCredentials):
		return NewInvalidCredentialsError()
	case errors.Is(err, ErrExpiredToken):
		return NewExpiredTokenError()
	case errors.Is(err, ErrInvalidToken):
		return NewInvalidTokenError()
	case errors.Is(err, ErrConnection):
		return NewConnectionError(err)
	case errors.Is(err, ErrBooking):
		return NewBookingError(err)
	case errors.Is(err, ErrRateLimited):
		return NewRateLimitedError()
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case constants.MySQLErrDuplicateEntry:
			field := ""
			if m := keyPattern.FindStringSubmatch(mysqlErr.Message); len(m) == 2 {
				field = m[1]
			}
			return &AppError{
				Err:        ErrDuplicate,
				StatusCode: http.StatusConflict,
				Message:    constants.MsgResourceAlreadyExists,
				DevInfo:    mysqlErr.Error(),
				Field:      field,
			}
		case constants.MySQLErrForeignKey:
			return &AppError{
				Err:        ErrBadRequest,
				StatusCode: http.StatusBadRequest,
				Message:    "This operation references a resource that does not exist",
				DevInfo:    mysqlErr.Error(),
			}
		case constants.MySQLErrNotNull:
			field := ""
			if m := columnPattern.FindStringSubmatch(mysqlErr.Message); len(m) == 2 {
				field = m[1]
			}
			return &AppError{
				Err:        ErrValidation,
				StatusCode: http.StatusBadRequest,
				Message:    fmt.Sprintf("The %s field cannot be empty", field),
				DevInfo:    mysqlErr.Error(),
				Field:      field,
			}
		}
	}

	return NewInternalServerError(err)
}

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if an error is a duplicate resource error
func IsDuplicateError(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusConflict
	}
	return errors.Is(err, ErrDuplicate)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConnectionError checks if an error reports an unreachable data store
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection)
}

// StatusCode returns the HTTP status code for an error
func StatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
