// Package utils provides utility functions and helpers for the application.
// This file implements the standardized response envelope shared by every
// endpoint, plus the redirect answer used where a browser flow moves on to
// another page.
package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
)

// Response represents a standardized API response.
// All API endpoints return responses in this format for consistency.
type Response struct {
	Success bool        `json:"success"`         // Whether the request was successful
	Data    interface{} `json:"data,omitempty"`  // The response data (omitted for error responses)
	Error   *ErrorInfo  `json:"error,omitempty"` // Error information (omitted for successful responses)
	Meta    *MetaInfo   `json:"meta,omitempty"`  // Metadata such as redirect targets
}

// ErrorInfo represents error information in the response.
type ErrorInfo struct {
	Code    string            `json:"code"`              // A machine-readable error code
	Message string            `json:"message"`           // A human-readable error message
	Details map[string]string `json:"details,omitempty"` // Additional details about the error (e.g., validation errors)
}

// MetaInfo carries response metadata.
type MetaInfo struct {
	Redirect string `json:"redirect,omitempty"` // Where the browser is sent next
	Message  string `json:"message,omitempty"`  // Flash-style notice for the next page
}

// JSON sends a JSON response with the given status code and data.
// This is the primary function for sending successful responses.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - data: The data to include in the response
//
// The function automatically sets the success flag based on the status code.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	response := Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	}

	SendJSON(w, statusCode, response)
}

// Redirect answers with 303 See Other and a JSON body naming the target,
// so both browsers and API clients learn where to go next.
//
// Parameters:
//   - w: The HTTP response writer
//   - location: The path to continue at
//   - message: Optional notice shown on the next page
func Redirect(w http.ResponseWriter, location, message string) {
	w.Header().Set(constants.HeaderLocation, location)

	response := Response{
		Success: constants.ResponseSuccess,
		Meta: &MetaInfo{
			Redirect: location,
			Message:  message,
		},
	}

	SendJSON(w, constants.StatusSeeOther, response)
}

// Error sends an error response with the given status code and error information.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - code: A machine-readable error code
//   - message: A human-readable error message
//   - details: Additional details about the error (e.g., validation errors)
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	response := Response{
		Success: constants.ResponseFailure,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	SendJSON(w, statusCode, response)
}

// errorCodes maps sentinel errors to machine-readable response codes.
var errorCodes = []struct {
	sentinel error
	code     string
}{
	{ErrNotFound, constants.CodeNotFound},
	{ErrBadRequest, constants.CodeBadRequest},
	{ErrUnauthorized, constants.CodeUnauthorized},
	{ErrUnauthenticated, constants.CodeUnauthenticated},
	{ErrForbidden, constants.CodeForbidden},
	{ErrValidation, constants.CodeValidationError},
	{ErrDuplicate, constants.CodeDuplicateResource},
	{ErrInvalidCredentials, constants.CodeInvalidCredentials},
	{ErrExpiredToken, constants.CodeTokenExpired},
	{ErrInvalidToken, constants.CodeTokenInvalid},
	{ErrConnection, constants.CodeConnectionError},
	{ErrBooking, constants.CodeBookingFailed},
	{ErrRateLimited, constants.CodeRateLimited},
}

// ErrorCode returns the response code for an application error.
func ErrorCode(err *AppError) string {
	for _, ec := range errorCodes {
		if errors.Is(err.Err, ec.sentinel) {
			return ec.code
		}
	}
	return constants.CodeInternalError
}

// ErrorFromAppError sends an error response based on an AppError.
// Server-side failures are logged with their developer detail, which never
// reaches the client.
//
// Parameters:
//   - w: The HTTP response writer
//   - err: The application error
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	if err.StatusCode >= http.StatusInternalServerError {
		log.Error().
			Str("code", ErrorCode(err)).
			Str("dev_info", err.DevInfo).
			Msg(err.Message)
	}

	var details map[string]string
	if err.Field != "" {
		details = map[string]string{
			err.Field: err.Message,
		}
	}
	for k, v := range err.Details {
		if details == nil {
			details = make(map[string]string, len(err.Details))
		}
		if s, ok := v.(string); ok {
			details[k] = s
		}
	}

	if errors.Is(err.Err, ErrRateLimited) {
		w.Header().Set(constants.HeaderRetryAfter, strconv.Itoa(1))
	}

	Error(w, err.StatusCode, ErrorCode(err), err.Message, details)
}

// HandleError converts any error into the matching error response.
func HandleError(w http.ResponseWriter, err error) {
	ErrorFromAppError(w, ParseError(err))
}

// SendJSON is a helper function to send JSON data with proper headers.
//
// Parameters:
//   - w: The HTTP response writer
//   - statusCode: The HTTP status code
//   - data: The data to marshal to JSON and send
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(`{"success":false,"error":{"code":"internal_error","message":"Failed to generate response"}}`)); err != nil {
			log.Error().Err(err).Msg("Failed to write error response")
		}
		return
	}

	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)

	if _, err = w.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// BadRequest sends a 400 Bad Request response with the given message.
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	Error(w, constants.StatusBadRequest, constants.CodeBadRequest, message, details)
}

// Unauthorized sends a 401 Unauthorized response with the given message.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	Error(w, constants.StatusUnauthorized, constants.CodeUnauthorized, message, nil)
}

// NotFound sends a 404 Not Found response with the given message.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, constants.StatusNotFound, constants.CodeNotFound, message, nil)
}

// MethodNotAllowed sends a 405 Method Not Allowed response.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, constants.StatusMethodNotAllowed, constants.CodeMethodNotAllowed, constants.MsgMethodNotAllowed, nil)
}

// TooManyRequests sends a 429 response.
func TooManyRequests(w http.ResponseWriter) {
	ErrorFromAppError(w, NewRateLimitedError())
}

// InternalServerError sends a 500 Internal Server Error response.
// The error is logged but not exposed to the client.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, constants.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError, nil)
}

// ValidationError sends a 400 Bad Request response with validation error details.
func ValidationError(w http.ResponseWriter, errors map[string]string) {
	Error(w, constants.StatusBadRequest, constants.CodeValidationError, "Validation failed", errors)
}
