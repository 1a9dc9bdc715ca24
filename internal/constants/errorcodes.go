// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines constants related to error handling, categorization,
// and messaging. User-facing messages are informative without revealing
// implementation details.
package constants

// Error Types define the categories of errors that can occur in the application.
const (
	// ErrorNotFound indicates that a requested resource could not be found.
	ErrorNotFound = "resource not found"

	// ErrorUnauthorized indicates that authentication is required but was not provided.
	ErrorUnauthorized = "unauthorized access"

	// ErrorForbidden indicates that the requester lacks sufficient permissions.
	ErrorForbidden = "forbidden access"

	// ErrorBadRequest indicates that the request was malformed or invalid.
	ErrorBadRequest = "invalid request"

	// ErrorInternalServer indicates an unexpected internal error.
	ErrorInternalServer = "internal server error"

	// ErrorValidation indicates that input validation failed.
	ErrorValidation = "validation error"

	// ErrorDuplicate indicates an attempt to create a resource that already exists.
	ErrorDuplicate = "duplicate resource"

	// ErrorInvalidCredentials indicates that login credentials are incorrect.
	ErrorInvalidCredentials = "invalid credentials"

	// ErrorExpiredToken indicates that a reset token is past its maximum age.
	ErrorExpiredToken = "expired token"

	// ErrorInvalidToken indicates that a reset token is malformed or forged.
	ErrorInvalidToken = "invalid token"

	// ErrorConnection indicates that the data store could not be reached.
	ErrorConnection = "database connection failed"

	// ErrorUnauthenticated indicates that a gated operation ran without a logged-in user.
	ErrorUnauthenticated = "unauthenticated"

	// ErrorBooking indicates that a booking could not be recorded.
	ErrorBooking = "booking failed"

	// ErrorRateLimited indicates that the caller exceeded the request rate.
	ErrorRateLimited = "rate limit exceeded"
)

// User-Facing Error Messages define standardized messages that can be safely presented to users.
const (
	// MsgAuthRequired indicates that the user must log in first.
	MsgAuthRequired = "Authentication required"

	// MsgInvalidPassword indicates that login credentials are incorrect.
	MsgInvalidPassword = "Invalid email or password"

	// MsgPasswordPolicy describes the password rules.
	MsgPasswordPolicy = "Password must be at least 8 characters and contain an uppercase letter and a digit"

	// MsgEmailTaken indicates that the email is already registered.
	MsgEmailTaken = "Email already registered"

	// MsgAccessDenied indicates that the user lacks permission for the requested action.
	MsgAccessDenied = "You don't have permission to access this resource"

	// MsgInternalServerError provides a generic server error message.
	MsgInternalServerError = "An internal server error occurred"

	// MsgTokenExpired indicates that the reset link is too old.
	MsgTokenExpired = "The reset link has expired"

	// MsgInvalidToken indicates that the reset link is not valid.
	MsgInvalidToken = "The reset link is invalid"

	// MsgRequestBodyTooLarge indicates that the request payload exceeds size limits.
	MsgRequestBodyTooLarge = "Request body too large"

	// MsgEmptyRequestBody indicates that a request body was expected but not provided.
	MsgEmptyRequestBody = "Request body must not be empty"

	// MsgMalformedJSON indicates that the request body contains invalid JSON.
	MsgMalformedJSON = "Request body contains malformed JSON"

	// MsgResourceNotFound indicates that the requested resource does not exist.
	MsgResourceNotFound = "The requested resource could not be found"

	// MsgResourceAlreadyExists indicates a duplicate resource conflict.
	MsgResourceAlreadyExists = "A resource with the same unique identifier already exists"

	// MsgMethodNotAllowed indicates that the HTTP method is not supported for the endpoint.
	MsgMethodNotAllowed = "This method is not allowed for this resource"

	// MsgServiceUnavailable is returned when the data store cannot be reached.
	MsgServiceUnavailable = "The service is temporarily unavailable, please try again later"

	// MsgBookingFailed is returned when a booking could not be stored.
	MsgBookingFailed = "Your booking could not be registered, please try again"

	// MsgBookingCreated confirms a booking.
	MsgBookingCreated = "Booking registered, a confirmation email is on its way"

	// MsgUnknownService indicates that the chosen service does not exist.
	MsgUnknownService = "The selected service does not exist"

	// MsgInvalidBookingTime indicates a malformed date/time.
	MsgInvalidBookingTime = "Date and time must use the format YYYY-MM-DDTHH:MM"

	// MsgRegistered confirms account creation.
	MsgRegistered = "Account created, you can now log in"

	// MsgLoginSuccess confirms a login.
	MsgLoginSuccess = "Successfully logged in"

	// MsgLogoutSuccess confirms successful logout.
	MsgLogoutSuccess = "Successfully logged out"

	// MsgResetRequested is the answer to every reset request, known email or not.
	MsgResetRequested = "If the email is registered, a reset link has been sent"

	// MsgPasswordChanged confirms successful password change.
	MsgPasswordChanged = "Password successfully changed"

	// MsgTooManyRequests is returned by the rate limiter.
	MsgTooManyRequests = "Too many requests, please slow down"
)

// MySQL Error Numbers identify constraint violations reported by the driver.
const (
	// MySQLErrDuplicateEntry is raised when a UNIQUE constraint is violated.
	MySQLErrDuplicateEntry = 1062

	// MySQLErrForeignKey is raised when a referenced row does not exist.
	MySQLErrForeignKey = 1452

	// MySQLErrNotNull is raised when a NOT NULL column receives NULL.
	MySQLErrNotNull = 1048
)

// Logger Constants define values used for structured logging.
const (
	// LogCategoryUser is the log category for user-related events.
	LogCategoryUser = "user"

	// LogCategoryAuth is the log category for authentication-related events.
	LogCategoryAuth = "auth"

	// LogCategoryMail is the log category for email delivery.
	LogCategoryMail = "mail"

	// LogEventLogin is the log event type for user login.
	LogEventLogin = "login"

	// LogEventLogout is the log event type for user logout.
	LogEventLogout = "logout"

	// LogEventRegister is the log event type for user registration.
	LogEventRegister = "register"

	// LogEventResetRequest is the log event type for reset link requests.
	LogEventResetRequest = "reset_request"

	// LogEventPasswordReset is the log event type for completed resets.
	LogEventPasswordReset = "password_reset"

	// LogRedactedValue is used to replace sensitive values in logs.
	LogRedactedValue = "[REDACTED]"
)
