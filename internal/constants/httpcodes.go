// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines HTTP-related constants such as status codes,
// response codes, headers, and content types.
package constants

// HTTP Status Codes define the standard HTTP response status codes used in the application.
const (
	// StatusOK indicates that the request has succeeded.
	StatusOK = 200

	// StatusCreated indicates that a new resource has been created.
	StatusCreated = 201

	// StatusSeeOther redirects the browser to another page after a form post.
	StatusSeeOther = 303

	// StatusBadRequest indicates that the server cannot process the request due to client error.
	StatusBadRequest = 400

	// StatusUnauthorized indicates that the request lacks valid authentication credentials.
	StatusUnauthorized = 401

	// StatusForbidden indicates that the server understood the request but refuses to authorize it.
	StatusForbidden = 403

	// StatusNotFound indicates that the server cannot find the requested resource.
	StatusNotFound = 404

	// StatusMethodNotAllowed indicates that the request method is not supported for the requested resource.
	StatusMethodNotAllowed = 405

	// StatusConflict indicates that the request conflicts with the current state of the server.
	StatusConflict = 409

	// StatusTooManyRequests indicates that the caller is being rate limited.
	StatusTooManyRequests = 429

	// StatusInternalServerError indicates that the server encountered an unexpected condition.
	StatusInternalServerError = 500

	// StatusServiceUnavailable indicates that a backing service is unreachable.
	StatusServiceUnavailable = 503
)

// HTTP Response Code Types define application-specific response codes.
const (
	// ResponseSuccess indicates that the request was processed successfully.
	ResponseSuccess = true

	// ResponseFailure indicates that the request processing failed.
	ResponseFailure = false

	CodeBadRequest         = "bad_request"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeConflict           = "conflict"
	CodeInternalError      = "internal_error"
	CodeValidationError    = "validation_error"
	CodeInvalidCredentials = "invalid_credentials"
	CodeTokenExpired       = "token_expired"
	CodeTokenInvalid       = "token_invalid"
	CodeDuplicateResource  = "duplicate_resource"

	// CodeUnauthenticated asks the client to log in and retry.
	CodeUnauthenticated = "unauthenticated"

	// CodeConnectionError reports an unreachable data store.
	CodeConnectionError = "connection_error"

	// CodeBookingFailed reports a booking that could not be stored.
	CodeBookingFailed = "booking_failed"

	// CodeRateLimited reports a throttled request.
	CodeRateLimited = "rate_limited"
)

// HTTP Header Names define common HTTP headers used in requests and responses.
const (
	HeaderContentType           = "Content-Type"
	HeaderCacheControl          = "Cache-Control"
	HeaderPragma                = "Pragma"
	HeaderExpires               = "Expires"
	HeaderLocation              = "Location"
	HeaderRetryAfter            = "Retry-After"
	HeaderXRequestID            = "X-Request-ID"
	HeaderXContentTypeOptions   = "X-Content-Type-Options"
	HeaderXFrameOptions         = "X-Frame-Options"
	HeaderXXSSProtection        = "X-XSS-Protection"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
)

// HTTP Content Types define media types used in the Content-Type header.
const (
	// ContentTypeJSON specifies the content is in JSON format.
	ContentTypeJSON = "application/json"

	// ContentTypeForm specifies an HTML form submission.
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// Security Header Values define the values for various security-related HTTP headers.
const (
	FrameOptionsDeny           = "DENY"
	XSSProtectionModeBlock     = "1; mode=block"
	ContentTypeOptionsNoSniff  = "nosniff"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
	CSPDefaultSrc              = "default-src 'self'"
	CacheControlNoStore        = "no-cache, no-store, must-revalidate"
	PragmaNoCache              = "no-cache"
	ExpiresZero                = "0"
)
