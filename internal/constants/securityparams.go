package constants

// Context Key Names
const (
	SessionContextKey   = "session"
	RequestIDContextKey = "request_id"
)

// Password Validation
const (
	MinPasswordLength = 8
	MaxNameLength     = 100
	MaxEmailLength    = 255
	MaxPhoneLength    = 20
	MaxNotesLength    = 1000
)

// Reset Tokens
const (
	// ResetTokenPurpose separates reset tokens from any other token signed with the same secret.
	ResetTokenPurpose = "reset-salt"

	// DefaultResetTokenMaxAge is the validity window of a reset link, in seconds.
	DefaultResetTokenMaxAge = 3600
)

// Session Stores
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
	DefaultCookieName  = "agenda_session"
	RedisSessionPrefix = "session:"
)

// Mail Providers
const (
	MailProviderSMTP       = "smtp"
	MailProviderMailerSend = "mailersend"
	MailProviderSendGrid   = "sendgrid"
	MailProviderLog        = "log"
)

// Rate limit categories
const (
	RateCategoryAuth    = "auth"
	RateCategoryBooking = "booking"
)
