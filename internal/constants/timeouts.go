package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts
const (
	DBConnectTimeout     = 10 * time.Second
	DBRetryDelay         = 2 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
)

// Mail Timeouts
const (
	DefaultMailSendTimeout = 30 * time.Second
)

// Session lifetimes
const (
	DefaultSessionTTL = 7 * 24 * time.Hour
)

// Rate limiter housekeeping
const (
	RateLimitCleanupInterval = 10 * time.Minute
)
