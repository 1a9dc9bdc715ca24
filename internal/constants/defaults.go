// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort matches the port the site has always listened on.
	DefaultServerPort = 5000

	// DefaultDBPort is the standard MySQL port.
	DefaultDBPort = 3306

	// DefaultDBMaxAttempts is how many times a connection is attempted before giving up.
	DefaultDBMaxAttempts = 3

	// DefaultFallbackCA is the trust anchor looked up in the working directory.
	DefaultFallbackCA = "ca.pem"

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	DefaultAppName    = "Agenda Beleza"
	DefaultAppVersion = "1.0.0"
	DefaultBaseURL    = "http://localhost:5000"
)

// Mail defaults
const (
	DefaultMailServer    = "smtp.gmail.com"
	DefaultMailPort      = 587
	DefaultMailWorkers   = 2
	DefaultMailQueueSize = 64
)

// Rate limiting defaults for the credential endpoints.
const (
	DefaultRateLimitRPS   = 1.0
	DefaultRateLimitBurst = 5
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// File Size Limits define the maximum allowed sizes for various uploads.
const (
	// MaxRequestBodySize is the maximum size in bytes for HTTP request bodies.
	MaxRequestBodySize = 1048576 // 1MB in bytes
)

// PlaceholderSecretKey is the development secret shipped in examples; it is refused in production.
const PlaceholderSecretKey = "change-me"
