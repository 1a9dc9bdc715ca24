package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/constants"
)

// logFile is the optional extra destination opened by InitLogger.
var logFile *os.File

// InitLogger initializes the application logger with the given configuration.
// JSON goes to stdout unless console output is requested outside production;
// when a log file is configured every entry is also appended there.
func InitLogger(cfg *config.AppConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Logging.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = os.Stdout
	if strings.ToLower(cfg.Logging.Format) == "console" && !cfg.App.IsProduction() {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		output = zerolog.MultiLevelWriter(output, f)
	}

	log.Logger = zerolog.New(output).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("env", cfg.App.Environment).
		Logger()

	log.Info().Msg("Logger initialized")
	return nil
}

// CloseLogger closes the log file opened by InitLogger, if any.
func CloseLogger() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// RequestLogger creates a logger with request-specific context
func RequestLogger(requestID, userID, method, path string) zerolog.Logger {
	logger := log.With().
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path)

	if userID != "" {
		logger = logger.Str("user_id", userID)
	}

	return logger.Logger()
}

// LogHTTPRequest logs an HTTP request with request details
func LogHTTPRequest(requestID, method, path, remoteAddr, userAgent string, statusCode int, latency time.Duration) {
	// Health probes are only interesting while debugging
	if path == constants.HealthPath && zerolog.GlobalLevel() != zerolog.DebugLevel {
		return
	}

	event := log.Info()
	if statusCode >= 400 && statusCode < 500 {
		event = log.Warn()
	} else if statusCode >= 500 {
		event = log.Error()
	}

	event.
		Str(constants.RequestIDContextKey, requestID).
		Str("method", method).
		Str("path", path).
		Str("remote_addr", remoteAddr).
		Str("user_agent", userAgent).
		Int("status", statusCode).
		Dur("latency", latency).
		Msg("HTTP Request")
}

// LogError logs an error with context information
func LogError(err error, context map[string]interface{}) {
	event := log.Error().Err(err)

	for key, value := range context {
		switch v := value.(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}

	event.Msg("Error occurred")
}

// LogPanic logs a recovered panic value
func LogPanic(recovered interface{}, stack []byte) {
	log.Error().
		Interface("panic", recovered).
		Str("stack", string(stack)).
		Msg("Panic recovered")
}

// redactArgs masks query arguments that must not reach the logs:
// everything bound into a statement touching the password column,
// bcrypt hashes, and email addresses.
func redactArgs(query string, args []interface{}) []interface{} {
	lowerQuery := strings.ToLower(query)
	sensitiveQuery := strings.Contains(lowerQuery, strings.ToLower(constants.ColumnPassword)) ||
		strings.Contains(lowerQuery, "secret") ||
		strings.Contains(lowerQuery, "token")

	safeArgs := make([]interface{}, len(args))
	for i, arg := range args {
		s, ok := arg.(string)
		switch {
		case !ok:
			safeArgs[i] = arg
		case strings.HasPrefix(s, "$2"):
			safeArgs[i] = constants.LogRedactedValue
		case strings.Contains(s, "@"):
			safeArgs[i] = MaskEmail(s)
		case sensitiveQuery:
			safeArgs[i] = constants.LogRedactedValue
		default:
			safeArgs[i] = s
		}
	}
	return safeArgs
}

// LogDBQuery logs a database query for debugging
func LogDBQuery(query string, args []interface{}, duration time.Duration, err error) {
	event := log.Debug()
	if err != nil {
		event = log.Error().Err(err)
	}

	event.
		Str("query", query).
		Interface("args", redactArgs(query, args)).
		Dur("duration", duration).
		Msg("Database query executed")
}

// LogAuth logs authentication events. The email is masked.
func LogAuth(event string, userID int64, email string, success bool, reason string) {
	logEvent := log.Info()
	if !success {
		logEvent = log.Warn()
	}

	logEvent = logEvent.
		Str("category", constants.LogCategoryAuth).
		Str("event", event).
		Str("email", MaskEmail(email)).
		Bool("success", success)

	if userID != 0 {
		logEvent = logEvent.Int64("user_id", userID)
	}
	if reason != "" {
		logEvent = logEvent.Str("reason", reason)
	}

	logEvent.Msg("Authentication event")
}

// LogMail records the outcome of one email delivery. Recipients are masked.
func LogMail(subject string, recipients []string, transport string, duration time.Duration, err error) {
	masked := make([]string, len(recipients))
	for i, r := range recipients {
		masked[i] = MaskEmail(r)
	}

	event := log.Info()
	msg := "Email sent"
	if err != nil {
		event = log.Error().Err(err)
		msg = "Email delivery failed"
	}

	event.
		Str("category", constants.LogCategoryMail).
		Str("subject", subject).
		Strs("recipients", masked).
		Str("transport", transport).
		Dur("duration", duration).
		Msg(msg)
}

// GetLogLevel returns the current global log level as a string
func GetLogLevel() string {
	return zerolog.GlobalLevel().String()
}

// SetLogLevel updates the global log level
func SetLogLevel(level string) error {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}

	zerolog.SetGlobalLevel(parsedLevel)
	log.Info().Str("level", parsedLevel.String()).Msg("Log level changed")

	return nil
}
