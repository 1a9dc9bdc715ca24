// Package utils provides utility functions and helpers for common operations
// used throughout the application: error taxonomy, response envelopes,
// request decoding and validation, and logging.
package utils

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/agendabeleza/backend/internal/constants"
)

// IsDuplicateKeyError checks if an error is a MySQL duplicate key error.
//
// Parameters:
//   - err: the error to check, possibly wrapped
//
// Returns:
//   - true if the error is a MySQL duplicate key error (code 1062), false otherwise
func IsDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == constants.MySQLErrDuplicateEntry
	}
	return false
}

// TruncateString truncates a string to the given maximum number of runes and adds an ellipsis if necessary.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// MaskEmail masks the user part of an email address, showing only the first and last character.
//
// For example: "user@example.com" becomes "u**r@example.com"
//
// Parameters:
//   - email: the email address to mask
//
// Returns:
//   - the masked email address, or the original string if it's not a valid email format
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return email
	}

	user := email[:at]
	domain := email[at+1:]

	if len(user) <= 2 {
		return strings.Repeat("*", len(user)) + "@" + domain
	}

	return string(user[0]) + strings.Repeat("*", len(user)-2) + string(user[len(user)-1]) + "@" + domain
}
