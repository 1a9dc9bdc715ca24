package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/utils"
)

// PasswordConfig holds the parameters for bcrypt password hashing
type PasswordConfig struct {
	Cost int
}

// DefaultPasswordConfig returns the default configuration for password hashing
func DefaultPasswordConfig() *PasswordConfig {
	return &PasswordConfig{
		Cost: bcrypt.DefaultCost,
	}
}

// ConfigFromAppConfig creates a password config from the application config.
// An out-of-range cost falls back to the bcrypt default.
func ConfigFromAppConfig(cfg *config.AppConfig) *PasswordConfig {
	cost := cfg.Security.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordConfig{Cost: cost}
}

// HashPassword generates a bcrypt hash of the provided password.
// The salt is embedded in the returned hash.
func HashPassword(password string, cfg *PasswordConfig) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", utils.NewValidationError("password", "Must be at most 72 bytes long")
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a password with a stored bcrypt hash in constant
// time. Hashes written with the $2a$, $2b$ and $2y$ prefixes are accepted.
// A malformed hash never matches.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
