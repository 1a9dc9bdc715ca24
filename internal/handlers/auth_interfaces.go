// Package handlers provides HTTP request handlers for the Agenda Beleza API.
package handlers

import (
	"context"

	"github.com/agendabeleza/backend/internal/models"
)

// AuthServiceInterface defines the methods required from the authentication service.
// This interface is used by the auth and password reset handlers to interact with
// the account logic without being tightly coupled to the implementation.
type AuthServiceInterface interface {
	// RegisterUser creates a client account.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - reg: Registration form including the password and its confirmation
	//
	// Returns:
	//   - The newly created user, without the password hash
	//   - A validation error for policy violations, or a duplicate error for a taken email
	RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, error)

	// AuthenticateUser checks login credentials.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - creds: Email and password
	//
	// Returns:
	//   - The authenticated user
	//   - An invalid credentials error for an unknown email or a wrong password
	AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.User, error)

	// RequestPasswordReset emails a reset link when the address is registered.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - email: The address typed by the user
	//
	// Returns:
	//   - nil for known and unknown addresses alike; an error only when the store fails
	RequestPasswordReset(ctx context.Context, email string) error

	// CheckResetToken returns the email a reset token was issued for.
	//
	// Parameters:
	//   - token: The token taken from the reset link
	//
	// Returns:
	//   - The email address
	//   - An expired or invalid token error
	CheckResetToken(token string) (string, error)

	// ResetPassword replaces the password of the account named by the token.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - token: The token taken from the reset link
	//   - req: The new password and its confirmation
	//
	// Returns:
	//   - A token error, a validation error, or nil on success
	ResetPassword(ctx context.Context, token string, req *models.ResetPasswordRequest) error
}
