package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/auth"
	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/notify"
	"github.com/agendabeleza/backend/internal/repository"
	"github.com/agendabeleza/backend/internal/utils"
)

// AuthService handles registration, login and the password reset flow
type AuthService struct {
	userRepo    repository.UserRepository
	tokens      ResetTokens
	notifier    Notifier
	passwordCfg *auth.PasswordConfig
	baseURL     string
}

// NewAuthService creates a new AuthService. baseURL is the public origin
// used to build reset links.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens ResetTokens,
	notifier Notifier,
	passwordCfg *auth.PasswordConfig,
	baseURL string,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		notifier:    notifier,
		passwordCfg: passwordCfg,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

// RegisterUser creates a client account. The password policy is checked
// before anything touches the database.
func (s *AuthService) RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, error) {
	email := utils.NormalizeEmail(reg.Email)

	if reg.Password != reg.ConfirmPassword {
		return nil, utils.NewValidationError("confirm_password", "Passwords do not match")
	}
	if err := utils.ValidatePassword(reg.Password); err != nil {
		utils.LogAuth("register_failed", 0, email, false, "password policy")
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		utils.LogAuth("register_failed", 0, email, false, "email taken")
		return nil, utils.NewDuplicateError("User", "email", email)
	}

	passwordHash, err := auth.HashPassword(reg.Password, s.passwordCfg)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(strings.TrimSpace(reg.Name), email, strings.TrimSpace(reg.Phone))
	user.PasswordHash = passwordHash

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	utils.LogAuth("register_success", user.ID, email, true, "")

	return user.Sanitize(), nil
}

// AuthenticateUser verifies login credentials. An unknown email and a wrong
// password produce the same error.
func (s *AuthService) AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.User, error) {
	email := utils.NormalizeEmail(creds.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth("login_failed", 0, email, false, "user not found")
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, err
	}

	if !auth.VerifyPassword(creds.Password, user.PasswordHash) {
		utils.LogAuth("login_failed", user.ID, email, false, "invalid password")
		return nil, utils.NewInvalidCredentialsError()
	}

	utils.LogAuth("login_success", user.ID, email, true, "")

	return user.Sanitize(), nil
}

// RequestPasswordReset emails a reset link to a registered address. For an
// unknown address nothing is sent and no error is returned, so callers
// cannot tell whether an account exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, rawEmail string) error {
	email := utils.NormalizeEmail(rawEmail)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			log.Info().Str("email", utils.MaskEmail(email)).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return utils.NewInternalServerError(err)
	}

	body, err := notify.RenderResetEmail(notify.ResetEmailData{
		Name:      user.Name,
		ResetLink: s.ResetLink(token),
		ValidFor:  formatValidity(s.tokens.MaxAge()),
	})
	if err != nil {
		return utils.NewInternalServerError(err)
	}

	s.notifier.Send(notify.SubjectPasswordReset, []string{user.Email}, body, "")

	utils.LogAuth("reset_requested", user.ID, user.Email, true, "")
	return nil
}

// ResetLink builds the public URL of the reset form for token.
func (s *AuthService) ResetLink(token string) string {
	return s.baseURL + constants.RouteResetPrefix + token
}

// CheckResetToken returns the email a reset token was issued for.
func (s *AuthService) CheckResetToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

// ResetPassword sets a new password for the account named by token.
func (s *AuthService) ResetPassword(ctx context.Context, token string, req *models.ResetPasswordRequest) error {
	email, err := s.tokens.Verify(token)
	if err != nil {
		utils.LogAuth("reset_failed", 0, "", false, err.Error())
		return err
	}

	if req.Password != req.ConfirmPassword {
		return utils.NewValidationError("confirm_password", "Passwords do not match")
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return err
	}

	passwordHash, err := auth.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, email, passwordHash); err != nil {
		return err
	}

	utils.LogAuth("reset_success", 0, email, true, "")
	return nil
}

// formatValidity renders a token lifetime for the reset email.
func formatValidity(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		if d == time.Hour {
			return "1 hora"
		}
		return fmt.Sprintf("%d horas", d/time.Hour)
	default:
		return fmt.Sprintf("%d minutos", int(d.Minutes()))
	}
}
