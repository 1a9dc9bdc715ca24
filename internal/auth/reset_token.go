package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/utils"
)

// ResetClaims is the payload of a password reset token.
type ResetClaims struct {
	Email    string `json:"email"`
	Purpose  string `json:"purpose"`
	IssuedAt int64  `json:"iat"`
}

// Valid is a no-op: the age check depends on the service's configured max
// age and clock, so Verify performs it.
func (c ResetClaims) Valid() error {
	return nil
}

// ResetTokenService issues and verifies stateless, signed password reset tokens.
// Tokens are not stored anywhere; a token stays usable until it expires.
type ResetTokenService struct {
	key     []byte
	purpose string
	maxAge  time.Duration
	now     func() time.Time
}

// ResetTokenOption customizes a ResetTokenService.
type ResetTokenOption func(*ResetTokenService)

// WithClock replaces the time source.
func WithClock(now func() time.Time) ResetTokenOption {
	return func(s *ResetTokenService) { s.now = now }
}

// WithPurpose replaces the purpose tag bound into every token.
func WithPurpose(purpose string) ResetTokenOption {
	return func(s *ResetTokenService) {
		s.purpose = purpose
	}
}

// NewResetTokenService creates the token service from the security settings.
func NewResetTokenService(cfg *config.SecuritySettings, opts ...ResetTokenOption) *ResetTokenService {
	maxAge := cfg.ResetTokenMaxAge
	if maxAge <= 0 {
		maxAge = constants.DefaultResetTokenMaxAge * time.Second
	}

	s := &ResetTokenService{
		purpose: constants.ResetTokenPurpose,
		maxAge:  maxAge,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.key = deriveKey(cfg.SecretKey, s.purpose)

	return s
}

// deriveKey binds the signing key to the purpose tag, so a token signed for
// one purpose cannot verify under another even with the same secret.
func deriveKey(secret, purpose string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(purpose))
	return mac.Sum(nil)
}

// MaxAge returns how long issued tokens stay valid.
func (s *ResetTokenService) MaxAge() time.Duration {
	return s.maxAge
}

// Issue mints a token for the given email.
func (s *ResetTokenService) Issue(email string) (string, error) {
	claims := ResetClaims{
		Email:    email,
		Purpose:  s.purpose,
		IssuedAt: s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", utils.NewInternalServerError(err)
	}

	return signed, nil
}

// Verify returns the email carried by a token. Malformed, tampered or
// foreign-purpose tokens yield an invalid token error; a genuine token
// older than the max age yields an expired token error.
func (s *ResetTokenService) Verify(tokenString string) (string, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return "", utils.NewInvalidTokenError()
	}

	claims := &ResetClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidSigningMethod
		}
		return s.key, nil
	})
	if err != nil || !token.Valid {
		return "", utils.NewInvalidTokenError()
	}

	if claims.Purpose != s.purpose || claims.Email == "" || claims.IssuedAt == 0 {
		return "", utils.NewInvalidTokenError()
	}

	issuedAt := time.Unix(claims.IssuedAt, 0)
	if s.now().Sub(issuedAt) > s.maxAge {
		return "", utils.NewExpiredTokenError()
	}

	return claims.Email, nil
}
