package session

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
)

// Redirect tells the caller where the browser must go instead.
type Redirect struct {
	Location string
}

// Gate admits authenticated callers to protected pages and sends everyone
// else to the login page, remembering where they were going.
type Gate struct {
	manager *Manager
}

// NewGate creates a gate persisting through manager.
func NewGate(manager *Manager) *Gate {
	return &Gate{manager: manager}
}

// Require returns the caller's identity, or a redirect to the login page
// after recording intended as the post-login destination.
func (g *Gate) Require(w http.ResponseWriter, r *http.Request, intended string) (*UserContext, *Redirect) {
	sess := FromContext(r.Context())
	if user, ok := sess.User(); ok {
		return user, nil
	}

	sess.Next = sanitizeNext(intended)
	if err := g.manager.Save(r.Context(), w, sess); err != nil {
		log.Error().Err(err).Msg("Failed to persist login destination")
	}

	return nil, &Redirect{Location: constants.RouteLogin}
}

// ConsumeNext returns the remembered destination once and clears it.
// Without one the home page is returned.
func ConsumeNext(sess *Session) string {
	next := sess.Next
	sess.Next = ""
	if next == "" {
		return constants.RouteHome
	}
	return next
}

// sanitizeNext keeps only local absolute paths, so a crafted destination
// cannot send the browser off-site after login.
func sanitizeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return constants.RouteHome
	}
	return next
}
