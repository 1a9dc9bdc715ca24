package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/config"
	"github.com/agendabeleza/backend/internal/constants"
)

type contextKey string

const sessionKey contextKey = constants.SessionContextKey

// Manager binds sessions to cookies and to the request context.
type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

// NewManager creates a manager over a store using the session settings.
func NewManager(store Store, cfg *config.SessionSettings) *Manager {
	name := cfg.CookieName
	if name == "" {
		name = constants.DefaultCookieName
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}

	return &Manager{
		store:      store,
		cookieName: name,
		ttl:        ttl,
		secure:     cfg.Secure,
		now:        time.Now,
	}
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// newSession creates an unsaved anonymous session.
func (m *Manager) newSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: m.now().UTC(),
		isNew:     true,
	}
}

// Load returns the session named by the request cookie, or a fresh
// anonymous one when there is no usable cookie. A store failure is logged
// and treated as an anonymous visit.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil || cookie.Value == "" {
		return m.newSession()
	}

	if _, err := uuid.Parse(cookie.Value); err != nil {
		return m.newSession()
	}

	sess, err := m.store.Get(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Error().Err(err).Msg("Failed to load session")
		}
		return m.newSession()
	}

	sess.isNew = false
	return sess
}

// Middleware loads the session for every request and stores it in the context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.Load(r)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// Save persists the session and (re)issues its cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	wasNew := sess.isNew
	sess.isNew = false
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		sess.isNew = wasNew
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(m.ttl / time.Second),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Renew moves the session to a new ID, dropping the old entry. Called on
// login so that an ID seen before authentication is never reused after it.
func (m *Manager) Renew(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if !sess.isNew {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			log.Warn().Err(err).Msg("Failed to delete previous session")
		}
	}
	sess.ID = uuid.NewString()
	return m.Save(ctx, w, sess)
}

// Destroy deletes the session and expires its cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	sess.Clear()

	var err error
	if !sess.isNew {
		err = m.store.Delete(ctx, sess.ID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return err
}

// Close releases the backing store.
func (m *Manager) Close() error {
	return m.store.Close()
}

// WithSession returns a context carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// FromContext returns the request's session. Outside the middleware it
// returns a transient anonymous session so callers never see nil.
func FromContext(ctx context.Context) *Session {
	if sess, ok := ctx.Value(sessionKey).(*Session); ok && sess != nil {
		return sess
	}
	return &Session{isNew: true}
}
