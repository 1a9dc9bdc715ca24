package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/session"
	"github.com/agendabeleza/backend/internal/utils"
)

// AuthHandler handles login, logout and registration routes
type AuthHandler struct {
	authService AuthServiceInterface
	sessions    *session.Manager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface, sessions *session.Manager) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// sessionState is the GET /login answer.
type sessionState struct {
	Authenticated bool         `json:"authenticated"`
	User          *sessionUser `json:"user,omitempty"`
	Next          string       `json:"next,omitempty"`
}

type sessionUser struct {
	ID      int64  `json:"id"`
	Name    string `json:"nome"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func stateOf(sess *session.Session) sessionState {
	state := sessionState{Next: sess.Next}
	if user, ok := sess.User(); ok {
		state.Authenticated = true
		state.User = &sessionUser{
			ID:      user.UserID,
			Name:    user.Name,
			Email:   user.Email,
			IsAdmin: user.IsAdmin(),
		}
	}
	return state
}

// LoginPage reports the current session state
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, stateOf(session.FromContext(r.Context())))
}

// Login authenticates the user and sends the browser on to the page it was
// heading to before login, or to the home page.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.UserCredentials
	if err := utils.DecodeAndValidate(r, &creds); err != nil {
		utils.HandleError(w, err)
		return
	}

	user, err := h.authService.AuthenticateUser(r.Context(), &creds)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	sess := session.FromContext(r.Context())
	sess.SetUser(user)
	next := session.ConsumeNext(sess)

	if err := h.sessions.Renew(r.Context(), w, sess); err != nil {
		utils.InternalServerError(w, err)
		return
	}

	utils.Redirect(w, next, constants.MsgLoginSuccess)
}

// Logout ends the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if err := h.sessions.Destroy(r.Context(), w, sess); err != nil {
		log.Warn().Err(err).Msg("Failed to delete session on logout")
	}

	utils.Redirect(w, constants.RouteHome, constants.MsgLogoutSuccess)
}

// RegisterPage describes the registration form
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"fields":          []string{"nome", "email", "telefone", "password", "confirm_password"},
		"password_policy": constants.MsgPasswordPolicy,
	})
}

// Register creates an account and sends the browser to the login page
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.UserRegistration
	if err := utils.DecodeAndValidate(r, &reg); err != nil {
		utils.HandleError(w, err)
		return
	}

	if _, err := h.authService.RegisterUser(r.Context(), &reg); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.Redirect(w, constants.RouteLogin, constants.MsgRegistered)
}
