package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agendabeleza/backend/internal/constants"
	"github.com/agendabeleza/backend/internal/models"
	"github.com/agendabeleza/backend/internal/utils"
)

// PasswordResetHandler handles the forgotten password flow
type PasswordResetHandler struct {
	authService AuthServiceInterface
}

// NewPasswordResetHandler creates a new PasswordResetHandler
func NewPasswordResetHandler(authService AuthServiceInterface) *PasswordResetHandler {
	return &PasswordResetHandler{authService: authService}
}

// ResetRequestPage describes the reset request form
func (h *PasswordResetHandler) ResetRequestPage(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"fields": []string{"email"},
	})
}

// RequestReset emails a reset link. The answer is the same whether or not
// the address belongs to an account.
func (h *PasswordResetHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.HandleError(w, err)
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.Redirect(w, constants.RouteLogin, constants.MsgResetRequested)
}

// ResetPage checks the token of a reset link
func (h *PasswordResetHandler) ResetPage(w http.ResponseWriter, r *http.Request) {
	email, err := h.authService.CheckResetToken(chi.URLParam(r, "token"))
	if err != nil {
		h.tokenRejected(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"email":  utils.MaskEmail(email),
		"fields": []string{"password", "confirm_password"},
	})
}

// ResetPassword stores the new password
func (h *PasswordResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req models.ResetPasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.HandleError(w, err)
		return
	}

	if err := h.authService.ResetPassword(r.Context(), token, &req); err != nil {
		if isTokenError(err) {
			h.tokenRejected(w, err)
			return
		}
		utils.HandleError(w, err)
		return
	}

	utils.Redirect(w, constants.RouteLogin, constants.MsgPasswordChanged)
}

// tokenRejected sends the browser back to the reset request form.
func (h *PasswordResetHandler) tokenRejected(w http.ResponseWriter, err error) {
	if !isTokenError(err) {
		utils.HandleError(w, err)
		return
	}
	utils.Redirect(w, constants.RouteResetRequest, utils.ParseError(err).Message)
}

func isTokenError(err error) bool {
	return errors.Is(err, utils.ErrExpiredToken) || errors.Is(err, utils.ErrInvalidToken)
}
