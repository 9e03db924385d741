package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/internal/nexus/session"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

// AuthHandler serves login, logout, identity and password change.
type AuthHandler struct {
	AuthService *service.AuthService
	Sessions    *session.Manager
	Metrics     *Metrics
}

// HandleLogin handles POST /api/login
//
//	@Summary		Log in
//	@Description	Checks username and password. When the user has MFA enabled and no token is given, answers with mfa_required and no session; repeat the call with the current TOTP code in token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.LoginRequest	true	"Credentials"
//	@Success		200		{object}	nexusapi.LoginResponse	"Logged in (sets the session cookie) or MFA challenge"
//	@Failure		400		{object}	nexusapi.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	nexusapi.ErrorResponse	"invalid_credentials or invalid_mfa_token"
//	@Failure		429		{object}	nexusapi.ErrorResponse	"Too many attempts"
//	@Router			/api/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nexusapi.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		nexusapi.ErrInvalidRequest.WithDescription("username and password are required").WriteError(w)
		return
	}

	res, err := h.AuthService.Login(ctx, service.LoginRequest{
		Username: req.Username,
		Password: req.Password,
		Token:    req.Token,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			h.Metrics.LoginAttempt("invalid_credentials")
		case errors.Is(err, service.ErrInvalidMFAToken):
			h.Metrics.LoginAttempt("invalid_mfa_token")
		default:
			h.Metrics.LoginAttempt("error")
		}
		writeError(w, r, err)
		return
	}

	if res.MFARequired {
		h.Metrics.LoginAttempt("mfa_required")
		httpx.WriteJSON(w, http.StatusOK, nexusapi.LoginResponse{MFARequired: true})
		return
	}

	h.Metrics.LoginAttempt("ok")
	http.SetCookie(w, h.Sessions.Cookie(res.Token, res.Session.ExpiresAt))
	httpx.WriteJSON(w, http.StatusOK, nexusapi.LoginResponse{
		Message: "Login successful",
		User: &nexusapi.SessionUser{
			ID:       res.Identity.ID,
			Username: res.Identity.Username,
			Role:     res.Identity.Role.String(),
		},
	})
}

// HandleLogout handles POST /api/logout
//
//	@Summary		Log out
//	@Description	Destroys the current session, if any, and clears the cookie. Always succeeds.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	nexusapi.MessageResponse
//	@Router			/api/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.AuthService.Logout(r.Context(), h.Sessions.TokenFromRequest(r))
	http.SetCookie(w, h.Sessions.ClearCookie())
	httpx.WriteJSON(w, http.StatusOK, nexusapi.MessageResponse{Message: "Logged out"})
}

// HandleMe handles GET /api/me
//
//	@Summary		Current identity
//	@Tags			Auth
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	nexusapi.MeResponse
//	@Failure		401	{object}	nexusapi.ErrorResponse	"Not logged in"
//	@Router			/api/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, err := h.AuthService.WhoAmI(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexusapi.MeResponse{
		ID:         id.ID,
		Username:   id.Username,
		Role:       id.Role.String(),
		MFAEnabled: id.MFAEnabled,
	})
}

// HandleChangePassword handles POST /api/account/password
//
//	@Summary		Change password
//	@Tags			Account
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.ChangePasswordRequest	true	"Current and new password"
//	@Success		200		{object}	nexusapi.MessageResponse
//	@Failure		400		{object}	nexusapi.ErrorResponse	"current_password_incorrect or invalid_request"
//	@Failure		401		{object}	nexusapi.ErrorResponse	"Not logged in"
//	@Router			/api/account/password [post].
func (h *AuthHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nexusapi.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.AuthService.ChangePassword(ctx, SessionFromContext(ctx), req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrPasswordMismatch) {
			slogx.FromContext(ctx).Warn("password change rejected")
		}
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, nexusapi.MessageResponse{Message: "Password updated"})
}
