package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/nexus/internal/nexus/service"
	"github.com/aussiebroadwan/nexus/pkg/httpx"
	"github.com/aussiebroadwan/nexus/pkg/nexusapi"
	"github.com/aussiebroadwan/nexus/pkg/slogx"
)

// MFAHandler handles TOTP enrollment.
type MFAHandler struct {
	MFAService *service.MFAService
	Metrics    *Metrics
}

// HandleSetup handles POST /api/mfa/setup
//
//	@Summary		Start TOTP enrollment
//	@Description	Generates a new TOTP secret for the current user and returns it with its otpauth URL and a QR code PNG data URL. MFA stays disabled until /api/mfa/verify succeeds.
//	@Tags			MFA
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{object}	nexusapi.MFASetupResponse
//	@Failure		401	{object}	nexusapi.ErrorResponse	"Not logged in"
//	@Failure		409	{object}	nexusapi.ErrorResponse	"MFA already enabled"
//	@Router			/api/mfa/setup [post].
func (h *MFAHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	setup, err := h.MFAService.Setup(ctx, SessionFromContext(ctx))
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.Metrics.MFAEvent("setup")
	httpx.WriteJSON(w, http.StatusOK, nexusapi.MFASetupResponse{
		QRCode:     setup.QRCode,
		Secret:     setup.Secret,
		OTPAuthURL: setup.URI,
	})
}

// HandleVerify handles POST /api/mfa/verify
//
//	@Summary		Confirm TOTP enrollment
//	@Description	Checks a code against the pending secret and enables MFA. Repeating it once enabled succeeds again.
//	@Tags			MFA
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		nexusapi.MFAVerifyRequest	true	"TOTP code"
//	@Success		200		{object}	nexusapi.MessageResponse
//	@Failure		400		{object}	nexusapi.ErrorResponse	"invalid_token"
//	@Failure		401		{object}	nexusapi.ErrorResponse	"Not logged in"
//	@Router			/api/mfa/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req nexusapi.MFAVerifyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.MFAService.Verify(ctx, SessionFromContext(ctx), req.Token); err != nil {
		if errors.Is(err, service.ErrInvalidMFAToken) {
			h.Metrics.MFAEvent("verify_failed")
			slogx.FromContext(ctx).Warn("mfa verify rejected")
			nexusapi.ErrInvalidToken.WriteError(w)
			return
		}
		writeError(w, r, err)
		return
	}

	h.Metrics.MFAEvent("verified")
	httpx.WriteJSON(w, http.StatusOK, nexusapi.MessageResponse{Message: "MFA enabled"})
}
