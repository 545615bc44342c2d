package handler

import (
	"net/http"

	"bakuworry/internal/callable"
	"bakuworry/internal/domain"

	"go.uber.org/zap"
)

// handleSignIn creates an anonymous identity
func (h *Handler) handleSignIn(w http.ResponseWriter, r *http.Request) {
	cred, err := h.authService.SignInAnonymously(r.Context())
	h.metrics.RecordSignIn(err)
	if err != nil {
		h.logger.Error("Failed to sign in anonymously", zap.Error(err))
		callable.WriteError(w, domain.NewCallError(domain.CodeInternal, "Could not create an identity. Try again later."))
		return
	}

	callable.WriteResult(w, cred)
}

// handleAttestationExchange trades the app's site key for an attestation token
func (h *Handler) handleAttestationExchange(w http.ResponseWriter, r *http.Request) {
	data, err := decodeData(w, r)
	if err != nil {
		callable.WriteError(w, domain.NewCallError(domain.CodeInvalidArgument, "Malformed request."))
		return
	}

	siteKey, _ := stringField(data["siteKey"])

	token, err := h.attestation.Exchange(siteKey)
	if err != nil {
		h.logger.Info("Attestation exchange failed", zap.Error(err))
		callable.WriteError(w, domain.NewCallError(domain.CodeFailedPrecondition, "The app could not be verified."))
		return
	}

	callable.WriteResult(w, token)
}
