package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	authmiddleware "github.com/Hawk5760/calmora-well/internal/httpapi/middleware"
	"github.com/Hawk5760/calmora-well/internal/services/twofa"
)

// TwoFAHandler exposes the two-factor enrollment lifecycle endpoints.
type TwoFAHandler struct {
	svc    *twofa.Service
	logger *zap.Logger
}

func NewTwoFAHandler(svc *twofa.Service, logger *zap.Logger) *TwoFAHandler {
	return &TwoFAHandler{svc: svc, logger: logger}
}

// twofaError maps the service error taxonomy onto HTTP responses.
func (h *TwoFAHandler) twofaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, twofa.ErrInvalidState):
		writeError(w, http.StatusConflict, "invalid_state", "operation not allowed in current two-factor state", nil)
	case errors.Is(err, twofa.ErrVerificationFailed):
		writeError(w, http.StatusUnprocessableEntity, "verification_failed", "code did not match, try again", nil)
	case errors.Is(err, twofa.ErrConflict):
		writeError(w, http.StatusConflict, "conflict", "your two-factor status changed, please refresh", nil)
	case errors.Is(err, twofa.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, "storage_unavailable", "temporary storage issue, try again", nil)
	case errors.Is(err, twofa.ErrAccessDenied):
		writeError(w, http.StatusForbidden, "access_denied", "not allowed", nil)
	default:
		h.logger.Error("two-factor operation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "unexpected error", nil)
	}
}

func (h *TwoFAHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	claims, ok := authmiddleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	userID, _ := authmiddleware.UserIDFromContext(r.Context())
	enr, err := h.svc.StartEnrollment(r.Context(), userID, claims.Email)
	if err != nil {
		h.twofaError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enr)
}

// QR renders the pending enrollment's provisioning URI as a PNG.
func (h *TwoFAHandler) QR(w http.ResponseWriter, r *http.Request) {
	claims, ok := authmiddleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	userID, _ := authmiddleware.UserIDFromContext(r.Context())
	uri, err := h.svc.ProvisioningURI(r.Context(), userID, claims.Email)
	if err != nil {
		h.twofaError(w, err)
		return
	}
	png, err := qrcode.Encode(uri, qrcode.Medium, 256)
	if err != nil {
		h.logger.Error("qr encode failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to render code", nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

type codeRequest struct {
	Code string `json:"code"`
}

func (h *TwoFAHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	var req codeRequest
	if err := decodeJSON(r, &req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required", nil)
		return
	}
	codes, err := h.svc.ConfirmEnrollment(r.Context(), userID, req.Code, time.Now())
	if err != nil {
		h.twofaError(w, err)
		return
	}
	// Shown once; the codes are not retrievable after this response.
	writeJSON(w, http.StatusOK, map[string]any{"backup_codes": codes})
}

func (h *TwoFAHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	var req codeRequest
	if err := decodeJSON(r, &req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required", nil)
		return
	}
	if err := h.svc.VerifyLoginCode(r.Context(), userID, req.Code, time.Now()); err != nil {
		h.twofaError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *TwoFAHandler) ConsumeBackup(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	var req codeRequest
	if err := decodeJSON(r, &req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required", nil)
		return
	}
	if err := h.svc.ConsumeBackupCode(r.Context(), userID, req.Code); err != nil {
		h.twofaError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (h *TwoFAHandler) Disable(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	if err := h.svc.Disable(r.Context(), userID); err != nil {
		h.twofaError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
}

func (h *TwoFAHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	status, err := h.svc.Status(r.Context(), userID)
	if err != nil {
		h.twofaError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": status})
}
