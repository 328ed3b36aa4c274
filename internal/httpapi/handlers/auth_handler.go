package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	authmiddleware "github.com/Hawk5760/calmora-well/internal/httpapi/middleware"
	"github.com/Hawk5760/calmora-well/internal/revocation"
)

// AuthHandler covers the small slice of auth this service owns: logout.
// Tokens themselves are minted by the identity provider.
type AuthHandler struct {
	revocations *revocation.Store
	logger      *zap.Logger
}

func NewAuthHandler(revocations *revocation.Store, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{revocations: revocations, logger: logger}
}

// Logout revokes the presented token's jti until its natural expiry, so the
// same bearer token cannot be replayed afterwards.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := authmiddleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	if claims.ID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "token has no jti", nil)
		return
	}
	expiresAt := time.Now().Add(time.Hour)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := h.revocations.Revoke(r.Context(), claims.ID, expiresAt); err != nil {
		h.logger.Error("revoke token failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to log out", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
