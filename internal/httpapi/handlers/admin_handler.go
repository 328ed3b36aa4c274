package handlers

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Hawk5760/calmora-well/internal/database"
	authmiddleware "github.com/Hawk5760/calmora-well/internal/httpapi/middleware"
)

// AdminHandler provides operator endpoints, gated on the admin scope.
type AdminHandler struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewAdminHandler(pool *pgxpool.Pool, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{pool: pool, logger: logger}
}

func (h *AdminHandler) requireAdmin(r *http.Request) bool {
	claims, ok := authmiddleware.ClaimsFromContext(r.Context())
	if !ok || claims == nil {
		return false
	}
	for _, s := range claims.Scope {
		if s == "admin" || s == "wellness.admin" {
			return true
		}
	}
	return false
}

// Seed loads the built-in affirmations and puzzle words. Safe to call more
// than once.
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(r) {
		writeError(w, http.StatusForbidden, "forbidden", "admin scope required", nil)
		return
	}
	if err := database.Seed(r.Context(), h.pool); err != nil {
		h.logger.Error("seed failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to seed data", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}
