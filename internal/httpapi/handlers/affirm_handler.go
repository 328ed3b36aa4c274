package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	authmiddleware "github.com/Hawk5760/calmora-well/internal/httpapi/middleware"
	"github.com/Hawk5760/calmora-well/internal/services/affirm"
)

// AffirmHandler serves the daily affirmation and category draws.
type AffirmHandler struct {
	svc    *affirm.Service
	logger *zap.Logger
}

func NewAffirmHandler(svc *affirm.Service, logger *zap.Logger) *AffirmHandler {
	return &AffirmHandler{svc: svc, logger: logger}
}

func (h *AffirmHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	a, err := h.svc.Daily(r.Context(), userID, time.Now())
	if err != nil {
		if errors.Is(err, affirm.ErrNoAffirmations) {
			writeError(w, http.StatusNotFound, "not_found", "no affirmations available", nil)
			return
		}
		h.logger.Error("daily affirmation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to load affirmation", nil)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *AffirmHandler) Random(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	a, err := h.svc.Random(r.Context(), category)
	if err != nil {
		if errors.Is(err, affirm.ErrNoAffirmations) {
			writeError(w, http.StatusNotFound, "not_found", "no affirmations available", nil)
			return
		}
		h.logger.Error("random affirmation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to load affirmation", nil)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
