package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	authmiddleware "github.com/Hawk5760/calmora-well/internal/httpapi/middleware"
	"github.com/Hawk5760/calmora-well/internal/services/insight"
)

// InsightHandler serves AI-generated wellness insights.
type InsightHandler struct {
	svc    *insight.Service
	logger *zap.Logger
}

func NewInsightHandler(svc *insight.Service, logger *zap.Logger) *InsightHandler {
	return &InsightHandler{svc: svc, logger: logger}
}

func (h *InsightHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	ins, err := h.svc.Generate(r.Context(), userID, time.Now())
	if err != nil {
		h.logger.Error("generate insight failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to generate insight", nil)
		return
	}
	writeJSON(w, http.StatusOK, ins)
}
