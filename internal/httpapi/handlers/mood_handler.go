package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	authmiddleware "github.com/Hawk5760/calmora-well/internal/httpapi/middleware"
	"github.com/Hawk5760/calmora-well/internal/services/mood"
)

// MoodHandler exposes mood logging and the dashboard summary.
type MoodHandler struct {
	svc    *mood.Service
	logger *zap.Logger
}

func NewMoodHandler(svc *mood.Service, logger *zap.Logger) *MoodHandler {
	return &MoodHandler{svc: svc, logger: logger}
}

type moodLogRequest struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Note  string `json:"note"`
}

func (h *MoodHandler) Log(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	var req moodLogRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payload", nil)
		return
	}
	entry, err := h.svc.Log(r.Context(), userID, req.Score, req.Label, req.Note, time.Now())
	if err != nil {
		if errors.Is(err, mood.ErrInvalidEntry) {
			writeError(w, http.StatusBadRequest, "invalid_entry", err.Error(), nil)
			return
		}
		h.logger.Error("log mood failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to log mood", nil)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *MoodHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	days := queryInt(r, "days", 14)
	limit := queryInt(r, "limit", 0)
	entries, err := h.svc.List(r.Context(), userID, time.Now().AddDate(0, 0, -days), limit)
	if err != nil {
		h.logger.Error("list moods failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to list moods", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *MoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid entry id", nil)
		return
	}
	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, mood.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "entry not found", nil)
			return
		}
		h.logger.Error("delete mood failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to delete entry", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MoodHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	days := queryInt(r, "days", 14)
	sum, err := h.svc.Summarize(r.Context(), userID, days, time.Now())
	if err != nil {
		h.logger.Error("mood summary failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to summarize moods", nil)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
