package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	authmiddleware "github.com/Hawk5760/calmora-well/internal/httpapi/middleware"
	"github.com/Hawk5760/calmora-well/internal/services/journal"
)

// JournalHandler exposes CRUD over a user's private journal.
type JournalHandler struct {
	svc    *journal.Service
	logger *zap.Logger
}

func NewJournalHandler(svc *journal.Service, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{svc: svc, logger: logger}
}

type journalRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	var req journalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payload", nil)
		return
	}
	entry, err := h.svc.Create(r.Context(), userID, req.Title, req.Body, time.Now())
	if err != nil {
		if errors.Is(err, journal.ErrInvalidEntry) {
			writeError(w, http.StatusBadRequest, "invalid_entry", err.Error(), nil)
			return
		}
		h.logger.Error("create journal entry failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to create entry", nil)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	entry, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, journal.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "entry not found", nil)
			return
		}
		h.logger.Error("get journal entry failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to load entry", nil)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authmiddleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing auth", nil)
		return
	}
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	entries, err := h.svc.List(r.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error("list journal entries failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to list entries", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *JournalHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var req journalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payload", nil)
		return
	}
	entry, err := h.svc.Update(r.Context(), userID, id, req.Title, req.Body, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, journal.ErrInvalidEntry):
			writeError(w, http.StatusBadRequest, "invalid_entry", err.Error(), nil)
		case errors.Is(err, journal.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", "entry not found", nil)
		default:
			h.logger.Error("update journal entry failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "server_error", "failed to update entry", nil)
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *JournalHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
		if errors.Is(err, journal.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "entry not found", nil)
			return
		}
		h.logger.Error("delete journal entry failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to delete entry", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
