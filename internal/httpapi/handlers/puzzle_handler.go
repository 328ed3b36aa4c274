package handlers

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Hawk5760/calmora-well/internal/services/puzzle"
)

// PuzzleHandler serves the daily word scramble.
type PuzzleHandler struct {
	svc    *puzzle.Service
	logger *zap.Logger
}

func NewPuzzleHandler(svc *puzzle.Service, logger *zap.Logger) *PuzzleHandler {
	return &PuzzleHandler{svc: svc, logger: logger}
}

type puzzleGuessRequest struct {
	Guess string `json:"guess"`
}

func (h *PuzzleHandler) Daily(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Daily(r.Context(), time.Now())
	if err != nil {
		if errors.Is(err, puzzle.ErrNoWords) {
			writeError(w, http.StatusNotFound, "not_found", "no puzzle available", nil)
			return
		}
		h.logger.Error("daily puzzle failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to load puzzle", nil)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PuzzleHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req puzzleGuessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid payload", nil)
		return
	}
	if req.Guess == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "guess is required", nil)
		return
	}
	res, err := h.svc.Check(r.Context(), time.Now(), req.Guess)
	if err != nil {
		if errors.Is(err, puzzle.ErrNoWords) {
			writeError(w, http.StatusNotFound, "not_found", "no puzzle available", nil)
			return
		}
		h.logger.Error("puzzle check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server_error", "failed to check guess", nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
