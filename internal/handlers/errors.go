package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jwebster45206/dungeon-engine/internal/storage"
	"github.com/jwebster45206/dungeon-engine/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrSessionNotFound),
		errors.Is(err, state.ErrUnknownPlayer),
		errors.Is(err, state.ErrUnknownChoice):
		return http.StatusNotFound
	case errors.Is(err, state.ErrBusy),
		errors.Is(err, state.ErrWrongPhase),
		errors.Is(err, state.ErrGameOver),
		errors.Is(err, state.ErrVoteClosed),
		errors.Is(err, state.ErrPartyDowned):
		return http.StatusConflict
	case errors.Is(err, state.ErrInvalidCharacter),
		errors.Is(err, state.ErrInvalidIntent):
		return http.StatusBadRequest
	case errors.Is(err, state.ErrNoEffect):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	writeJSON(w, logger, status, ErrorResponse{Error: message})
}
