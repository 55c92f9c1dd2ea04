package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/dungeon-engine/internal/storage"
	"github.com/jwebster45206/dungeon-engine/pkg/state"
)

// SessionFactory builds a fresh session with the server's oracle, catalog
// and notifier.
type SessionFactory func() *state.Session

type SessionHandler struct {
	sessions   *storage.Sessions
	newSession SessionFactory
	logger     *slog.Logger
}

func NewSessionHandler(sessions *storage.Sessions, newSession SessionFactory, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:   sessions,
		newSession: newSession,
		logger:     logger,
	}
}

type SessionListResponse struct {
	Sessions []uuid.UUID `json:"sessions"`
}

// ServeHTTP routes session requests.
// Routes:
// POST   /v1/sessions              - Create a session
// GET    /v1/sessions              - List session ids
// GET    /v1/sessions/{id}         - Snapshot a session
// DELETE /v1/sessions/{id}         - Drop a session
// POST   /v1/sessions/{id}/intents - Apply one intent, returns the new snapshot
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/sessions"), "/")
	if path == "" {
		switch r.Method {
		case http.MethodPost:
			h.handleCreate(w)
		case http.MethodGet:
			writeJSON(w, h.logger, http.StatusOK, SessionListResponse{Sessions: h.sessions.IDs()})
		default:
			writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: POST, GET")
		}
		return
	}

	idStr, sub, _ := strings.Cut(path, "/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.logger.Warn("Invalid session ID", "id", idStr, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session ID format")
		return
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, h.logger, http.StatusNotFound, err.Error())
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		writeJSON(w, h.logger, http.StatusOK, sess.Snapshot())
	case sub == "" && r.Method == http.MethodDelete:
		if err := h.sessions.Delete(id); err != nil {
			writeError(w, h.logger, statusFor(err), err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case sub == "intents" && r.Method == http.MethodPost:
		h.handleIntent(w, r, sess)
	case sub == "" || sub == "intents":
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	default:
		writeError(w, h.logger, http.StatusNotFound, "Not found")
	}
}

func (h *SessionHandler) handleCreate(w http.ResponseWriter) {
	sess := h.newSession()
	h.sessions.Add(sess)
	h.logger.Info("Session created", "session_id", sess.ID())
	writeJSON(w, h.logger, http.StatusCreated, sess.Snapshot())
}

func (h *SessionHandler) handleIntent(w http.ResponseWriter, r *http.Request, sess *state.Session) {
	var intent state.Intent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		h.logger.Warn("Invalid intent body", "session_id", sess.ID(), "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := sess.Dispatch(r.Context(), intent); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("Intent failed", "session_id", sess.ID(), "type", intent.Type, "error", err)
		} else {
			h.logger.Debug("Intent rejected", "session_id", sess.ID(), "type", intent.Type, "error", err)
		}
		writeError(w, h.logger, status, err.Error())
		return
	}

	writeJSON(w, h.logger, http.StatusOK, sess.Snapshot())
}
