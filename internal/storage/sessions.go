package storage

import (
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jwebster45206/dungeon-engine/pkg/state"
)

// ErrSessionNotFound is returned for an unknown session id.
var ErrSessionNotFound = errors.New("session not found")

// Sessions is the in-memory session registry. Sessions live for the
// lifetime of the process.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*state.Session
	logger   *slog.Logger
}

func NewSessions(logger *slog.Logger) *Sessions {
	return &Sessions{
		sessions: make(map[uuid.UUID]*state.Session),
		logger:   logger,
	}
}

func (s *Sessions) Add(sess *state.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID()] = sess
	s.logger.Debug("Session registered", "session_id", sess.ID(), "sessions", len(s.sessions))
}

func (s *Sessions) Get(id uuid.UUID) (*state.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Sessions) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	s.logger.Debug("Session removed", "session_id", id)
	return nil
}

// IDs returns the registered session ids in a stable order.
func (s *Sessions) IDs() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})
	return ids
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
