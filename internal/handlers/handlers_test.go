package handlers

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/dungeon-engine/internal/storage"
	"github.com/jwebster45206/dungeon-engine/pkg/catalog"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
	"github.com/jwebster45206/dungeon-engine/pkg/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return cat
}

// newTestSessionHandler wires a handler whose sessions all share o.
func newTestSessionHandler(t *testing.T, o *oracle.MockOracle) (*SessionHandler, *storage.Sessions) {
	t.Helper()
	cat := testCatalog(t)
	sessions := storage.NewSessions(testLogger())
	factory := func() *state.Session {
		return state.NewSession(o, cat, testLogger())
	}
	return NewSessionHandler(sessions, factory, testLogger()), sessions
}
