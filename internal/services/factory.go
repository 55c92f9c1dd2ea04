package services

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/jwebster45206/dungeon-engine/internal/config"
	"github.com/jwebster45206/dungeon-engine/pkg/catalog"
	"github.com/jwebster45206/dungeon-engine/pkg/state"
)

// NewSessionFactory returns a constructor for sessions sharing one oracle,
// catalog and notifier. A non-zero GAME_SEED makes every session's dice
// reproducible; the nth session created always gets the same stream.
func NewSessionFactory(o state.Oracle, cat *catalog.Catalog, notifier state.Notifier, cfg *config.Config, logger *slog.Logger) func() *state.Session {
	var created atomic.Uint64
	return func() *state.Session {
		s := state.NewSession(o, cat, logger).
			WithNotifier(notifier).
			WithOracleTimeout(cfg.OracleTimeout)
		if cfg.Seed != 0 {
			s.WithRand(rand.New(rand.NewPCG(cfg.Seed, created.Add(1))))
		}
		return s
	}
}
