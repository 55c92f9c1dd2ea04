package state

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/catalog"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

const (
	// FinalFloor is the floor whose boss ends the game in victory.
	FinalFloor = 3

	MinPartySize = 2
	MaxPartySize = 4

	DefaultOracleTimeout = 90 * time.Second

	oracleLostMessage = "Connection to the System was lost."
)

// Oracle produces dungeon events and resolves combat turns.
type Oracle interface {
	DungeonEvent(ctx context.Context, req *oracle.DungeonRequest) (*oracle.EventResponse, error)
	CombatTurn(ctx context.Context, req *oracle.CombatRequest) (*oracle.CombatResponse, error)
}

// Session is one game: the party, the phase machine and everything pending
// on it. All state is guarded by mu. Oracle calls run without the lock, and
// the busy flag keeps a second call from starting meanwhile.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	phase     Phase
	mode      oracle.GameMode
	partySize int
	roster    Roster
	floor     int
	encounter *actor.Encounter
	dilemma   []oracle.Choice
	bossEvent *oracle.InteractiveEvent
	vote      *VoteSession
	log       []LogEntry
	busy      bool

	oracle        Oracle
	catalog       *catalog.Catalog
	notifier      Notifier
	rng           *rand.Rand
	oracleTimeout time.Duration
	logger        *slog.Logger
}

// NewSession creates a session waiting for a game mode.
func NewSession(o Oracle, cat *catalog.Catalog, logger *slog.Logger) *Session {
	id := uuid.New()
	return &Session{
		id:            id,
		phase:         PhaseModeSelect,
		floor:         1,
		roster:        Roster{},
		log:           []LogEntry{},
		oracle:        o,
		catalog:       cat,
		notifier:      NopNotifier{},
		rng:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		oracleTimeout: DefaultOracleTimeout,
		logger:        logger.With("session_id", id.String()),
	}
}

// WithNotifier sets the cue sink.
// Returns the Session for method chaining
func (s *Session) WithNotifier(n Notifier) *Session {
	if n != nil {
		s.notifier = n
	}
	return s
}

// WithRand sets the source used for vote tie-breaks and companion loyalty.
// Returns the Session for method chaining
func (s *Session) WithRand(r *rand.Rand) *Session {
	if r != nil {
		s.rng = r
	}
	return s
}

// WithOracleTimeout bounds each oracle call. Non-positive values keep the
// default.
// Returns the Session for method chaining
func (s *Session) WithOracleTimeout(d time.Duration) *Session {
	if d > 0 {
		s.oracleTimeout = d
	}
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// update runs fn under the lock, commits its journal and emits its cues
// after unlocking.
func (s *Session) update(ctx context.Context, fn func(j *Journal) error) error {
	cues, err := s.apply(fn)
	s.emit(ctx, cues)
	return err
}

func (s *Session) apply(fn func(j *Journal) error) ([]Cue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j := &Journal{}
	err := fn(j)
	return s.commit(j), err
}

// commit appends the journal's entries to the log and stamps its cues with
// the session ID. Must hold mu.
func (s *Session) commit(j *Journal) []Cue {
	s.log = append(s.log, j.Entries...)
	cues := make([]Cue, len(j.Cues))
	for i, c := range j.Cues {
		c.SessionID = s.id
		cues[i] = c
	}
	return cues
}

func (s *Session) emit(ctx context.Context, cues []Cue) {
	for _, c := range cues {
		if err := s.notifier.Notify(ctx, c); err != nil {
			s.logger.Warn("Failed to deliver cue", "kind", c.Kind, "error", err)
		}
	}
}

// setPhase moves to next and queues a phase cue. Must hold mu.
func (s *Session) setPhase(j *Journal, next Phase) {
	if s.phase == next {
		return
	}
	if !s.phase.CanTransitionTo(next) {
		s.logger.Error("Unexpected phase transition", "from", s.phase, "to", next)
	}
	s.logger.Debug("Phase changed", "from", s.phase, "to", next)
	s.phase = next
	j.Cue(CuePhaseChanged, "", string(next))
}

// player resolves a roster member for an inventory or stat operation.
// Must hold mu.
func (s *Session) player(name string) (*actor.Player, error) {
	if s.phase.IsTerminal() {
		return nil, ErrGameOver
	}
	p := s.roster.ByName(name)
	if p == nil {
		return nil, ErrUnknownPlayer
	}
	return p, nil
}

func (s *Session) oracleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.oracleTimeout)
}
