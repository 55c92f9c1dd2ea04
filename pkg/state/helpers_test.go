package state

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/catalog"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

// Agile, strong and lucky against blind, dumb and frail: base STR 12,
// RES 12, PER 9, INT 9, so MaxHP 110 and MaxMP 85 at level 1.
var testTraits = []string{"agile", "strong", "lucky", "blind", "dumb", "frail"}

const (
	testMaxHP = 110
	testMaxMP = 85
)

type recordingNotifier struct {
	mu   sync.Mutex
	cues []Cue
}

func (n *recordingNotifier) Notify(_ context.Context, c Cue) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cues = append(n.cues, c)
	return nil
}

func (n *recordingNotifier) has(kind CueKind) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, c := range n.cues {
		if c.Kind == kind {
			return true
		}
	}
	return false
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return c
}

func newTestSession(t *testing.T, o *oracle.MockOracle) (*Session, *recordingNotifier) {
	t.Helper()
	n := &recordingNotifier{}
	s := NewSession(o, testCatalog(t), testLogger()).
		WithNotifier(n).
		WithRand(rand.New(rand.NewPCG(1, 2)))
	return s, n
}

// soloSession returns a solo session in exploration with one player, Ayla.
func soloSession(t *testing.T, o *oracle.MockOracle) (*Session, *recordingNotifier) {
	t.Helper()
	s, n := newTestSession(t, o)
	ctx := context.Background()
	if err := s.SelectMode(ctx, oracle.ModeSolo); err != nil {
		t.Fatalf("SelectMode: %v", err)
	}
	if err := s.CreateCharacter(ctx, "Ayla", testTraits); err != nil {
		t.Fatalf("CreateCharacter: %v", err)
	}
	return s, n
}

// partySession returns a multiplayer session in exploration with the named
// players.
func partySession(t *testing.T, o *oracle.MockOracle, names ...string) *Session {
	t.Helper()
	s, _ := newTestSession(t, o)
	ctx := context.Background()
	if err := s.SelectMode(ctx, oracle.ModeMultiplayer); err != nil {
		t.Fatalf("SelectMode: %v", err)
	}
	if err := s.SetPartySize(ctx, len(names)); err != nil {
		t.Fatalf("SetPartySize: %v", err)
	}
	for _, name := range names {
		if err := s.CreateCharacter(ctx, name, testTraits); err != nil {
			t.Fatalf("CreateCharacter(%s): %v", name, err)
		}
	}
	return s
}

// combatSession returns a solo session already fighting enemy.
func combatSession(t *testing.T, o *oracle.MockOracle, enemy oracle.EnemyDetails, boss bool) *Session {
	t.Helper()
	s, _ := soloSession(t, o)
	enemy.IsBoss = boss
	o.QueueEvent(&oracle.EventResponse{
		Narrative:         "Something stirs.",
		IsBossEncounter:   boss,
		IsCombatEncounter: !boss,
		EnemyDetails:      &enemy,
	})
	if err := s.SubmitDungeonAction(context.Background(), oracle.ActionExplore); err != nil {
		t.Fatalf("SubmitDungeonAction: %v", err)
	}
	if s.Phase() != PhaseBossCombat {
		t.Fatalf("expected boss_combat, got %s", s.Phase())
	}
	return s
}

func newPlayer(t *testing.T, name string) *actor.Player {
	t.Helper()
	c := testCatalog(t)
	traits, err := c.ResolveTraits(testTraits)
	if err != nil {
		t.Fatalf("ResolveTraits: %v", err)
	}
	p, err := actor.NewPlayer(name, traits, c.Kit())
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	return p
}

func lastLog(s *Session) LogEntry {
	snap := s.Snapshot()
	if len(snap.Log) == 0 {
		return LogEntry{}
	}
	return snap.Log[len(snap.Log)-1]
}

func logContains(s *Session, text string) bool {
	for _, e := range s.Snapshot().Log {
		if e.Text == text {
			return true
		}
	}
	return false
}
