package state

import (
	"slices"

	"github.com/google/uuid"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

// Snapshot is a read-only deep copy of a session. It is always taken under
// the session lock, so it never shows half of an applied batch.
type Snapshot struct {
	ID           uuid.UUID                `json:"id"`
	Phase        Phase                    `json:"phase"`
	Mode         oracle.GameMode          `json:"mode,omitempty"`
	PartySize    int                      `json:"party_size"`
	CreationSlot int                      `json:"creation_slot"` // 1-based; 0 outside creation
	Floor        int                      `json:"floor"`
	Players      []*actor.Player          `json:"players"`
	Encounter    *actor.Encounter         `json:"encounter,omitempty"`
	Dilemma      []oracle.Choice          `json:"dilemma,omitempty"`
	BossEvent    *oracle.InteractiveEvent `json:"boss_event,omitempty"`
	Vote         *VoteSession             `json:"vote,omitempty"`
	Log          []LogEntry               `json:"log"`
	Busy         bool                     `json:"busy"`
}

func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{
		ID:        s.id,
		Phase:     s.phase,
		Mode:      s.mode,
		PartySize: s.partySize,
		Floor:     s.floor,
		Players:   s.roster.clone(),
		Dilemma:   slices.Clone(s.dilemma),
		Vote:      s.vote.clone(),
		Log:       slices.Clone(s.log),
		Busy:      s.busy,
	}
	if s.phase == PhaseCreation {
		snap.CreationSlot = len(s.roster) + 1
	}
	if s.encounter != nil {
		enc := *s.encounter
		snap.Encounter = &enc
	}
	if s.bossEvent != nil {
		ev := *s.bossEvent
		ev.Options = slices.Clone(s.bossEvent.Options)
		snap.BossEvent = &ev
	}
	return snap
}

// Player returns the named player from the snapshot, or nil.
func (snap *Snapshot) Player(name string) *actor.Player {
	return Roster(snap.Players).ByName(name)
}
