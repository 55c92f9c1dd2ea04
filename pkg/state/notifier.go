package state

import (
	"context"

	"github.com/google/uuid"
)

// CueKind names an audio or telemetry cue.
type CueKind string

const (
	CueItemAcquired     CueKind = "item_acquired"
	CueLevelUp          CueKind = "level_up"
	CueDamageTaken      CueKind = "damage_taken"
	CueCombatSlash      CueKind = "combat_slash"
	CueCraft            CueKind = "craft"
	CuePurchase         CueKind = "purchase"
	CueEnemyDefeated    CueKind = "enemy_defeated"
	CueEncounterStarted CueKind = "encounter_started"
	CuePhaseChanged     CueKind = "phase_changed"
)

// Cue is a fire-and-forget signal for sound effects, background music or
// telemetry. It never feeds back into game state.
type Cue struct {
	SessionID uuid.UUID `json:"session_id"`
	Kind      CueKind   `json:"kind"`
	Player    string    `json:"player,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Notifier delivers cues. Errors are logged and otherwise ignored.
type Notifier interface {
	Notify(ctx context.Context, cue Cue) error
}

// NopNotifier drops every cue.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Cue) error { return nil }
