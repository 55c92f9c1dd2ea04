package state

import "slices"

// Phase is the session's position in the game flow.
type Phase string

const (
	PhaseModeSelect       Phase = "mode_select"
	PhasePlayerCount      Phase = "player_count"
	PhaseCreation         Phase = "creation"
	PhaseExploration      Phase = "exploration"
	PhaseEventChoice      Phase = "event_choice"
	PhaseBossCombat       Phase = "boss_combat"
	PhaseBossEventResolve Phase = "boss_event_resolve"
	PhaseGameOver         Phase = "game_over"
	PhaseVictory          Phase = "victory"
)

var transitions = map[Phase][]Phase{
	PhaseModeSelect:       {PhaseCreation, PhasePlayerCount},
	PhasePlayerCount:      {PhaseCreation},
	PhaseCreation:         {PhaseCreation, PhaseExploration},
	PhaseExploration:      {PhaseExploration, PhaseEventChoice, PhaseBossCombat, PhaseGameOver},
	PhaseEventChoice:      {PhaseExploration, PhaseEventChoice, PhaseBossCombat, PhaseGameOver},
	PhaseBossCombat:       {PhaseBossCombat, PhaseBossEventResolve, PhaseExploration, PhaseGameOver, PhaseVictory},
	PhaseBossEventResolve: {PhaseBossCombat, PhaseExploration, PhaseGameOver, PhaseVictory},
}

// CanTransitionTo reports whether next is reachable from p in one step.
func (p Phase) CanTransitionTo(next Phase) bool {
	return slices.Contains(transitions[p], next)
}

// IsTerminal is true for game over and victory.
func (p Phase) IsTerminal() bool {
	return p == PhaseGameOver || p == PhaseVictory
}

// InDungeon is true once the party has formed and the game has not ended.
func (p Phase) InDungeon() bool {
	switch p {
	case PhaseExploration, PhaseEventChoice, PhaseBossCombat, PhaseBossEventResolve:
		return true
	}
	return false
}
