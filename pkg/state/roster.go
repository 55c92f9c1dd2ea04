package state

import (
	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

// Roster is the party in creation order. Player names are unique.
type Roster []*actor.Player

// ByName returns the player with the given name, or nil.
func (r Roster) ByName(name string) *actor.Player {
	for _, p := range r {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// IndexOf returns the roster position of name, or -1.
func (r Roster) IndexOf(name string) int {
	for i, p := range r {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Living returns the players above 0 HP.
func (r Roster) Living() Roster {
	var out Roster
	for _, p := range r {
		if !p.IsDown() {
			out = append(out, p)
		}
	}
	return out
}

// AllDown reports a total-party wipe. An empty roster is not a wipe.
func (r Roster) AllDown() bool {
	return len(r) > 0 && len(r.Living()) == 0
}

func (r Roster) Names() []string {
	out := make([]string, len(r))
	for i, p := range r {
		out[i] = p.Name
	}
	return out
}

// Summaries captures the oracle view of every player in r.
func (r Roster) Summaries() []oracle.PlayerSummary {
	out := make([]oracle.PlayerSummary, len(r))
	for i, p := range r {
		out[i] = oracle.Summarize(p)
	}
	return out
}

func (r Roster) clone() Roster {
	out := make(Roster, len(r))
	for i, p := range r {
		out[i] = p.Clone()
	}
	return out
}
