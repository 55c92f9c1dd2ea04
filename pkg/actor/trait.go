package actor

import "slices"

type Polarity string

const (
	PolarityPositive Polarity = "POSITIVE"
	PolarityNegative Polarity = "NEGATIVE"
)

// TraitsPerPolarity is how many positive and how many negative traits a
// character picks at creation.
const TraitsPerPolarity = 3

// Trait is an immutable catalog entry chosen once at character creation.
type Trait struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Polarity      Polarity `json:"type" yaml:"polarity"`
	Bonus         Stats    `json:"statBonus,omitzero" yaml:"stat_bonus,omitempty"`
	ConflictsWith []string `json:"conflictsWith,omitempty" yaml:"conflicts_with,omitempty"`
}

// Conflicts reports whether t and o cannot be held together. The relation
// is checked in both directions so a one-sided catalog entry still counts.
func (t Trait) Conflicts(o Trait) bool {
	return slices.Contains(t.ConflictsWith, o.ID) || slices.Contains(o.ConflictsWith, t.ID)
}

// HasTrait reports whether the player holds the trait with the given ID.
func (p *Player) HasTrait(id string) bool {
	return slices.ContainsFunc(p.Traits, func(t Trait) bool { return t.ID == id })
}
