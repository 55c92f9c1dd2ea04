package actor

import (
	"fmt"
	"slices"
	"strings"
)

const (
	StartingLevel = 1
	StartingGold  = 100
	StartingStat  = 10
)

// Player is a party member. Name is the only key the oracle uses to refer
// back to a player, so it must be unique within a session.
type Player struct {
	Name      string `json:"name"`
	Level     int    `json:"level"`
	CurrentXP int    `json:"currentXp"`
	MaxXP     int    `json:"maxXp"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"maxHp"`
	MP        int    `json:"mp"`
	MaxMP     int    `json:"maxMp"`
	Gold      int    `json:"gold"`

	BaseStats  Stats `json:"baseStats"`
	Stats      Stats `json:"stats"` // derived; see Recompute
	StatPoints int   `json:"statPoints"`

	Traits     []Trait     `json:"traits"`
	Skills     []string    `json:"skills"`
	Inventory  Inventory   `json:"inventory"`
	Equipment  Equipment   `json:"equipment"`
	Companions []Companion `json:"companions"`

	// Carried for the narrative; no rule reads them.
	Alignment          int  `json:"alignment"`
	IsMonarchCandidate bool `json:"isMonarchCandidate"`
}

// Companion is an NPC attached to a single player.
type Companion struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	IsTraitor bool   `json:"isTraitor"`
	Power     int    `json:"power"`
}

// CompanionPower derives a new companion's power from its leader's level.
func CompanionPower(level int) int {
	return level * 3 / 2
}

// StarterKit is what a new character begins with.
type StarterKit struct {
	Gold      int
	Skills    []string
	Inventory []Item
}

// NewPlayer builds a level 1 character. Trait stat bonuses are folded into
// the base stats once here; afterwards only the flat HP/MP trait terms are
// applied by Recompute. The new player starts at full HP and MP.
func NewPlayer(name string, traits []Trait, kit StarterKit) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if err := ValidateTraits(traits); err != nil {
		return nil, err
	}

	base := Uniform(StartingStat)
	for _, t := range traits {
		base = base.Add(t.Bonus)
	}

	p := &Player{
		Name:       name,
		Level:      StartingLevel,
		MaxXP:      XPThreshold(StartingLevel),
		Gold:       kit.Gold,
		BaseStats:  base,
		Traits:     slices.Clone(traits),
		Skills:     slices.Clone(kit.Skills),
		Inventory:  slices.Clone(Inventory(kit.Inventory)),
		Companions: []Companion{},
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Inventory == nil {
		p.Inventory = Inventory{}
	}
	p.Recompute()
	p.HP = p.MaxHP
	p.MP = p.MaxMP
	return p, nil
}

// ValidateTraits checks the creation rule: exactly three positive and three
// negative traits, no duplicates, and no conflicting pair.
func ValidateTraits(traits []Trait) error {
	var pos, neg int
	for i, t := range traits {
		switch t.Polarity {
		case PolarityPositive:
			pos++
		case PolarityNegative:
			neg++
		default:
			return fmt.Errorf("trait %q has unknown polarity %q", t.ID, t.Polarity)
		}
		for _, o := range traits[:i] {
			if o.ID == t.ID {
				return fmt.Errorf("trait %q selected twice", t.ID)
			}
			if t.Conflicts(o) {
				return fmt.Errorf("trait %q conflicts with %q", t.ID, o.ID)
			}
		}
	}
	if pos != TraitsPerPolarity || neg != TraitsPerPolarity {
		return fmt.Errorf("need %d positive and %d negative traits, got %d and %d",
			TraitsPerPolarity, TraitsPerPolarity, pos, neg)
	}
	return nil
}

// IsDown reports whether the player has been reduced to 0 HP.
func (p *Player) IsDown() bool {
	return p.HP <= 0
}

// AdjustHP applies delta and clamps the result to [0, MaxHP]. It returns the
// change actually applied.
func (p *Player) AdjustHP(delta int) int {
	before := p.HP
	p.HP = clamp(p.HP+delta, 0, p.MaxHP)
	return p.HP - before
}

// AdjustMP applies delta and clamps the result to [0, MaxMP].
func (p *Player) AdjustMP(delta int) int {
	before := p.MP
	p.MP = clamp(p.MP+delta, 0, p.MaxMP)
	return p.MP - before
}

// Clone returns a deep copy safe to hand to readers outside the session lock.
func (p *Player) Clone() *Player {
	c := *p
	c.Traits = slices.Clone(p.Traits)
	for i := range c.Traits {
		c.Traits[i].ConflictsWith = slices.Clone(p.Traits[i].ConflictsWith)
	}
	c.Skills = slices.Clone(p.Skills)
	c.Inventory = slices.Clone(p.Inventory)
	c.Companions = slices.Clone(p.Companions)
	c.Equipment = p.Equipment.clone()
	return &c
}
