package actor

import "fmt"

const (
	HPPerResistance   = 10
	MPPerIntelligence = 10
	HPPerLevel        = 20
	MPPerLevel        = 5

	// SkillManaCost is the MP spent by any named skill in combat.
	SkillManaCost = 20
)

// Flat max HP/MP adjustments keyed by trait ID. Only these four traits
// carry them; every other trait contributes through its stat bonus.
var (
	traitHPBonus = map[string]int{
		"immortal": 50,
		"frail":    -30,
	}
	traitMPBonus = map[string]int{
		"genius": 20,
		"dumb":   -10,
	}
)

// StatName identifies one of the four attributes.
type StatName string

const (
	StatStrength     StatName = "strength"
	StatResistance   StatName = "resistance"
	StatPerception   StatName = "perception"
	StatIntelligence StatName = "intelligence"
)

// StatNames lists the attributes in display order.
var StatNames = []StatName{StatStrength, StatResistance, StatPerception, StatIntelligence}

// ParseStatName accepts a full attribute name or its three-letter abbreviation.
func ParseStatName(s string) (StatName, error) {
	switch s {
	case "strength", "str":
		return StatStrength, nil
	case "resistance", "res":
		return StatResistance, nil
	case "perception", "per":
		return StatPerception, nil
	case "intelligence", "int":
		return StatIntelligence, nil
	default:
		return "", fmt.Errorf("unknown stat: %q", s)
	}
}

// Stats is a vector of the four attributes. A zero value means "no bonus"
// when used on items and traits.
type Stats struct {
	Strength     int `json:"strength,omitempty" yaml:"strength,omitempty"`
	Resistance   int `json:"resistance,omitempty" yaml:"resistance,omitempty"`
	Perception   int `json:"perception,omitempty" yaml:"perception,omitempty"`
	Intelligence int `json:"intelligence,omitempty" yaml:"intelligence,omitempty"`
}

// Uniform returns a Stats with every attribute set to n.
func Uniform(n int) Stats {
	return Stats{Strength: n, Resistance: n, Perception: n, Intelligence: n}
}

func (s Stats) Add(o Stats) Stats {
	return Stats{
		Strength:     s.Strength + o.Strength,
		Resistance:   s.Resistance + o.Resistance,
		Perception:   s.Perception + o.Perception,
		Intelligence: s.Intelligence + o.Intelligence,
	}
}

func (s Stats) Get(name StatName) int {
	switch name {
	case StatStrength:
		return s.Strength
	case StatResistance:
		return s.Resistance
	case StatPerception:
		return s.Perception
	case StatIntelligence:
		return s.Intelligence
	}
	return 0
}

// IsZero reports whether the vector carries no bonus at all.
func (s Stats) IsZero() bool {
	return s == Stats{}
}

func (s *Stats) inc(name StatName, n int) bool {
	switch name {
	case StatStrength:
		s.Strength += n
	case StatResistance:
		s.Resistance += n
	case StatPerception:
		s.Perception += n
	case StatIntelligence:
		s.Intelligence += n
	default:
		return false
	}
	return true
}

// DeriveStats returns the effective attributes: base plus every equipped bonus.
func DeriveStats(base Stats, eq Equipment) Stats {
	out := base
	for _, it := range eq.Items() {
		out = out.Add(it.Bonus)
	}
	return out
}

// MaxHP computes maximum hit points from level, effective resistance and
// the flat trait adjustments.
func MaxHP(level int, stats Stats, traits []Trait) int {
	hp := level*HPPerLevel + stats.Resistance*HPPerResistance
	for _, t := range traits {
		hp += traitHPBonus[t.ID]
	}
	return hp
}

// MaxMP computes maximum mana from level, effective intelligence and the
// flat trait adjustments.
func MaxMP(level int, stats Stats, traits []Trait) int {
	mp := level*MPPerLevel + stats.Intelligence*MPPerIntelligence
	for _, t := range traits {
		mp += traitMPBonus[t.ID]
	}
	return mp
}

// Recompute refreshes the derived stats and maximums after a change to base
// stats, equipment, level or traits. Current HP/MP are only ever clamped
// down; a larger maximum does not heal.
func (p *Player) Recompute() {
	p.Stats = DeriveStats(p.BaseStats, p.Equipment)
	p.MaxHP = MaxHP(p.Level, p.Stats, p.Traits)
	p.MaxMP = MaxMP(p.Level, p.Stats, p.Traits)
	p.HP = clamp(p.HP, 0, p.MaxHP)
	p.MP = clamp(p.MP, 0, p.MaxMP)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
