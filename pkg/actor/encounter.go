package actor

import "fmt"

// Encounter is the enemy of the current turn-based fight. A floor boss and a
// special enemy differ only in rewards and presentation.
type Encounter struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Weakness    string `json:"weakness,omitempty"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"maxHp"`
	IsBoss      bool   `json:"isBoss"`
}

// NewEncounter builds an enemy at full health. HP is floored at 1 so a
// fresh encounter is never already defeated.
func NewEncounter(name string, hp int, isBoss bool) *Encounter {
	if hp < 1 {
		hp = 1
	}
	return &Encounter{Name: name, HP: hp, MaxHP: hp, IsBoss: isBoss}
}

// FloorGuardian is the boss used when the party challenges the floor and the
// oracle did not name one.
func FloorGuardian(floor, partySize int) *Encounter {
	e := NewEncounter(fmt.Sprintf("Guardian of Floor %d", floor), floor*1000*partySize, true)
	e.Description = "The warden of this floor bars the stairway."
	return e
}

// TakeDamage reduces HP by n. HP may drop below zero; callers only compare
// against IsDefeated.
func (e *Encounter) TakeDamage(n int) {
	if n <= 0 {
		return
	}
	e.HP -= n
}

// IsDefeated returns true if the enemy's HP is 0 or less.
func (e *Encounter) IsDefeated() bool {
	return e.HP <= 0
}

// Rewards returns the XP and gold granted to each surviving player.
func (e *Encounter) Rewards(floor int) (xp, gold int) {
	if e.IsBoss {
		return 2000 * floor, 500 * floor
	}
	return 500 * floor, 100 * floor
}
