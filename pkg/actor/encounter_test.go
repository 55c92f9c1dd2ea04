package actor

import "testing"

func TestEncounterTakeDamage(t *testing.T) {
	e := NewEncounter("Wyrm", 100, true)

	e.TakeDamage(-5)
	if e.HP != 100 {
		t.Errorf("expected negative damage ignored, got HP %d", e.HP)
	}

	e.TakeDamage(60)
	if e.IsDefeated() {
		t.Error("expected enemy alive at 40 HP")
	}

	e.TakeDamage(70)
	if e.HP != -30 {
		t.Errorf("expected HP -30, got %d", e.HP)
	}
	if !e.IsDefeated() {
		t.Error("expected enemy defeated")
	}
}

func TestNewEncounterFloorsHP(t *testing.T) {
	e := NewEncounter("Wisp", 0, false)
	if e.HP != 1 || e.MaxHP != 1 {
		t.Errorf("expected 1/1 HP, got %d/%d", e.HP, e.MaxHP)
	}
}

func TestFloorGuardian(t *testing.T) {
	e := FloorGuardian(2, 3)
	if e.Name != "Guardian of Floor 2" {
		t.Errorf("unexpected name %q", e.Name)
	}
	if e.HP != 6000 || !e.IsBoss {
		t.Errorf("expected boss with 6000 HP, got %d (boss=%v)", e.HP, e.IsBoss)
	}
}

func TestEncounterRewards(t *testing.T) {
	tests := []struct {
		name     string
		isBoss   bool
		floor    int
		wantXP   int
		wantGold int
	}{
		{"boss floor 1", true, 1, 2000, 500},
		{"boss floor 3", true, 3, 6000, 1500},
		{"special enemy floor 2", false, 2, 1000, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncounter("x", 10, tt.isBoss)
			xp, gold := e.Rewards(tt.floor)
			if xp != tt.wantXP || gold != tt.wantGold {
				t.Errorf("expected %d XP %d gold, got %d XP %d gold", tt.wantXP, tt.wantGold, xp, gold)
			}
		})
	}
}
