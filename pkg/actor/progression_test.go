package actor

import "testing"

func TestXPThreshold(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 100},
		{3, 300},
		{11, 10000},
		{12, XPCeiling},
		{40, XPCeiling},
	}
	for _, tt := range tests {
		if got := XPThreshold(tt.level); got != tt.want {
			t.Errorf("XPThreshold(%d): expected %d, got %d", tt.level, tt.want, got)
		}
	}
}

func TestGainXP(t *testing.T) {
	t.Run("exact threshold levels once and heals", func(t *testing.T) {
		p := testPlayer(t)
		p.HP, p.MP = 1, 1

		gained := GainXP(p, p.MaxXP)

		if gained != 1 || p.Level != 2 {
			t.Fatalf("expected one level-up to 2, got %d levels (level %d)", gained, p.Level)
		}
		if p.StatPoints != 4 {
			t.Errorf("expected 4 stat points, got %d", p.StatPoints)
		}
		if p.CurrentXP != 0 {
			t.Errorf("expected 0 XP carried, got %d", p.CurrentXP)
		}
		if p.HP != p.MaxHP || p.MP != p.MaxMP {
			t.Errorf("expected full heal, got %d/%d HP %d/%d MP", p.HP, p.MaxHP, p.MP, p.MaxMP)
		}
		if p.MaxHP != MaxHP(2, p.Stats, p.Traits) {
			t.Errorf("expected max HP recomputed for level 2, got %d", p.MaxHP)
		}
	})

	t.Run("crosses two thresholds in one grant", func(t *testing.T) {
		p := testPlayer(t)

		GainXP(p, 2*p.MaxXP+50)

		if p.Level != 3 {
			t.Errorf("expected level 3, got %d", p.Level)
		}
		if p.StatPoints != 8 {
			t.Errorf("expected 8 stat points, got %d", p.StatPoints)
		}
		if p.CurrentXP != 50 || p.MaxXP != 300 {
			t.Errorf("expected 50/300 XP, got %d/%d", p.CurrentXP, p.MaxXP)
		}
	})

	t.Run("below threshold only adds xp", func(t *testing.T) {
		p := testPlayer(t)
		p.HP = 10

		GainXP(p, 40)

		if p.Level != 1 || p.CurrentXP != 40 || p.HP != 10 {
			t.Errorf("expected level 1 with 40 XP and HP 10, got level %d XP %d HP %d", p.Level, p.CurrentXP, p.HP)
		}
	})

	t.Run("non-positive grants are ignored", func(t *testing.T) {
		p := testPlayer(t)
		p.CurrentXP = 30

		GainXP(p, -20)
		GainXP(p, 0)

		if p.CurrentXP != 30 {
			t.Errorf("expected XP unchanged at 30, got %d", p.CurrentXP)
		}
	})
}

func TestSpendStatPoint(t *testing.T) {
	p := testPlayer(t)

	if SpendStatPoint(p, StatResistance) {
		t.Fatal("expected spend without points to fail")
	}

	p.StatPoints = 1
	maxHP := p.MaxHP
	base := p.BaseStats.Resistance

	if !SpendStatPoint(p, StatResistance) {
		t.Fatal("expected spend to succeed")
	}
	if p.BaseStats.Resistance != base+1 || p.StatPoints != 0 {
		t.Errorf("expected resistance %d and 0 points, got %d and %d", base+1, p.BaseStats.Resistance, p.StatPoints)
	}
	if p.MaxHP != maxHP+HPPerResistance {
		t.Errorf("expected max HP %d, got %d", maxHP+HPPerResistance, p.MaxHP)
	}
}
