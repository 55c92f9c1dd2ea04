package state

import (
	"math/rand/v2"
	"testing"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

func TestOutcomeWorkerApply(t *testing.T) {
	ayla := newPlayer(t, "Ayla")
	bo := newPlayer(t, "Bo")
	roster := Roster{ayla, bo}
	ore := actor.Item{ID: "iron_ore", Name: "Iron Ore", Type: actor.ItemMaterial, Quantity: 2}

	j := &Journal{}
	NewOutcomeWorker(roster, []oracle.PlayerOutcome{
		{PlayerName: "Ayla", HPChange: -500, MPChange: 999, XPChange: 150, GoldChange: 25, NewSkill: "Fireball"},
		{PlayerName: "Ghost", HPChange: -10},
		{PlayerName: "Bo", HPChange: -30, XPChange: -50, FoundItem: &ore},
		{PlayerName: "Bo", FoundItem: &ore},
	}, testLogger()).WithJournal(j).Apply()

	// Ayla levels up to 2, which heals to the new maximums.
	if ayla.Level != 2 || ayla.CurrentXP != 50 {
		t.Errorf("expected level 2 with 50 XP, got level %d with %d XP", ayla.Level, ayla.CurrentXP)
	}
	if ayla.HP != ayla.MaxHP || ayla.MP != ayla.MaxMP {
		t.Errorf("expected full heal after level-up, got HP %d/%d MP %d/%d", ayla.HP, ayla.MaxHP, ayla.MP, ayla.MaxMP)
	}
	if ayla.Gold != 125 || ayla.Skills[len(ayla.Skills)-1] != "Fireball" {
		t.Errorf("unexpected gold or skills: %d %v", ayla.Gold, ayla.Skills)
	}

	if bo.HP != testMaxHP-30 {
		t.Errorf("expected Bo at %d HP, got %d", testMaxHP-30, bo.HP)
	}
	if bo.CurrentXP != 0 || bo.Level != 1 {
		t.Errorf("expected negative XP to be ignored, got %d XP level %d", bo.CurrentXP, bo.Level)
	}
	idx := bo.Inventory.FindStack("Iron Ore", actor.ItemMaterial)
	if idx < 0 || bo.Inventory[idx].Quantity != 4 {
		t.Errorf("expected a single stack of 4 ore, got %+v", bo.Inventory)
	}

	for _, kind := range []CueKind{CueDamageTaken, CueLevelUp, CueItemAcquired} {
		if !j.HasCue(kind) {
			t.Errorf("expected %s cue", kind)
		}
	}
}

func TestOutcomeWorkerClampsHP(t *testing.T) {
	p := newPlayer(t, "Ayla")
	p.HP = 50
	NewOutcomeWorker(Roster{p}, []oracle.PlayerOutcome{{PlayerName: "Ayla", HPChange: 1000}}, testLogger()).Apply()
	if p.HP != testMaxHP {
		t.Errorf("expected HP clamped to %d, got %d", testMaxHP, p.HP)
	}

	NewOutcomeWorker(Roster{p}, []oracle.PlayerOutcome{{PlayerName: "Ayla", HPChange: -1000, MPChange: -1000}}, testLogger()).Apply()
	if p.HP != 0 || p.MP != 0 {
		t.Errorf("expected HP and MP clamped to 0, got %d and %d", p.HP, p.MP)
	}
}

func TestJoinCompanion(t *testing.T) {
	ayla := newPlayer(t, "Ayla")
	bo := newPlayer(t, "Bo")
	bo.Level = 3
	roster := Roster{ayla, bo}

	w := NewOutcomeWorker(roster, nil, testLogger()).WithRand(rand.New(rand.NewPCG(3, 4)))

	leader := w.JoinCompanion(oracle.CompanionEvent{Name: "Rex", Role: "Tank", Action: oracle.CompanionJoin, TargetPlayerName: "Bo"})
	if leader != bo || len(bo.Companions) != 1 {
		t.Fatalf("expected Rex to join Bo")
	}
	if bo.Companions[0].Power != 4 {
		t.Errorf("expected power 4 for a level 3 leader, got %d", bo.Companions[0].Power)
	}

	leader = w.JoinCompanion(oracle.CompanionEvent{Name: "Mira", Role: "Healer", TargetPlayerName: "Nobody"})
	if leader != ayla || ayla.Companions[0].Name != "Mira" {
		t.Errorf("expected unknown target to fall back to the first player")
	}

	if NewOutcomeWorker(Roster{}, nil, testLogger()).JoinCompanion(oracle.CompanionEvent{Name: "X"}) != nil {
		t.Error("expected nil leader for an empty roster")
	}
}
