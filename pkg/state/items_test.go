package state

import (
	"context"
	"errors"
	"testing"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

func TestEquipAndUnequip(t *testing.T) {
	s, _ := soloSession(t, oracle.NewMockOracle())
	ctx := context.Background()

	if err := s.Equip(ctx, "Ayla", "steel_sword"); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect for an item not carried, got %v", err)
	}
	if err := s.Equip(ctx, "Ayla", "potion_small"); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect for a consumable, got %v", err)
	}
	if err := s.Equip(ctx, "Nobody", "rusty_dagger"); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("expected ErrUnknownPlayer, got %v", err)
	}

	if err := s.Equip(ctx, "Ayla", "rusty_dagger"); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	p := s.Snapshot().Player("Ayla")
	if p.Stats.Strength != p.BaseStats.Strength+2 || len(p.Inventory) != 2 {
		t.Errorf("expected dagger bonus applied and removed from inventory, got %+v", p.Stats)
	}
	if lastLog(s).Text != "Ayla equipped Rusty Dagger." {
		t.Errorf("unexpected log: %q", lastLog(s).Text)
	}

	if err := s.Unequip(ctx, "Ayla", actor.SlotArmor); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect for an empty slot, got %v", err)
	}
	if err := s.Unequip(ctx, "Ayla", actor.SlotMainHand); err != nil {
		t.Fatalf("Unequip: %v", err)
	}
	p = s.Snapshot().Player("Ayla")
	if p.Equipment.MainHand != nil || p.Inventory[len(p.Inventory)-1].ID != "rusty_dagger" {
		t.Errorf("expected dagger back at the end of the inventory")
	}
}

func TestUseItem(t *testing.T) {
	s, _ := soloSession(t, oracle.NewMockOracle())
	ctx := context.Background()
	s.mu.Lock()
	s.roster[0].HP = 50
	s.mu.Unlock()

	if err := s.UseItem(ctx, "Ayla", "potion_small"); err != nil {
		t.Fatalf("UseItem: %v", err)
	}
	p := s.Snapshot().Player("Ayla")
	if p.HP != 80 {
		t.Errorf("expected 80 HP, got %d", p.HP)
	}
	if len(p.Inventory) != 2 {
		t.Errorf("expected one potion consumed, got %d items", len(p.Inventory))
	}
	if lastLog(s).Text != "Ayla used Small Healing Potion. Recovered 30 HP." {
		t.Errorf("unexpected log: %q", lastLog(s).Text)
	}

	if err := s.UseItem(ctx, "Ayla", "rusty_dagger"); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect for a weapon, got %v", err)
	}
}

func TestBuy(t *testing.T) {
	s, n := soloSession(t, oracle.NewMockOracle())
	ctx := context.Background()

	if err := s.Buy(ctx, "Ayla", "potion_mana"); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	p := s.Snapshot().Player("Ayla")
	if p.Gold != 25 || p.Inventory[len(p.Inventory)-1].ID != "potion_mana" {
		t.Errorf("unexpected purchase result: gold %d", p.Gold)
	}
	if !n.has(CuePurchase) {
		t.Error("expected purchase cue")
	}

	logLen := len(s.Snapshot().Log)
	if err := s.Buy(ctx, "Ayla", "steel_sword"); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect without gold, got %v", err)
	}
	if err := s.Buy(ctx, "Ayla", "excalibur"); !errors.Is(err, ErrUnknownChoice) {
		t.Errorf("expected ErrUnknownChoice, got %v", err)
	}
	snap := s.Snapshot()
	if snap.Player("Ayla").Gold != 25 || len(snap.Log) != logLen {
		t.Error("expected failed purchases to change nothing")
	}

	s.mu.Lock()
	s.roster[0].MP = 0
	s.mu.Unlock()
	if err := s.UseItem(ctx, "Ayla", "potion_mana"); err != nil {
		t.Fatalf("UseItem: %v", err)
	}
	if mp := s.Snapshot().Player("Ayla").MP; mp != actor.ManaRestore {
		t.Errorf("expected %d MP, got %d", actor.ManaRestore, mp)
	}
}

func TestCraft(t *testing.T) {
	s, n := soloSession(t, oracle.NewMockOracle())
	ctx := context.Background()

	if err := s.Craft(ctx, "Ayla", "mega_potion"); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect without materials, got %v", err)
	}
	if err := s.Craft(ctx, "Ayla", "philosopher_stone"); !errors.Is(err, ErrUnknownChoice) {
		t.Errorf("expected ErrUnknownChoice, got %v", err)
	}

	s.mu.Lock()
	p := s.roster[0]
	p.Inventory = append(p.Inventory,
		actor.Item{ID: "herb", Name: "Medicinal Herb", Type: actor.ItemMaterial, Quantity: 4},
		actor.Item{ID: "water", Name: "Purified Water", Type: actor.ItemMaterial, Quantity: 1},
	)
	s.mu.Unlock()

	if err := s.Craft(ctx, "Ayla", "mega_potion"); err != nil {
		t.Fatalf("Craft: %v", err)
	}
	inv := s.Snapshot().Player("Ayla").Inventory
	if idx := inv.FindByName("Medicinal Herb"); idx < 0 || inv[idx].Quantity != 1 {
		t.Errorf("expected one herb left, got %+v", inv)
	}
	if inv.FindByName("Purified Water") >= 0 {
		t.Error("expected water consumed")
	}
	if inv.FindByID("potion_large") < 0 {
		t.Error("expected crafted potion in the inventory")
	}
	if !n.has(CueCraft) || lastLog(s).Text != "Ayla crafted: Large Potion!" {
		t.Errorf("expected craft cue and log, got %q", lastLog(s).Text)
	}
}

func TestAllocateStatPoint(t *testing.T) {
	s, _ := soloSession(t, oracle.NewMockOracle())
	ctx := context.Background()

	if err := s.AllocateStatPoint(ctx, "Ayla", actor.StatResistance); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect without points, got %v", err)
	}

	s.mu.Lock()
	s.roster[0].StatPoints = 1
	s.mu.Unlock()

	if err := s.AllocateStatPoint(ctx, "Ayla", actor.StatResistance); err != nil {
		t.Fatalf("AllocateStatPoint: %v", err)
	}
	p := s.Snapshot().Player("Ayla")
	if p.StatPoints != 0 || p.BaseStats.Resistance != 13 || p.MaxHP != testMaxHP+actor.HPPerResistance {
		t.Errorf("unexpected allocation: points %d res %d maxHP %d", p.StatPoints, p.BaseStats.Resistance, p.MaxHP)
	}
	if p.HP != testMaxHP {
		t.Errorf("expected a larger maximum not to heal, got %d", p.HP)
	}
}

func TestRenameCompanion(t *testing.T) {
	s, _ := soloSession(t, oracle.NewMockOracle())
	ctx := context.Background()

	if err := s.RenameCompanion(ctx, "Ayla", 0, "Rex"); !errors.Is(err, ErrInvalidIntent) {
		t.Errorf("expected ErrInvalidIntent without companions, got %v", err)
	}

	s.mu.Lock()
	s.roster[0].Companions = append(s.roster[0].Companions, actor.Companion{Name: "Stranger", Role: "Tank", Power: 1})
	s.mu.Unlock()

	if err := s.RenameCompanion(ctx, "Ayla", 0, "   "); !errors.Is(err, ErrNoEffect) {
		t.Errorf("expected ErrNoEffect for a blank name, got %v", err)
	}
	if err := s.RenameCompanion(ctx, "Ayla", 0, " Rex "); err != nil {
		t.Fatalf("RenameCompanion: %v", err)
	}
	if name := s.Snapshot().Player("Ayla").Companions[0].Name; name != "Rex" {
		t.Errorf("expected Rex, got %q", name)
	}
}
