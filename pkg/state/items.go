package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
)

// Inventory and character operations. They are allowed in any non-terminal
// phase once the player exists, including while an oracle call is pending.

func (s *Session) Equip(ctx context.Context, player, itemID string) error {
	return s.update(ctx, func(j *Journal) error {
		p, err := s.player(player)
		if err != nil {
			return err
		}
		idx := p.Inventory.FindByID(itemID)
		if idx < 0 {
			return fmt.Errorf("%w: %s does not carry %q", ErrNoEffect, p.Name, itemID)
		}
		item := p.Inventory[idx]
		if !actor.Equip(p, item) {
			return fmt.Errorf("%w: %s cannot be equipped", ErrNoEffect, item.Name)
		}
		j.Logf(LogSystem, "%s equipped %s.", p.Name, item.Name)
		return nil
	})
}

func (s *Session) Unequip(ctx context.Context, player string, slot actor.Slot) error {
	return s.update(ctx, func(j *Journal) error {
		p, err := s.player(player)
		if err != nil {
			return err
		}
		item := p.Equipment.Get(slot)
		if item == nil {
			return fmt.Errorf("%w: %s slot is empty", ErrNoEffect, slot)
		}
		name := item.Name
		if !actor.Unequip(p, slot) {
			return ErrNoEffect
		}
		j.Logf(LogSystem, "%s unequipped %s.", p.Name, name)
		return nil
	})
}

func (s *Session) UseItem(ctx context.Context, player, itemID string) error {
	return s.update(ctx, func(j *Journal) error {
		p, err := s.player(player)
		if err != nil {
			return err
		}
		idx := p.Inventory.FindByID(itemID)
		if idx < 0 {
			return fmt.Errorf("%w: %s does not carry %q", ErrNoEffect, p.Name, itemID)
		}
		item := p.Inventory[idx]
		if !actor.Use(p, item) {
			return fmt.Errorf("%w: %s cannot be used", ErrNoEffect, item.Name)
		}
		if item.HealAmount > 0 {
			j.Logf(LogGain, "%s used %s. Recovered %d HP.", p.Name, item.Name, item.HealAmount)
		}
		if strings.Contains(item.ID, "mana") {
			j.Logf(LogGain, "%s used %s. Recovered %d MP.", p.Name, item.Name, actor.ManaRestore)
		}
		return nil
	})
}

func (s *Session) Craft(ctx context.Context, player, recipeID string) error {
	return s.update(ctx, func(j *Journal) error {
		p, err := s.player(player)
		if err != nil {
			return err
		}
		r, ok := s.catalog.Recipe(recipeID)
		if !ok {
			return fmt.Errorf("%w: recipe %q", ErrUnknownChoice, recipeID)
		}
		if !actor.Craft(p, r) {
			return fmt.Errorf("%w: missing level or materials for %s", ErrNoEffect, r.Result.Name)
		}
		j.Logf(LogGain, "%s crafted: %s!", p.Name, r.Result.Name)
		j.Cue(CueCraft, p.Name, r.Result.Name)
		return nil
	})
}

// Buy purchases a shop item at its catalog cost. The shop is only open
// during exploration.
func (s *Session) Buy(ctx context.Context, player, itemID string) error {
	return s.update(ctx, func(j *Journal) error {
		p, err := s.player(player)
		if err != nil {
			return err
		}
		if s.phase != PhaseExploration {
			return ErrWrongPhase
		}
		item, ok := s.catalog.ShopItem(itemID)
		if !ok {
			return fmt.Errorf("%w: shop item %q", ErrUnknownChoice, itemID)
		}
		if !actor.Buy(p, item, item.Cost) {
			return fmt.Errorf("%w: not enough gold", ErrNoEffect)
		}
		j.Logf(LogGain, "%s bought %s for %d G.", p.Name, item.Name, item.Cost)
		j.Cue(CuePurchase, p.Name, item.Name)
		return nil
	})
}

func (s *Session) AllocateStatPoint(ctx context.Context, player string, stat actor.StatName) error {
	return s.update(ctx, func(j *Journal) error {
		p, err := s.player(player)
		if err != nil {
			return err
		}
		if !actor.SpendStatPoint(p, stat) {
			return fmt.Errorf("%w: no stat points to spend", ErrNoEffect)
		}
		return nil
	})
}

// RenameCompanion renames one of a player's companions. The new name is
// trimmed; an empty name changes nothing.
func (s *Session) RenameCompanion(ctx context.Context, player string, index int, name string) error {
	return s.update(ctx, func(j *Journal) error {
		p, err := s.player(player)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(p.Companions) {
			return fmt.Errorf("%w: no companion at %d", ErrInvalidIntent, index)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("%w: empty name", ErrNoEffect)
		}
		p.Companions[index].Name = name
		j.Logf(LogSystem, "Companion renamed to %s.", name)
		return nil
	})
}
