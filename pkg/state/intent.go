package state

import (
	"context"
	"fmt"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

type IntentType string

const (
	IntentSelectMode        IntentType = "select_mode"
	IntentSetPartySize      IntentType = "set_party_size"
	IntentCreateCharacter   IntentType = "create_character"
	IntentEquip             IntentType = "equip"
	IntentUnequip           IntentType = "unequip"
	IntentUseItem           IntentType = "use_item"
	IntentCraft             IntentType = "craft"
	IntentBuy               IntentType = "buy"
	IntentAllocateStatPoint IntentType = "allocate_stat_point"
	IntentDungeonAction     IntentType = "dungeon_action"
	IntentCastVote          IntentType = "cast_vote"
	IntentResolveDilemma    IntentType = "resolve_dilemma"
	IntentCombatTurn        IntentType = "combat_turn"
	IntentResolveBossEvent  IntentType = "resolve_boss_event"
	IntentRenameCompanion   IntentType = "rename_companion"
)

// Intent is a discrete request from a presentation layer. Only the fields
// relevant to Type are read.
type Intent struct {
	Type IntentType `json:"type"`

	Mode      oracle.GameMode `json:"mode,omitempty"`
	PartySize int             `json:"party_size,omitempty"`

	Name   string   `json:"name,omitempty"`
	Traits []string `json:"traits,omitempty"`

	Player   string         `json:"player,omitempty"`
	ItemID   string         `json:"item_id,omitempty"`
	Slot     actor.Slot     `json:"slot,omitempty"`
	RecipeID string         `json:"recipe_id,omitempty"`
	Stat     actor.StatName `json:"stat,omitempty"`

	Action   oracle.Action         `json:"action,omitempty"`
	ChoiceID string                `json:"choice_id,omitempty"`
	Actions  []oracle.CombatAction `json:"actions,omitempty"`
	Flee     bool                  `json:"flee,omitempty"`

	CompanionIndex int `json:"companion_index,omitempty"`
}

// Validate checks that the fields Type needs are present and well formed.
func (i Intent) Validate() error {
	missing := func(field string) error {
		return fmt.Errorf("%w: %s requires %s", ErrInvalidIntent, i.Type, field)
	}
	needPlayer := func() error {
		if i.Player == "" {
			return missing("player")
		}
		return nil
	}

	switch i.Type {
	case IntentSelectMode:
		if i.Mode == "" {
			return missing("mode")
		}
	case IntentSetPartySize:
		if i.PartySize == 0 {
			return missing("party_size")
		}
	case IntentCreateCharacter:
		if i.Name == "" {
			return missing("name")
		}
	case IntentEquip, IntentUseItem, IntentBuy:
		if err := needPlayer(); err != nil {
			return err
		}
		if i.ItemID == "" {
			return missing("item_id")
		}
	case IntentUnequip:
		if err := needPlayer(); err != nil {
			return err
		}
		if _, ok := actor.ParseSlot(string(i.Slot)); !ok {
			return fmt.Errorf("%w: unknown slot %q", ErrInvalidIntent, i.Slot)
		}
	case IntentCraft:
		if err := needPlayer(); err != nil {
			return err
		}
		if i.RecipeID == "" {
			return missing("recipe_id")
		}
	case IntentAllocateStatPoint:
		if err := needPlayer(); err != nil {
			return err
		}
		if _, err := actor.ParseStatName(string(i.Stat)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidIntent, err)
		}
	case IntentDungeonAction, IntentCastVote:
		if _, ok := oracle.ParseAction(string(i.Action)); !ok {
			return fmt.Errorf("%w: unknown action %q", ErrInvalidIntent, i.Action)
		}
	case IntentResolveDilemma, IntentResolveBossEvent:
		if i.ChoiceID == "" {
			return missing("choice_id")
		}
	case IntentCombatTurn:
		for _, a := range i.Actions {
			if a.ActionType != oracle.CombatAttack && a.ActionType != oracle.CombatSkill {
				return fmt.Errorf("%w: unknown combat action %q", ErrInvalidIntent, a.ActionType)
			}
		}
	case IntentRenameCompanion:
		if err := needPlayer(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown intent type %q", ErrInvalidIntent, i.Type)
	}
	return nil
}

// Dispatch validates an intent and runs the operation it names.
func (s *Session) Dispatch(ctx context.Context, i Intent) error {
	if err := i.Validate(); err != nil {
		return err
	}

	switch i.Type {
	case IntentSelectMode:
		return s.SelectMode(ctx, i.Mode)
	case IntentSetPartySize:
		return s.SetPartySize(ctx, i.PartySize)
	case IntentCreateCharacter:
		return s.CreateCharacter(ctx, i.Name, i.Traits)
	case IntentEquip:
		return s.Equip(ctx, i.Player, i.ItemID)
	case IntentUnequip:
		slot, _ := actor.ParseSlot(string(i.Slot))
		return s.Unequip(ctx, i.Player, slot)
	case IntentUseItem:
		return s.UseItem(ctx, i.Player, i.ItemID)
	case IntentCraft:
		return s.Craft(ctx, i.Player, i.RecipeID)
	case IntentBuy:
		return s.Buy(ctx, i.Player, i.ItemID)
	case IntentAllocateStatPoint:
		stat, _ := actor.ParseStatName(string(i.Stat))
		return s.AllocateStatPoint(ctx, i.Player, stat)
	case IntentDungeonAction:
		action, _ := oracle.ParseAction(string(i.Action))
		return s.SubmitDungeonAction(ctx, action)
	case IntentCastVote:
		action, _ := oracle.ParseAction(string(i.Action))
		return s.CastVote(ctx, action)
	case IntentResolveDilemma:
		return s.ResolveDilemma(ctx, i.ChoiceID)
	case IntentCombatTurn:
		var err error
		if i.Flee {
			_, err = s.Flee(ctx)
		} else {
			_, err = s.CombatTurn(ctx, i.Actions)
		}
		return err
	case IntentResolveBossEvent:
		_, err := s.ResolveBossEvent(ctx, i.ChoiceID)
		return err
	case IntentRenameCompanion:
		return s.RenameCompanion(ctx, i.Player, i.CompanionIndex, i.Name)
	}
	return fmt.Errorf("%w: %q", ErrInvalidIntent, i.Type)
}
