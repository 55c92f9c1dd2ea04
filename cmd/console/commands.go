package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/dungeon-engine/pkg/actor"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
	"github.com/jwebster45206/dungeon-engine/pkg/state"
)

// Meta commands act on the console itself rather than the game.
const (
	metaHelp  = "/help"
	metaCopy  = "/copy"
	metaQuit  = "/quit"
	metaParty = "/party"
)

// command is one parsed line of input: either a meta command or an intent.
type command struct {
	meta   string
	intent *state.Intent
}

var errEmptyInput = errors.New("type a command, or /help")

const helpText = `Setup:
  mode solo|multi           choose the game mode
  party <2-4>               set the multiplayer party size
  create <name> <traits>    traits are six comma separated ids, 3 positive then 3 negative

Dungeon:
  explore | rest | analyze | boss
  vote <action>             cast the current voter's ballot
  choose <id>               answer a dilemma or a boss event

Combat:
  fight [name=attack|skill ...]   everyone attacks unless told otherwise
  flee

Gear:
  equip [name] <item>   unequip [name] <slot>   use [name] <item>
  buy [name] <item>     craft [name] <recipe>   stat [name] <stat>
  rename [name] <companion#> <new name>

Console:
  /party  /copy  /help  /quit
The [name] argument may be left out when the party has one member.`

// parseCommand turns a console line into a command. snap supplies the
// party for commands whose player argument is optional and the phase for
// "choose".
func parseCommand(input string, snap *state.Snapshot) (command, error) {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return command{}, errEmptyInput
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	if strings.HasPrefix(verb, "/") {
		switch verb {
		case metaHelp, metaCopy, metaQuit, metaParty:
			return command{meta: verb}, nil
		}
		return command{}, fmt.Errorf("unknown console command %s", verb)
	}

	intent, err := parseIntent(verb, args, snap)
	if err != nil {
		return command{}, err
	}
	return command{intent: intent}, nil
}

func parseIntent(verb string, args []string, snap *state.Snapshot) (*state.Intent, error) {
	if action, ok := oracle.ParseAction(verb); ok {
		return &state.Intent{Type: state.IntentDungeonAction, Action: action}, nil
	}

	switch verb {
	case "mode":
		if len(args) != 1 {
			return nil, errors.New("usage: mode solo|multi")
		}
		switch strings.ToLower(args[0]) {
		case "solo":
			return &state.Intent{Type: state.IntentSelectMode, Mode: oracle.ModeSolo}, nil
		case "multi", "multiplayer":
			return &state.Intent{Type: state.IntentSelectMode, Mode: oracle.ModeMultiplayer}, nil
		}
		return nil, fmt.Errorf("unknown mode %q", args[0])

	case "party":
		if len(args) != 1 {
			return nil, errors.New("usage: party <2-4>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("party size must be a number: %w", err)
		}
		return &state.Intent{Type: state.IntentSetPartySize, PartySize: n}, nil

	case "create":
		if len(args) < 2 {
			return nil, errors.New("usage: create <name> <trait,trait,...>")
		}
		traits := strings.Split(strings.Join(args[1:], ""), ",")
		return &state.Intent{Type: state.IntentCreateCharacter, Name: args[0], Traits: traits}, nil

	case "vote":
		if len(args) != 1 {
			return nil, errors.New("usage: vote explore|rest|analyze|boss")
		}
		action, ok := oracle.ParseAction(strings.ToLower(args[0]))
		if !ok {
			return nil, fmt.Errorf("unknown action %q", args[0])
		}
		return &state.Intent{Type: state.IntentCastVote, Action: action}, nil

	case "choose":
		if len(args) != 1 {
			return nil, errors.New("usage: choose <id>")
		}
		if snap != nil && snap.BossEvent != nil {
			return &state.Intent{Type: state.IntentResolveBossEvent, ChoiceID: args[0]}, nil
		}
		return &state.Intent{Type: state.IntentResolveDilemma, ChoiceID: args[0]}, nil

	case "fight", "attack":
		actions, err := parseCombatActions(args)
		if err != nil {
			return nil, err
		}
		return &state.Intent{Type: state.IntentCombatTurn, Actions: actions}, nil

	case "flee":
		return &state.Intent{Type: state.IntentCombatTurn, Flee: true}, nil

	case "equip", "use", "buy", "craft", "stat", "unequip":
		player, rest, err := splitPlayer(args, snap, 1)
		if err != nil {
			return nil, fmt.Errorf("usage: %s [name] <id>: %w", verb, err)
		}
		id := strings.ToLower(rest[0])
		i := &state.Intent{Player: player}
		switch verb {
		case "equip":
			i.Type, i.ItemID = state.IntentEquip, id
		case "use":
			i.Type, i.ItemID = state.IntentUseItem, id
		case "buy":
			i.Type, i.ItemID = state.IntentBuy, id
		case "craft":
			i.Type, i.RecipeID = state.IntentCraft, id
		case "stat":
			i.Type, i.Stat = state.IntentAllocateStatPoint, actor.StatName(id)
		case "unequip":
			i.Type, i.Slot = state.IntentUnequip, actor.Slot(id)
		}
		return i, nil

	case "rename":
		player, rest, err := splitPlayer(args, snap, 2)
		if err != nil {
			return nil, fmt.Errorf("usage: rename [name] <companion#> <new name>: %w", err)
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("companion number must be 1 or more, got %q", rest[0])
		}
		return &state.Intent{
			Type:           state.IntentRenameCompanion,
			Player:         player,
			CompanionIndex: n - 1,
			Name:           strings.Join(rest[1:], " "),
		}, nil
	}

	return nil, fmt.Errorf("unknown command %q, try /help", verb)
}

// parseCombatActions reads "name=attack" and "name=skill" pairs. Players
// left out default to a basic attack in the session.
func parseCombatActions(args []string) ([]oracle.CombatAction, error) {
	var actions []oracle.CombatAction
	for _, a := range args {
		name, kind, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("combat actions look like name=attack, got %q", a)
		}
		switch strings.ToLower(kind) {
		case "attack":
			actions = append(actions, oracle.CombatAction{PlayerName: name, ActionType: oracle.CombatAttack})
		case "skill":
			actions = append(actions, oracle.CombatAction{PlayerName: name, ActionType: oracle.CombatSkill})
		default:
			return nil, fmt.Errorf("unknown combat action %q", kind)
		}
	}
	return actions, nil
}

// splitPlayer peels the player name off args. The name may be omitted when
// the party has a single member. want is the number of arguments that must
// follow the name.
func splitPlayer(args []string, snap *state.Snapshot, want int) (string, []string, error) {
	if len(args) > want && snap != nil && snap.Player(args[0]) != nil {
		return args[0], args[1:], nil
	}
	if snap != nil && len(snap.Players) == 1 && len(args) >= want {
		return snap.Players[0].Name, args, nil
	}
	if len(args) <= want {
		return "", nil, errors.New("missing player name")
	}
	return args[0], args[1:], nil
}
