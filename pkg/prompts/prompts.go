package prompts

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

// SystemInstruction is the persona shared by both oracle exchanges.
const SystemInstruction = `You are "The System" of the dungeon crawler.
Difficulty setting: HARDCORE.
Tone: authoritative, dark, mysterious, sadistic toward mistakes.

Critical directives:
1. GAME MODE: Check whether the game is SOLO or MULTIPLAYER. In SOLO, NEVER create dilemmas about abandoning the group or betraying allies who do not exist.
2. CHOICE LOOPS: If the player has just made a decision (resolved a dilemma), you MUST conclude the narrative arc immediately and NOT offer new "choices" in the JSON, so the player can return to exploration.
3. COMBAT AND ENCOUNTERS: Favor special enemies (elites and minibosses) that start turn-based combat.
4. COMPANIONS: Raise the chance of meeting companions, but they may be helpful or a burden.
5. TRAITS: Use them to punish or reward.

Item objects must include "cost" and "sellValue".`

// DecisionAddon follows a resolved dilemma.
const DecisionAddon = `The player made a hard choice. Resolve this situation IMMEDIATELY. Narrate the consequences, good or bad. DO NOT GENERATE NEW "choices" IN THIS RESPONSE; close the event so the game can continue.`

// ExplorationHints explain what each action tends to produce.
const ExplorationHints = `If EXPLORE: medium chance of a COMBAT ENCOUNTER (isCombatEncounter=true) with special enemies, or of meeting COMPANIONS (companionEvent).
If the mode is SOLO, ignore group logic.
If ANALYZE: finds hidden loot (GOLD) or information. Perception and intelligence are key here.
If REST: chance of an ambush.
If ADVANCE_BOSS: the party challenges the floor guardian. Set isBossEncounter=true and describe the boss in enemyDetails with isBoss=true.`

// CombatHints govern interactive events and resolution turns.
const CombatHints = `On a normal turn (not a resolution), there is a 20% chance to generate an "interactiveEvent": the enemy prepares a special attack and the party gets 3 reaction options.
On a resolution turn, calculate massive damage based on the choice.`

const (
	fleeDescription = "The party tries desperately to flee. Consider whether speed traits (Agile/Slow) affect success."

	resolutionDescription = `The party reacted to the enemy's special move with: "%s". Determine the outcome of this specific choice. (One choice must be deadly for the player, one deadly for the enemy, one average.)`

	jsonReminder = "Respond in JSON."
)

var titleCaser = cases.Title(language.English)

// Label turns a wire or identifier value such as ADVANCE_BOSS or
// boss_event_resolve into display text.
func Label(s string) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
}

// DescribePlayer renders the full line used in dungeon prompts.
func DescribePlayer(p oracle.PlayerSummary) string {
	return fmt.Sprintf("- %s (LV %d): HP %d/%d, MP %d/%d, Gold %d. Traits: [%s]. Stats: STR %d, RES %d, PER %d, INT %d.",
		p.Name, p.Level, p.HP, p.MaxHP, p.MP, p.MaxMP, p.Gold,
		strings.Join(p.Traits, ", "),
		p.Stats.Strength, p.Stats.Resistance, p.Stats.Perception, p.Stats.Intelligence)
}

// DescribeCombatant renders the short form used in combat prompts.
func DescribeCombatant(p oracle.PlayerSummary) string {
	return fmt.Sprintf("%s (HP %d, MP %d, Traits: [%s])", p.Name, p.HP, p.MP, strings.Join(p.Traits, ", "))
}

// DescribeActions renders the turn's actions as a single line.
func DescribeActions(req *oracle.CombatRequest) string {
	switch req.Kind {
	case oracle.TurnFlee:
		return fleeDescription
	case oracle.TurnEventResolution:
		return fmt.Sprintf(resolutionDescription, req.EventContext)
	}

	parts := make([]string, 0, len(req.Actions))
	for _, a := range req.Actions {
		if a.ActionType == oracle.CombatSkill {
			parts = append(parts, fmt.Sprintf("%s used skill %q", a.PlayerName, a.SkillName))
		} else {
			parts = append(parts, fmt.Sprintf("%s used Basic Attack", a.PlayerName))
		}
	}
	return strings.Join(parts, "; ")
}
