// Package oracle defines the request and response shapes exchanged with the
// narrative oracle: the external model that writes dungeon events and
// resolves combat turns.
package oracle

import (
	"github.com/jwebster45206/dungeon-engine/pkg/actor"
)

// Action is a party action in exploration. Values match the wire format.
type Action string

const (
	ActionExplore     Action = "EXPLORE"
	ActionRest        Action = "REST"
	ActionAnalyze     Action = "ANALYZE"
	ActionAdvanceBoss Action = "ADVANCE_BOSS"
)

// FallbackActions are the actions a tied vote may fall back to. The boss
// challenge is deliberately absent.
var FallbackActions = []Action{ActionExplore, ActionRest, ActionAnalyze}

// ParseAction accepts wire values and the lower-case forms used by the console.
func ParseAction(s string) (Action, bool) {
	switch s {
	case "EXPLORE", "explore":
		return ActionExplore, true
	case "REST", "rest":
		return ActionRest, true
	case "ANALYZE", "analyze":
		return ActionAnalyze, true
	case "ADVANCE_BOSS", "advance_boss", "boss":
		return ActionAdvanceBoss, true
	}
	return "", false
}

type GameMode string

const (
	ModeSolo        GameMode = "SOLO"
	ModeMultiplayer GameMode = "MULTIPLAYER"
)

// PlayerSummary is the slice of player state the oracle sees.
type PlayerSummary struct {
	Name       string      `json:"name"`
	Level      int         `json:"level"`
	HP         int         `json:"hp"`
	MaxHP      int         `json:"maxHp"`
	MP         int         `json:"mp"`
	MaxMP      int         `json:"maxMp"`
	Gold       int         `json:"gold"`
	Stats      actor.Stats `json:"stats"`
	Traits     []string    `json:"traits"`
	Skills     []string    `json:"skills,omitempty"`
	Companions []string    `json:"companions,omitempty"`
}

// Summarize captures what the oracle needs to know about a player.
func Summarize(p *actor.Player) PlayerSummary {
	s := PlayerSummary{
		Name:   p.Name,
		Level:  p.Level,
		HP:     p.HP,
		MaxHP:  p.MaxHP,
		MP:     p.MP,
		MaxMP:  p.MaxMP,
		Gold:   p.Gold,
		Stats:  p.Stats,
		Skills: append([]string(nil), p.Skills...),
	}
	for _, t := range p.Traits {
		s.Traits = append(s.Traits, t.Name)
	}
	for _, c := range p.Companions {
		s.Companions = append(s.Companions, c.Name)
	}
	return s
}

// DungeonRequest asks for the next exploration event.
type DungeonRequest struct {
	Players       []PlayerSummary `json:"players"`
	Floor         int             `json:"floor"`
	Action        Action          `json:"action"`
	Mode          GameMode        `json:"mode"`
	ChoiceContext string          `json:"choiceContext,omitempty"`
}

// PlayerOutcome is one player's share of an event result.
type PlayerOutcome struct {
	PlayerName string      `json:"playerName"`
	HPChange   int         `json:"hpChange"`
	MPChange   int         `json:"mpChange,omitempty"`
	XPChange   int         `json:"xpChange"`
	GoldChange int         `json:"goldChange,omitempty"`
	FoundItem  *actor.Item `json:"foundItem,omitempty"`
	NewSkill   string      `json:"newSkill,omitempty"`
}

type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskHigh    RiskLevel = "HIGH"
	RiskExtreme RiskLevel = "EXTREME"
)

// Choice is one option of a dilemma.
type Choice struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	RiskLevel RiskLevel `json:"riskLevel"`
}

type CompanionAction string

const (
	CompanionJoin   CompanionAction = "JOIN"
	CompanionBetray CompanionAction = "BETRAY"
	CompanionLeave  CompanionAction = "LEAVE"
)

type CompanionEvent struct {
	Name             string          `json:"name"`
	Role             string          `json:"role"`
	Action           CompanionAction `json:"action"`
	TargetPlayerName string          `json:"targetPlayerName,omitempty"`
}

type EnemyDetails struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HP          int    `json:"hp"`
	Weakness    string `json:"weakness"`
	IsBoss      bool   `json:"isBoss,omitempty"`
}

// EventResponse is the oracle's answer to a DungeonRequest. Use Triggers to
// decide what it means for the phase machine.
type EventResponse struct {
	Narrative         string          `json:"narrative"`
	Outcomes          []PlayerOutcome `json:"outcomes"`
	Choices           []Choice        `json:"choices,omitempty"`
	CompanionEvent    *CompanionEvent `json:"companionEvent,omitempty"`
	IsBossEncounter   bool            `json:"isBossEncounter"`
	IsCombatEncounter bool            `json:"isCombatEncounter,omitempty"`
	EnemyDetails      *EnemyDetails   `json:"enemyDetails,omitempty"`
	QuestUpdate       string          `json:"questUpdate,omitempty"`
}

// CombatActionType is ATTACK or SKILL.
type CombatActionType string

const (
	CombatAttack CombatActionType = "ATTACK"
	CombatSkill  CombatActionType = "SKILL"
)

type CombatAction struct {
	PlayerName string           `json:"playerName"`
	ActionType CombatActionType `json:"actionType"`
	SkillName  string           `json:"skillName,omitempty"`
}

// TurnKind distinguishes a normal turn from the flee and event sentinels.
type TurnKind string

const (
	TurnActions         TurnKind = "ACTIONS"
	TurnFlee            TurnKind = "FLEE"
	TurnEventResolution TurnKind = "EVENT_RESOLUTION"
)

// CombatRequest asks the oracle to resolve one combat turn.
type CombatRequest struct {
	Players      []PlayerSummary `json:"players"`
	EnemyName    string          `json:"enemyName"`
	EnemyHP      int             `json:"enemyHp"`
	Kind         TurnKind        `json:"kind"`
	Actions      []CombatAction  `json:"actions,omitempty"`
	EventContext string          `json:"eventContext,omitempty"`
}

type PlayerDamage struct {
	PlayerName string `json:"playerName"`
	Damage     int    `json:"damage"`
}

type EventOption struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

// InteractiveEvent is a special enemy move the party must react to.
type InteractiveEvent struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Options     []EventOption `json:"options"`
}

// CombatResponse is the oracle's resolution of a combat turn.
type CombatResponse struct {
	Narrative        string            `json:"narrative"`
	PlayersDmgToBoss int               `json:"playersDmgToBoss"`
	BossDmgToPlayers []PlayerDamage    `json:"bossDmgToPlayers"`
	EscapeSuccess    bool              `json:"escapeSuccess"`
	InteractiveEvent *InteractiveEvent `json:"interactiveEvent,omitempty"`
}

// MinEventOptions is the smallest option count that makes an interactive
// event actionable.
const MinEventOptions = 2

// PendingEvent returns the interactive event when it carries enough options
// to be presented, or nil.
func (r *CombatResponse) PendingEvent() *InteractiveEvent {
	if r.InteractiveEvent == nil || len(r.InteractiveEvent.Options) < MinEventOptions {
		return nil
	}
	return r.InteractiveEvent
}
