package prompts

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/dungeon-engine/pkg/chat"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

// Builder constructs chat messages for one oracle exchange using a fluent
// interface. Exactly one of a dungeon or combat request must be set.
type Builder struct {
	dungeon  *oracle.DungeonRequest
	combat   *oracle.CombatRequest
	persona  string
	messages []chat.ChatMessage
}

// New creates a new prompt builder with the default persona.
func New() *Builder {
	return &Builder{
		persona:  SystemInstruction,
		messages: make([]chat.ChatMessage, 0),
	}
}

// WithDungeonRequest sets the exploration request to describe.
func (b *Builder) WithDungeonRequest(req *oracle.DungeonRequest) *Builder {
	b.dungeon = req
	return b
}

// WithCombatRequest sets the combat turn to describe.
func (b *Builder) WithCombatRequest(req *oracle.CombatRequest) *Builder {
	b.combat = req
	return b
}

// WithPersona replaces the system persona.
func (b *Builder) WithPersona(persona string) *Builder {
	b.persona = persona
	return b
}

// Build constructs and returns the final message array for LLM consumption.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	if (b.dungeon == nil) == (b.combat == nil) {
		return nil, fmt.Errorf("exactly one of dungeon or combat request is required")
	}

	b.messages = make([]chat.ChatMessage, 0, 2)
	if b.persona != "" {
		b.messages = append(b.messages, chat.ChatMessage{
			Role:    chat.ChatRoleSystem,
			Content: b.persona,
		})
	}

	var prompt string
	if b.dungeon != nil {
		prompt = dungeonPrompt(b.dungeon)
	} else {
		prompt = combatPrompt(b.combat)
	}
	b.messages = append(b.messages, chat.ChatMessage{
		Role:    chat.ChatRoleUser,
		Content: prompt,
	})

	return b.messages, nil
}

func dungeonPrompt(req *oracle.DungeonRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Game mode: %s (%d players).\n", req.Mode, len(req.Players))
	fmt.Fprintf(&sb, "Context: floor %d of the castle.\n", req.Floor)
	sb.WriteString("Players and their traits:\n")
	for _, p := range req.Players {
		sb.WriteString(DescribePlayer(p) + "\n")
	}
	sb.WriteString("\n")

	if req.ChoiceContext != "" {
		fmt.Fprintf(&sb, "DECISION MADE BY THE PLAYER: %q.\n", req.ChoiceContext)
		sb.WriteString(DecisionAddon + "\n")
	} else {
		fmt.Fprintf(&sb, "Party action: %s.\n", req.Action)
	}

	sb.WriteString("\n" + ExplorationHints + "\n\n" + jsonReminder)
	return sb.String()
}

func combatPrompt(req *oracle.CombatRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Combat against: %s (current HP: %d).\n", req.EnemyName, req.EnemyHP)
	status := make([]string, 0, len(req.Players))
	for _, p := range req.Players {
		status = append(status, DescribeCombatant(p))
	}
	fmt.Fprintf(&sb, "Player status: %s.\n\n", strings.Join(status, ", "))
	sb.WriteString("Turn actions:\n" + DescribeActions(req) + "\n\n")
	sb.WriteString(CombatHints + "\n\n" + jsonReminder)
	return sb.String()
}

// BuildDungeonMessages is a convenience function for the exploration exchange.
func BuildDungeonMessages(req *oracle.DungeonRequest) ([]chat.ChatMessage, error) {
	return New().WithDungeonRequest(req).Build()
}

// BuildCombatMessages is a convenience function for the combat exchange.
func BuildCombatMessages(req *oracle.CombatRequest) ([]chat.ChatMessage, error) {
	return New().WithCombatRequest(req).Build()
}
