package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/jwebster45206/dungeon-engine/pkg/chat"
	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
	"github.com/jwebster45206/dungeon-engine/pkg/prompts"
	"github.com/jwebster45206/dungeon-engine/pkg/textfilter"
)

const (
	EventSchemaName  = "dungeon_event"
	CombatSchemaName = "combat_turn"
)

// LLMOracle drives both oracle exchanges through an LLMService. It never
// returns an error: any failure is logged and replaced with the fallback
// response, so the game can always continue.
type LLMOracle struct {
	llm    LLMService
	filter *textfilter.Filter
	logger *slog.Logger
}

func NewLLMOracle(llm LLMService, logger *slog.Logger) *LLMOracle {
	return &LLMOracle{
		llm:    llm,
		filter: textfilter.New(false),
		logger: logger,
	}
}

// WithFilter replaces the filter applied to every player-facing string.
func (o *LLMOracle) WithFilter(f *textfilter.Filter) *LLMOracle {
	o.filter = f
	return o
}

func (o *LLMOracle) DungeonEvent(ctx context.Context, req *oracle.DungeonRequest) (*oracle.EventResponse, error) {
	messages, err := prompts.BuildDungeonMessages(req)
	if err != nil {
		o.logger.Error("Failed to build dungeon prompt", "error", err)
		return oracle.FallbackEvent(), nil
	}

	raw, ok := o.ask(ctx, messages, chat.Schema{Name: EventSchemaName, Definition: oracle.EventSchema()})
	if !ok {
		return oracle.FallbackEvent(), nil
	}

	resp, err := oracle.ParseEventResponse(raw)
	if err != nil {
		o.logger.Warn("Discarding malformed dungeon event", "error", err, "action", req.Action)
		return oracle.FallbackEvent(), nil
	}
	o.cleanEvent(resp)
	return resp, nil
}

func (o *LLMOracle) CombatTurn(ctx context.Context, req *oracle.CombatRequest) (*oracle.CombatResponse, error) {
	messages, err := prompts.BuildCombatMessages(req)
	if err != nil {
		o.logger.Error("Failed to build combat prompt", "error", err)
		return oracle.FallbackCombat(), nil
	}

	raw, ok := o.ask(ctx, messages, chat.Schema{Name: CombatSchemaName, Definition: oracle.CombatSchema()})
	if !ok {
		return oracle.FallbackCombat(), nil
	}

	resp, err := oracle.ParseCombatResponse(raw)
	if err != nil {
		o.logger.Warn("Discarding malformed combat turn", "error", err, "kind", req.Kind)
		return oracle.FallbackCombat(), nil
	}
	o.cleanCombat(resp)
	return resp, nil
}

func (o *LLMOracle) ask(ctx context.Context, messages []chat.ChatMessage, schema chat.Schema) (string, bool) {
	start := time.Now()
	resp, err := o.llm.ChatJSON(ctx, messages, schema)
	if err != nil {
		o.logger.Error("Oracle request failed", "schema", schema.Name, "error", err, "duration", time.Since(start))
		return "", false
	}
	o.logger.Debug("Oracle replied", "schema", schema.Name, "duration", time.Since(start), "bytes", len(resp.Message))
	return resp.Message, true
}

func (o *LLMOracle) cleanEvent(resp *oracle.EventResponse) {
	resp.Narrative = o.filter.Clean(resp.Narrative)
	resp.QuestUpdate = o.filter.Clean(resp.QuestUpdate)
	for i := range resp.Choices {
		resp.Choices[i].Text = o.filter.Clean(resp.Choices[i].Text)
	}
	if resp.EnemyDetails != nil {
		resp.EnemyDetails.Description = o.filter.Clean(resp.EnemyDetails.Description)
	}
}

func (o *LLMOracle) cleanCombat(resp *oracle.CombatResponse) {
	resp.Narrative = o.filter.Clean(resp.Narrative)
	if ev := resp.InteractiveEvent; ev != nil {
		ev.Title = o.filter.Clean(ev.Title)
		ev.Description = o.filter.Clean(ev.Description)
		for i := range ev.Options {
			ev.Options[i].Text = o.filter.Clean(ev.Options[i].Text)
			ev.Options[i].Description = o.filter.Clean(ev.Options[i].Description)
		}
	}
}
