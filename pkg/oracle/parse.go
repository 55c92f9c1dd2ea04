package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	FallbackEventNarrative  = "[SYSTEM ERROR] Neural link failure."
	FallbackCombatNarrative = "The System recalculates the probabilities..."
)

// FallbackEvent is returned in place of a failed dungeon exchange. It
// changes nothing and triggers nothing.
func FallbackEvent() *EventResponse {
	return &EventResponse{
		Narrative: FallbackEventNarrative,
		Outcomes:  []PlayerOutcome{},
	}
}

// FallbackCombat is returned in place of a failed combat exchange: no damage
// either way and no escape.
func FallbackCombat() *CombatResponse {
	return &CombatResponse{
		Narrative:        FallbackCombatNarrative,
		BossDmgToPlayers: []PlayerDamage{},
	}
}

// StripFences removes a surrounding markdown code fence, which some models
// add even when asked for bare JSON.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseEventResponse decodes a dungeon event from raw model output.
func ParseEventResponse(raw string) (*EventResponse, error) {
	var resp EventResponse
	if err := json.Unmarshal([]byte(StripFences(raw)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Narrative == "" {
		return nil, fmt.Errorf("response has no narrative")
	}
	return &resp, nil
}

// ParseCombatResponse decodes a combat turn from raw model output.
func ParseCombatResponse(raw string) (*CombatResponse, error) {
	var resp CombatResponse
	if err := json.Unmarshal([]byte(StripFences(raw)), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Narrative == "" {
		return nil, fmt.Errorf("response has no narrative")
	}
	return &resp, nil
}
