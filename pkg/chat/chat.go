package chat

import (
	"fmt"
	"strings"
)

const (
	ChatRoleUser   = "user"      // Player-side request
	ChatRoleAgent  = "assistant" // Model reply
	ChatRoleSystem = "system"    // Persona and rules
)

// ChatMessage represents a single message sent to an LLM provider.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is a provider's raw reply.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
}

// Schema names a JSON Schema the reply must conform to.
// Definition is a plain JSON Schema object.
type Schema struct {
	Name       string
	Definition map[string]any
}

func (s Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}
	if len(s.Definition) == 0 {
		return fmt.Errorf("schema %q has no definition", s.Name)
	}
	return nil
}

// SplitSystem folds every system message into one prompt, separated by
// blank lines, and returns the remaining messages in order.
func SplitSystem(messages []ChatMessage) (string, []ChatMessage) {
	var systemParts []string
	var rest []ChatMessage

	for _, msg := range messages {
		if msg.Role == ChatRoleSystem {
			systemParts = append(systemParts, msg.Content)
		} else {
			rest = append(rest, msg)
		}
	}

	return strings.Join(systemParts, "\n\n"), rest
}
