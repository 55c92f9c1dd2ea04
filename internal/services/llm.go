package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/dungeon-engine/internal/config"
	"github.com/jwebster45206/dungeon-engine/pkg/chat"
)

// LLMService defines the interface for interacting with the LLM API
type LLMService interface {
	// InitModel prepares the model on startup
	InitModel(ctx context.Context, modelName string) error

	// ChatJSON returns a reply that should conform to schema. Providers
	// without structured output put the schema in the system prompt.
	ChatJSON(ctx context.Context, messages []chat.ChatMessage, schema chat.Schema) (*chat.ChatResponse, error)
}

// Default models per provider, used when MODEL_NAME is unset.
const (
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultAnthropicModel = "claude-sonnet-4-5"
	DefaultVeniceModel    = "llama-3.3-70b"
)

// NewLLMService builds the provider named in cfg.
func NewLLMService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (LLMService, error) {
	model := cfg.ModelName
	pick := func(def string) string {
		if model != "" {
			return model
		}
		return def
	}

	switch cfg.LLMProvider {
	case config.ProviderGemini:
		g, err := NewGeminiService(ctx, cfg.GeminiAPIKey, pick(DefaultGeminiModel), logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.ProviderAnthropic:
		return NewAnthropicService(cfg.AnthropicAPIKey, pick(DefaultAnthropicModel), logger), nil
	case config.ProviderVenice:
		return NewVeniceService(cfg.VeniceAPIKey, pick(DefaultVeniceModel), logger), nil
	case config.ProviderOllama:
		return NewOllamaService(cfg.OllamaURL, model, logger), nil
	case config.ProviderMock:
		return NewMockLLMAPI(), nil
	}
	return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
}
