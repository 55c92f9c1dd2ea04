package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LLM providers the oracle can run on.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderVenice    = "venice"
	ProviderOllama    = "ollama"
	ProviderMock      = "mock"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelRaw string `env:"LOG_LEVEL" envDefault:"info"`
	LogLevel    slog.Level

	LLMProvider     string `env:"LLM_PROVIDER" envDefault:"gemini"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	VeniceAPIKey    string `env:"VENICE_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	OllamaURL       string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	ModelName       string `env:"MODEL_NAME"`

	// RedisURL enables cue broadcasting when set.
	RedisURL string `env:"REDIS_URL"`

	OracleTimeout time.Duration `env:"ORACLE_TIMEOUT" envDefault:"90s"`
	Seed          uint64        `env:"GAME_SEED"`
	CatalogPath   string        `env:"CATALOG_PATH"`

	// ContentRating is G, PG, PG13 or R. Narration at PG13 and below is softened.
	ContentRating string `env:"CONTENT_RATING" envDefault:"PG13"`
}

// Load reads a .env file when one exists, then the environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.LogLevel = parseLogLevel(cfg.LogLevelRaw)
	cfg.ContentRating = strings.ToUpper(strings.TrimSpace(cfg.ContentRating))
	return &cfg, nil
}

// Validate checks that the selected provider has what it needs.
func (c *Config) Validate() error {
	var errs []error
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			errs = append(errs, errors.New("GEMINI_API_KEY is required for the gemini provider"))
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required for the anthropic provider"))
		}
	case ProviderVenice:
		if c.VeniceAPIKey == "" {
			errs = append(errs, errors.New("VENICE_API_KEY is required for the venice provider"))
		}
	case ProviderOllama:
		if c.ModelName == "" {
			errs = append(errs, errors.New("MODEL_NAME is required for the ollama provider"))
		}
	case ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider))
	}
	switch c.ContentRating {
	case "", "G", "PG", "PG13", "PG-13", "R":
	default:
		errs = append(errs, fmt.Errorf("unknown CONTENT_RATING %q", c.ContentRating))
	}
	if c.OracleTimeout <= 0 {
		errs = append(errs, fmt.Errorf("ORACLE_TIMEOUT must be positive, got %s", c.OracleTimeout))
	}
	return errors.Join(errs...)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
