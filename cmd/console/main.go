package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwebster45206/dungeon-engine/internal/config"
	"github.com/jwebster45206/dungeon-engine/internal/logger"
	"github.com/jwebster45206/dungeon-engine/internal/services"
	"github.com/jwebster45206/dungeon-engine/pkg/catalog"
	"github.com/jwebster45206/dungeon-engine/pkg/state"
	"github.com/jwebster45206/dungeon-engine/pkg/textfilter"
)

// logFile receives the engine's logs; the terminal belongs to the UI.
const logFile = "dungeon-console.log"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\nFalling back to the offline mock oracle.\n", err)
		cfg.LLMProvider = config.ProviderMock
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", logFile, err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()
	log := logger.New(f, cfg.Environment, cfg.LogLevel)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	llm, err := services.NewLLMService(ctx, cfg, log)
	if err == nil {
		err = llm.InitModel(ctx, cfg.ModelName)
	}
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start the %s provider: %v\n", cfg.LLMProvider, err)
		os.Exit(1)
	}
	if g, ok := llm.(*services.GeminiService); ok {
		defer func() { _ = g.Close() }()
	}

	o := services.NewLLMOracle(llm, log).WithFilter(textfilter.New(textfilter.ShouldFilter(cfg.ContentRating)))
	newSession := services.NewSessionFactory(o, cat, state.NopNotifier{}, cfg, log)

	p := tea.NewProgram(NewConsoleUI(newSession(), cat, cfg.LLMProvider),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
