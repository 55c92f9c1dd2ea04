package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/dungeon-engine/internal/config"
	"github.com/jwebster45206/dungeon-engine/internal/handlers"
	"github.com/jwebster45206/dungeon-engine/internal/logger"
	"github.com/jwebster45206/dungeon-engine/internal/middleware"
	"github.com/jwebster45206/dungeon-engine/internal/services"
	"github.com/jwebster45206/dungeon-engine/internal/services/events"
	"github.com/jwebster45206/dungeon-engine/internal/storage"
	"github.com/jwebster45206/dungeon-engine/pkg/catalog"
	"github.com/jwebster45206/dungeon-engine/pkg/state"
	"github.com/jwebster45206/dungeon-engine/pkg/textfilter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Dungeon Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("Failed to load catalog", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}

	// Initialize the model on startup
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	llmService, err := services.NewLLMService(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to create LLM service", "error", err, "provider", cfg.LLMProvider)
		os.Exit(1)
	}
	if err := llmService.InitModel(ctx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}
	if g, ok := llmService.(*services.GeminiService); ok {
		defer func() { _ = g.Close() }()
	}

	var notifier state.Notifier = state.NopNotifier{}
	var eventsPinger handlers.Pinger
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("Invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		redisClient = redis.NewClient(opts)
		broadcaster := events.NewBroadcaster(redisClient, log)
		if err := broadcaster.Ping(ctx); err != nil {
			// Cues are best effort; the game runs without them.
			log.Warn("Redis unreachable, events will be dropped until it returns", "error", err)
		} else {
			log.Info("Event broadcaster connected")
		}
		notifier = broadcaster
		eventsPinger = broadcaster
	} else {
		log.Info("REDIS_URL not set, event broadcasting disabled")
	}

	sessions := storage.NewSessions(log)
	oracle := services.NewLLMOracle(llmService, log).
		WithFilter(textfilter.New(textfilter.ShouldFilter(cfg.ContentRating)))
	newSession := services.NewSessionFactory(oracle, cat, notifier, cfg, log)

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(sessions, eventsPinger, log))
	mux.Handle("/v1/catalog", handlers.NewCatalogHandler(cat, log))

	sessionHandler := handlers.NewSessionHandler(sessions, newSession, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.CORS(middleware.Logger(log, mux)),
		ReadTimeout: 15 * time.Second,
		// Intents block on the oracle, so writes get the oracle timeout plus slack.
		WriteTimeout: cfg.OracleTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis connection", "error", err)
		}
	}

	log.Info("Server exited")
}
