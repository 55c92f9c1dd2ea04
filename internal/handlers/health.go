package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/dungeon-engine/internal/storage"
)

type HealthResponse struct {
	Status     string         `json:"status"`
	Timestamp  time.Time      `json:"timestamp"`
	Service    string         `json:"service"`
	Components map[string]any `json:"components"`
}

// Pinger is anything with a connection worth checking.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	sessions *storage.Sessions
	events   Pinger
	logger   *slog.Logger
}

// NewHealthHandler builds the health check. events may be nil when cue
// publishing is disabled.
func NewHealthHandler(sessions *storage.Sessions, events Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		sessions: sessions,
		events:   events,
		logger:   logger,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := map[string]any{
		"sessions": h.sessions.Len(),
	}
	overallStatus := "healthy"

	switch {
	case h.events == nil:
		components["events"] = "disabled"
	case h.events.Ping(ctx) != nil:
		h.logger.Warn("Event broadcaster health check failed")
		components["events"] = "unhealthy"
		overallStatus = "degraded"
	default:
		components["events"] = "healthy"
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, h.logger, statusCode, HealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Service:    "dungeon-engine",
		Components: components,
	})
}
