package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/dungeon-engine/pkg/state"
)

// Event is the JSON payload published for every cue. Audio and telemetry
// consumers subscribe to a session's channel and react by Type.
type Event struct {
	ID        uuid.UUID      `json:"id"`
	Type      state.CueKind  `json:"type"`
	SessionID string         `json:"session_id"`
	Player    string         `json:"player,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Broadcaster publishes session cues to Redis Pub/Sub. It implements
// state.Notifier.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Channel names the Pub/Sub channel for a session.
func Channel(sessionID uuid.UUID) string {
	return fmt.Sprintf("game-events:%s", sessionID.String())
}

// Notify publishes cue on its session's channel.
func (b *Broadcaster) Notify(ctx context.Context, cue state.Cue) error {
	event := Event{
		ID:        uuid.New(),
		Type:      cue.Kind,
		SessionID: cue.SessionID.String(),
		Player:    cue.Player,
		Timestamp: time.Now().UTC(),
	}
	if cue.Detail != "" {
		event.Data = map[string]any{"detail": cue.Detail}
	}
	return b.publish(ctx, cue.SessionID, event)
}

// Subscribe opens a subscription to one session's events. The caller
// closes it.
func (b *Broadcaster) Subscribe(ctx context.Context, sessionID uuid.UUID) *redis.PubSub {
	return b.redisClient.Subscribe(ctx, Channel(sessionID))
}

// Ping checks the Redis connection.
func (b *Broadcaster) Ping(ctx context.Context) error {
	return b.redisClient.Ping(ctx).Err()
}

func (b *Broadcaster) publish(ctx context.Context, sessionID uuid.UUID, event Event) error {
	channel := Channel(sessionID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event_type", event.Type)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
		"player", event.Player,
	)

	return nil
}
