package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/reverie/pkg/state"
)

// DefaultSnapshotTTL is how long a cached session survives without a
// fresh save.
const DefaultSnapshotTTL = time.Hour

// SnapshotCache keeps the most recent game state per campaign in Redis.
// It is a fast path for resuming a session; SQLite remains the durable
// record and a cache miss just means a full load.
type SnapshotCache struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewSnapshotCache creates a snapshot cache from a redis URL.
func NewSnapshotCache(redisURL string, ttl time.Duration, logger *slog.Logger) (*SnapshotCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &SnapshotCache{
		client: redis.NewClient(opts),
		logger: logger,
		ttl:    ttl,
	}, nil
}

func (s *SnapshotCache) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *SnapshotCache) Close() error {
	if err := s.client.Close(); err != nil {
		s.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

func snapshotKey(campaignID string) string {
	return "session:" + campaignID
}

// Put caches the current game state for its campaign.
func (s *SnapshotCache) Put(ctx context.Context, gs *state.GameState) error {
	data, err := json.Marshal(gs)
	if err != nil {
		s.logger.Error("Failed to marshal game state", "campaign_id", gs.Campaign.ID, "error", err)
		return fmt.Errorf("failed to marshal game state: %w", err)
	}

	key := snapshotKey(gs.Campaign.ID)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Error("Failed to cache game state", "campaign_id", gs.Campaign.ID, "error", err)
		return fmt.Errorf("failed to cache game state: %w", err)
	}
	return nil
}

// Get returns the cached game state for a campaign, or nil on a miss.
func (s *SnapshotCache) Get(ctx context.Context, campaignID string) (*state.GameState, error) {
	data, err := s.client.Get(ctx, snapshotKey(campaignID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to read cached game state", "campaign_id", campaignID, "error", err)
		return nil, fmt.Errorf("failed to read cached game state: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		s.logger.Error("Failed to unmarshal cached game state", "campaign_id", campaignID, "error", err)
		return nil, fmt.Errorf("failed to unmarshal cached game state: %w", err)
	}
	return &gs, nil
}

// Delete evicts a campaign's cached session.
func (s *SnapshotCache) Delete(ctx context.Context, campaignID string) error {
	if err := s.client.Del(ctx, snapshotKey(campaignID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cached game state: %w", err)
	}
	return nil
}
