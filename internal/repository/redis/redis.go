package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fraudGuard/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// SuspicionCache keeps generative-API verdicts so an identical prompt is not
// paid for twice within the TTL.
type SuspicionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSuspicionCache(client *redis.Client, ttl time.Duration) *SuspicionCache {
	return &SuspicionCache{
		client: client,
		ttl:    ttl,
	}
}

func suspicionKey(digest string) string {
	// key format: "suspicion:verdict:{digest}"
	return fmt.Sprintf("suspicion:verdict:%s", digest)
}

// Get returns (nil, nil) when the digest is not cached.
func (c *SuspicionCache) Get(ctx context.Context, digest string) (*domain.SuspicionReport, error) {
	val, err := c.client.Get(ctx, suspicionKey(digest)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get verdict from Redis: %w", err)
	}

	var report domain.SuspicionReport
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verdict: %w", err)
	}

	return &report, nil
}

func (c *SuspicionCache) Set(ctx context.Context, digest string, report *domain.SuspicionReport) error {
	stored := *report
	stored.Cached = false

	jsonData, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	if err := c.client.Set(ctx, suspicionKey(digest), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store verdict in Redis: %w", err)
	}

	return nil
}
