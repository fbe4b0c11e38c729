// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// sidebar.go provides a Redis-backed cache for the sidebar aggregation.
// Every page render needs the category summaries and the most-viewed
// posts; caching the marshaled result for a short TTL keeps the two
// aggregate queries off the hot path. Staleness is bounded by the TTL —
// view-count reordering of the popular list lags at most that long.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"habari/internal/models"
)

const (
	// sidebarKey is the Redis key holding the marshaled sidebar.
	sidebarKey = "sidebar"

	// DefaultSidebarTTL is how long a computed sidebar stays cached.
	DefaultSidebarTTL = 5 * time.Minute
)

// SidebarCache stores the JSON-marshaled sidebar aggregation in Redis.
type SidebarCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSidebarCache creates a sidebar cache backed by the given Redis client.
func NewSidebarCache(client *redis.Client, ttl time.Duration) *SidebarCache {
	if ttl == 0 {
		ttl = DefaultSidebarTTL
	}
	return &SidebarCache{client: client, ttl: ttl}
}

// Get retrieves the cached sidebar. Returns nil, false on miss or any
// Redis/decoding error — callers fall back to the database.
func (c *SidebarCache) Get(ctx context.Context) (*models.Sidebar, bool) {
	payload, err := c.client.Get(ctx, sidebarKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("sidebar cache get error", "error", err)
		return nil, false
	}

	var sb models.Sidebar
	if err := json.Unmarshal(payload, &sb); err != nil {
		slog.Warn("sidebar cache decode error", "error", err)
		return nil, false
	}
	return &sb, true
}

// Set stores the computed sidebar with the configured TTL.
func (c *SidebarCache) Set(ctx context.Context, sb *models.Sidebar) {
	payload, err := json.Marshal(sb)
	if err != nil {
		slog.Warn("sidebar cache encode error", "error", err)
		return
	}
	if err := c.client.Set(ctx, sidebarKey, payload, c.ttl).Err(); err != nil {
		slog.Warn("sidebar cache set error", "error", err)
	}
}

// Invalidate drops the cached sidebar so the next page computes it fresh.
func (c *SidebarCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, sidebarKey).Err(); err != nil {
		slog.Warn("sidebar cache invalidate error", "error", err)
	}
}
