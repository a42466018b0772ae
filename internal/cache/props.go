// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// props.go caches encoded route props in Valkey. Keys embed the snapshot
// fingerprint, so a content change never serves stale props; entries of a
// replaced snapshot are dropped on reload or left to expire.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// propsKeyPrefix is the Valkey key prefix for cached props.
	propsKeyPrefix = "props:"

	// DefaultPropsTTL is how long resolved props stay cached.
	DefaultPropsTTL = 10 * time.Minute
)

// PropsCache manages route props caching in Valkey.
type PropsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPropsCache creates a new props cache backed by the given Valkey client.
func NewPropsCache(client *redis.Client, ttl time.Duration) *PropsCache {
	if ttl == 0 {
		ttl = DefaultPropsTTL
	}
	return &PropsCache{client: client, ttl: ttl}
}

// PropsKey returns the cache key of a route within a snapshot.
func PropsKey(fingerprint, locale, path string) string {
	return fingerprint + ":" + locale + ":" + path
}

// Get retrieves cached props. The second result is false on a miss.
func (pc *PropsCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, propsKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("props cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("props cache hit", "key", key)
	return val, true
}

// Set stores encoded props with the configured TTL.
func (pc *PropsCache) Set(ctx context.Context, key string, props []byte) {
	if err := pc.client.Set(ctx, propsKeyPrefix+key, props, pc.ttl).Err(); err != nil {
		slog.Warn("props cache set error", "key", key, "error", err)
	}
}

// InvalidateSnapshot removes every cached route of one snapshot by
// scanning for its key prefix.
func (pc *PropsCache) InvalidateSnapshot(ctx context.Context, fingerprint string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, propsKeyPrefix+fingerprint+":*", 100).Result()
		if err != nil {
			slog.Warn("props cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("props cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("props cache cleared for snapshot", "fingerprint", fingerprint, "deleted", deleted)
	}
}
