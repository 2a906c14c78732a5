// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	pageKeyPrefix = "surafit:page:"

	// DefaultPageTTL bounds staleness if a purge is ever missed.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache stores rendered public pages in Valkey. A nil *PageCache is a
// valid cache that never hits, so handlers need no nil checks.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a page cache. A zero ttl means DefaultPageTTL.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Get returns the cached HTML for key.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get failed", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores html under key. Failures are logged and ignored.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set failed", "key", key, "error", err)
	}
}

// InvalidateAll drops every cached page. Admin mutations call it since
// most tables feed more than one public page.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	if pc == nil {
		return
	}
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan failed", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache delete failed", "error", err)
			}
			deleted += len(keys)
		}
		if cursor = next; cursor == 0 {
			break
		}
	}
	slog.Debug("page cache purged", "deleted", deleted)
}

// PageKey maps a request path to a cache key. Trailing slashes and case
// differences share an entry; "/" becomes "home".
func PageKey(path string) string {
	p := strings.Trim(strings.ToLower(path), "/")
	if p == "" {
		return "home"
	}
	return p
}
