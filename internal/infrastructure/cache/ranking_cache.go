// Package cache keeps computed rankings in Redis between deposits.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ahorros.backend/internal/domain/entities"
	"ahorros.backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "ranking:"

// RankingCache stores rankings per scope key. A nil client disables caching.
type RankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRankingCache creates a ranking cache
func NewRankingCache(client *redis.Client, ttl time.Duration) *RankingCache {
	return &RankingCache{client: client, ttl: ttl}
}

// Get returns the cached ranking for scopeKey. Errors are logged and reported as a miss.
func (c *RankingCache) Get(ctx context.Context, scopeKey string) ([]entities.RankingEntry, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, keyPrefix+scopeKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn(ctx, "Ranking cache read failed", zap.String("scope", scopeKey), zap.Error(err))
		}
		return nil, false
	}

	var entries []entities.RankingEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		logger.Warn(ctx, "Ranking cache entry is corrupt", zap.String("scope", scopeKey), zap.Error(err))
		return nil, false
	}
	return entries, true
}

// Set stores entries for scopeKey
func (c *RankingCache) Set(ctx context.Context, scopeKey string, entries []entities.RankingEntry) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		logger.Warn(ctx, "Ranking cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, keyPrefix+scopeKey, raw, c.ttl).Err(); err != nil {
		logger.Warn(ctx, "Ranking cache write failed", zap.String("scope", scopeKey), zap.Error(err))
	}
}

// Invalidate drops the given scopes
func (c *RankingCache) Invalidate(ctx context.Context, scopeKeys ...string) {
	if c == nil || c.client == nil || len(scopeKeys) == 0 {
		return
	}

	keys := make([]string, 0, len(scopeKeys))
	for _, k := range scopeKeys {
		keys = append(keys, keyPrefix+k)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn(ctx, "Ranking cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidateAll drops every cached ranking
func (c *RankingCache) InvalidateAll(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn(ctx, "Ranking cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn(ctx, "Ranking cache invalidation failed", zap.Error(err))
	}
}
