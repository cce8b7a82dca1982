// Package cache is a read-through Redis cache for hot entity lookups.
// It is optional: with no REDIS_ADDR configured every call is a no-op and
// services fall through to MongoDB.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"caretrack/config"
	"caretrack/logger"
)

const (
	PatientKey = "patient:"
	DoctorKey  = "doctor:"
)

var (
	client *redis.Client
	ttl    time.Duration
)

func Init(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		return
	}
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ttl = cfg.CacheTTL
}

func Enabled() bool { return client != nil }

func Set(ctx context.Context, key string, value interface{}) {
	if client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		logger.L.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Get unmarshals the cached value into out and reports whether it was a hit.
// Cache failures are treated as misses.
func Get(ctx context.Context, key string, out interface{}) bool {
	if client == nil {
		return false
	}
	payload, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false
	}
	return true
}

func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		logger.L.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
