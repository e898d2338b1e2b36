package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ViewCache is a generic JSON-backed Redis cache for read model projections.
// Bind it to a specific view type T; each instance holds a Redis client and an
// optional TTL (pass 0 for keys that should not expire).
type ViewCache[T any] struct {
	client *goredis.Client
	ttl    time.Duration
	prefix string
}

// NewViewCache creates a ViewCache backed by the provided Redis client. Every
// key is stored under prefix.
func NewViewCache[T any](client *goredis.Client, prefix string, ttl time.Duration) *ViewCache[T] {
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl}
}

// Get retrieves and unmarshals a value from Redis.
// Returns (nil, false) on any miss or deserialisation error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		return nil, false
	}
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set marshals value and stores it under key, replacing any cached entry.
// Failures are logged and returned so the caller can fall back to Delete.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) error {
	data, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache: marshal error")
		return err
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache: write error")
		return err
	}
	return nil
}

// SetIfAbsent stores value only when key is not cached (SET NX). Read paths
// warm the cache with it so they never overwrite a newer entry written by
// the command side.
func (c *ViewCache[T]) SetIfAbsent(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		logrus.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache: marshal error")
		return
	}
	if err := c.client.SetNX(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache: warm error")
	}
}

// Delete removes a key from Redis.
func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		logrus.WithError(err).WithField("key", c.prefix+key).Warn("ViewCache: delete error")
	}
}
