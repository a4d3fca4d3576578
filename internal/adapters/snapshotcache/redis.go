package snapshotcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/riftlens/riftlens/internal/domain/model"
)

// Default redis cache configuration.
const (
	defaultKeyPrefix = "riftlens:playstyle:"
)

// RedisOption applies a configuration option to the RedisCache.
type RedisOption func(*RedisCache)

// WithKeyPrefix overrides the redis key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(c *RedisCache) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithTTL expires snapshots after the given duration. Zero keeps them
// forever; staleness is handled by version comparison, not expiry.
func WithTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// RedisCache implements Cache on redis. Snapshots are JSON values written
// with a single SET, which gives the required atomic-swap read semantics.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCache wraps an existing redis client.
func NewRedisCache(client *redis.Client, opts ...RedisOption) *RedisCache {
	c := &RedisCache{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached snapshot for a subject, however stale.
func (c *RedisCache) Get(ctx context.Context, subjectID string) (model.PlaystyleTagSnapshot, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+subjectID).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.PlaystyleTagSnapshot{}, fmt.Errorf("subject %s: %w", subjectID, ErrNoSnapshot)
	}
	if err != nil {
		return model.PlaystyleTagSnapshot{}, fmt.Errorf("get snapshot %s: %w", subjectID, err)
	}

	var snapshot model.PlaystyleTagSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return model.PlaystyleTagSnapshot{}, fmt.Errorf("decode snapshot %s: %w", subjectID, err)
	}
	return snapshot, nil
}

// Put replaces the subject's snapshot with a single SET.
func (c *RedisCache) Put(ctx context.Context, snapshot model.PlaystyleTagSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snapshot.SubjectID, err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+snapshot.SubjectID, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("put snapshot %s: %w", snapshot.SubjectID, err)
	}
	return nil
}
