// Package cache shares fetched tag sets between picker processes through Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/gravitrone/tagpicker/internal/taxonomy"
)

// DefaultTTL bounds how stale a cached tag set may get.
const DefaultTTL = 5 * time.Minute

type cachedTag struct {
	ID          string   `json:"id"`
	Codename    string   `json:"codename"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Parents     []string `json:"parents"`
}

// RedisCache stores tag sets as JSON strings with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to Redis at addr.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisCache wraps client. A non-positive ttl uses DefaultTTL.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Get returns the tag set under key. A missing key is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]taxonomy.Tag, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var stored []cachedTag
	if err := json.Unmarshal([]byte(val), &stored); err != nil {
		return nil, false, fmt.Errorf("decode cached tags %s: %w", key, err)
	}
	tags := make([]taxonomy.Tag, len(stored))
	for i, s := range stored {
		parents := s.Parents
		if parents == nil {
			parents = []string{}
		}
		tags[i] = taxonomy.Tag{
			ID:              s.ID,
			Codename:        s.Codename,
			Name:            s.Name,
			DisplayName:     s.DisplayName,
			ParentCodenames: parents,
		}
	}
	return tags, true, nil
}

// Set stores tags under key with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, key string, tags []taxonomy.Tag) error {
	stored := make([]cachedTag, len(tags))
	for i, tag := range tags {
		stored[i] = cachedTag{
			ID:          tag.ID,
			Codename:    tag.Codename,
			Name:        tag.Name,
			DisplayName: tag.DisplayName,
			Parents:     tag.ParentCodenames,
		}
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode cached tags: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
