// Package cache keeps a Redis lookup of table number to table id so the
// floor handlers skip a round-trip to PostgreSQL on every request.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "tableside:table"

// TableCache stores table ids keyed by location and case-folded table number.
type TableCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTableCache(rdb *redis.Client, ttl time.Duration) *TableCache {
	return &TableCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and pings the server. Callers treat
// an error as "run without cache".
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Key is the cache key for a table. Table numbers match case-insensitively,
// so "t5" and "T5" share one entry.
func Key(locationID uuid.UUID, tableNumber string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, locationID, strings.ToLower(strings.TrimSpace(tableNumber)))
}

// GetTableID returns the cached id and whether it was present.
func (c *TableCache) GetTableID(ctx context.Context, locationID uuid.UUID, tableNumber string) (uuid.UUID, bool, error) {
	val, err := c.rdb.Get(ctx, Key(locationID, tableNumber)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		// corrupt entry; drop it and report a miss
		c.rdb.Del(ctx, Key(locationID, tableNumber))
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

func (c *TableCache) SetTableID(ctx context.Context, locationID uuid.UUID, tableNumber string, tableID uuid.UUID) error {
	return c.rdb.Set(ctx, Key(locationID, tableNumber), tableID.String(), c.ttl).Err()
}
