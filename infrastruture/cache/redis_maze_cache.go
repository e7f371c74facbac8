// Package cache memoizes generated mazes in Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze3d/maze"
	"github.com/beka-birhanu/vinom-maze3d/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	lockSuffix = ":carve_lock"
	lockExpiry = 30 * time.Second
)

var _ i.MazeCache = &RedisMazeCache{}

// RedisMazeCache stores bson-encoded snapshots with a TTL. Concurrent misses on the same
// key are serialized with a distributed lock so each maze is carved once.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis client and TTL.
func NewRedisMazeCache(client *redis.Client, ttlSeconds int) *RedisMazeCache {
	pool := goredis.NewPool(client)
	return &RedisMazeCache{
		client: client,
		locker: redsync.New(pool),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// GetOrCreate implements i.MazeCache.
func (c *RedisMazeCache) GetOrCreate(ctx context.Context, key string, build func() (*maze.Snapshot, error)) (*maze.Snapshot, bool, error) {
	if snap, err := c.get(ctx, key); err != nil || snap != nil {
		return snap, snap != nil, err
	}

	mutex := c.locker.NewMutex(key+lockSuffix, redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, false, fmt.Errorf("locking %s: %w", key, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(context.Background())
	}()

	// Another instance may have carved it while we waited for the lock
	if snap, err := c.get(ctx, key); err != nil || snap != nil {
		return snap, snap != nil, err
	}

	snap, err := build()
	if err != nil {
		return nil, false, err
	}

	payload, err := bson.Marshal(snap)
	if err != nil {
		return snap, false, fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return snap, false, fmt.Errorf("storing %s: %w", key, err)
	}

	return snap, false, nil
}

// get returns nil without error on a miss.
func (c *RedisMazeCache) get(ctx context.Context, key string) (*maze.Snapshot, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	var snap maze.Snapshot
	if err := bson.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return &snap, nil
}
