package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-maze3d/service/i"
	"github.com/redis/go-redis/v9"
)

// defaultMaxLen bounds the members kept per queue.
const defaultMaxLen = 1000

var _ i.SortedQueue = &RedisSortedQueue{}

// RedisSortedQueue manages a bounded sorted set in Redis with TTL support.
type RedisSortedQueue struct {
	client *redis.Client
	ttl    time.Duration
	maxLen int64
}

// NewRedisSortedQueue initializes a RedisSortedQueue with the provided Redis client and TTL.
// maxLen <= 0 keeps the default bound.
func NewRedisSortedQueue(client *redis.Client, ttlSeconds int, maxLen int64) *RedisSortedQueue {
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}
	return &RedisSortedQueue{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		maxLen: maxLen,
	}
}

// Enqueue adds a member with the given score, trims the lowest scores beyond the bound
// and sets the expiration if the key has none.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	_, err := rsq.client.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member}).Result()
	if err != nil {
		return err
	}

	if err := rsq.client.ZRemRangeByRank(ctx, queueKey, 0, -rsq.maxLen-1).Err(); err != nil {
		return err
	}

	// Set expiration only if it's not already set
	ttl, err := rsq.client.TTL(ctx, queueKey).Result()
	if err == nil && ttl == -1 {
		_ = rsq.client.Expire(ctx, queueKey, rsq.ttl).Err()
	}

	return nil
}

// Latest returns up to amount members with the highest scores, highest first.
func (rsq *RedisSortedQueue) Latest(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	if amount <= 0 {
		return []string{}, nil
	}
	return rsq.client.ZRevRange(ctx, queueKey, 0, amount-1).Result()
}

// Count returns the number of members in the sorted queue.
func (rsq *RedisSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return rsq.client.ZCard(ctx, queueKey).Val()
}
