package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze3d/maze"
)

// SortedQueue is a scored set of members with an expiry on the whole key.
type SortedQueue interface {
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error
	// Latest returns up to amount members with the highest scores, highest first.
	Latest(ctx context.Context, queueKey string, amount int64) ([]string, error)
	Count(ctx context.Context, queueKey string) int64
}

// MazeCache memoizes generated mazes by a deterministic key.
type MazeCache interface {
	// GetOrCreate returns the cached snapshot for key, or calls build and caches its
	// result. The boolean reports a cache hit. A snapshot returned together with an
	// error was built but could not be stored.
	GetOrCreate(ctx context.Context, key string, build func() (*maze.Snapshot, error)) (*maze.Snapshot, bool, error)
}
