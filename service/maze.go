package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze3d/domain"
	"github.com/beka-birhanu/vinom-maze3d/maze"
	"github.com/beka-birhanu/vinom-maze3d/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxCells = 1_000_000
	maxRecent       = 50

	recentQueueKey = "maze:recent"
	cacheKeyFmt    = "maze:%dx%dx%d:seed_%d:unlock_%d:start_%d_%d_%d"
)

var _ i.MazeService = &Mazes{}

// MazeConfig holds the dependencies of a Mazes service.
type MazeConfig struct {
	Repo    i.MazeRepo
	Cache   i.MazeCache   // optional
	History i.SortedQueue // optional
	Logger  i.Logger

	// MaxCells bounds width*height*depth of a single request (<= 0 = default).
	MaxCells int

	// SeedSource draws seeds for requests without one (nil = maze.NewSeed).
	SeedSource func() int64
	Clock      func() time.Time
}

// Mazes generates mazes, memoizes them by seed and stores the ones designers save.
type Mazes struct {
	repo       i.MazeRepo
	cache      i.MazeCache
	history    i.SortedQueue
	logger     i.Logger
	maxCells   int
	seedSource func() int64
	clock      func() time.Time
}

// NewMazeService creates a Mazes service from c.
func NewMazeService(c *MazeConfig) (*Mazes, error) {
	if c == nil || c.Repo == nil || c.Logger == nil {
		return nil, errors.New("maze service requires a repo and a logger")
	}

	s := &Mazes{
		repo:       c.Repo,
		cache:      c.Cache,
		history:    c.History,
		logger:     c.Logger,
		maxCells:   c.MaxCells,
		seedSource: c.SeedSource,
		clock:      c.Clock,
	}
	if s.maxCells <= 0 {
		s.maxCells = defaultMaxCells
	}
	if s.seedSource == nil {
		s.seedSource = maze.NewSeed
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s, nil
}

// Generate carves the maze described by params. Requests without a seed get a fresh one,
// which is logged and returned in the snapshot so the maze can be reproduced.
func (s *Mazes) Generate(ctx context.Context, params dmn.MazeParams) (*maze.Snapshot, error) {
	if cells, ok := params.Cells(); !ok || cells > s.maxCells {
		return nil, fmt.Errorf("%w: %dx%dx%d, limit %d cells", dmn.ErrMazeTooLarge, params.Width, params.Height, params.Depth, s.maxCells)
	}

	if !params.UseSeed {
		params.Seed = s.seedSource()
		params.UseSeed = true
		s.logger.Info(fmt.Sprintf("drew fresh seed %d for %dx%dx%d maze", params.Seed, params.Width, params.Height, params.Depth))
	}

	build := func() (*maze.Snapshot, error) {
		res, err := maze.Generate(params.Options())
		if err != nil {
			return nil, err
		}
		s.logger.Info(fmt.Sprintf("carved %dx%dx%d maze with seed %d: %d cells visited, %d dead ends",
			params.Width, params.Height, params.Depth, res.Seed(), len(res.VisitedCellsInOrder()), len(res.DeadEndCells())))
		return maze.NewSnapshot(res, params.VerticalUnlockDepth), nil
	}

	if s.cache == nil {
		snap, err := build()
		if err != nil {
			return nil, err
		}
		s.remember(ctx, cacheKey(params))
		return snap, nil
	}

	key := cacheKey(params)
	snap, hit, err := s.cache.GetOrCreate(ctx, key, build)
	switch {
	case err == nil:
	case isRequestError(err):
		return nil, err
	case snap != nil:
		s.logger.Warn(fmt.Sprintf("caching %s: %s", key, err))
	default:
		s.logger.Warn(fmt.Sprintf("maze cache unavailable, carving directly: %s", err))
		if snap, err = build(); err != nil {
			return nil, err
		}
	}
	if hit {
		s.logger.Info(fmt.Sprintf("served %s from cache", key))
	}

	s.remember(ctx, key)
	return snap, nil
}

// Save generates the maze and stores it under the owner's account.
func (s *Mazes) Save(ctx context.Context, ownerID uuid.UUID, name string, params dmn.MazeParams) (*dmn.MazeRecord, error) {
	if name == "" {
		return nil, dmn.ErrMazeNameRequired
	}

	snap, err := s.Generate(ctx, params)
	if err != nil {
		return nil, err
	}

	record := &dmn.MazeRecord{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Maze:      *snap,
		CreatedAt: s.clock().UTC(),
	}
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Error(fmt.Sprintf("saving maze %q for %s: %s", name, ownerID, err))
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("saved maze %s for designer %s", record.ID, ownerID))
	return record, nil
}

// ByID returns a saved maze.
func (s *Mazes) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	return s.repo.ByID(ctx, id)
}

// ByOwner returns the mazes saved by a designer.
func (s *Mazes) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error) {
	return s.repo.ByOwner(ctx, ownerID)
}

// Recent returns the cache keys of the latest generations, newest first, and the number
// of generations the history currently holds.
func (s *Mazes) Recent(ctx context.Context, limit int64) ([]string, int64, error) {
	if s.history == nil {
		return []string{}, 0, nil
	}
	if limit <= 0 || limit > maxRecent {
		limit = maxRecent
	}

	keys, err := s.history.Latest(ctx, recentQueueKey, limit)
	if err != nil {
		return nil, 0, err
	}
	return keys, s.history.Count(ctx, recentQueueKey), nil
}

// remember records a generation in the history. Failures only cost the history entry.
func (s *Mazes) remember(ctx context.Context, key string) {
	if s.history == nil {
		return
	}
	score := float64(s.clock().UnixNano())
	if err := s.history.Enqueue(ctx, recentQueueKey, score, key); err != nil {
		s.logger.Warn(fmt.Sprintf("recording %s in history: %s", key, err))
	}
}

// cacheKey identifies a generation. Generation is deterministic, so params that map to
// the same key always carve the same maze.
func cacheKey(p dmn.MazeParams) string {
	start := maze.DefaultStart(p.Width, p.Height, p.Depth)
	if p.Start != nil {
		start = *p.Start
	}
	return fmt.Sprintf(cacheKeyFmt, p.Width, p.Height, p.Depth, p.Seed, p.VerticalUnlockDepth, start.X, start.Y, start.Z)
}

func isRequestError(err error) bool {
	return errors.Is(err, maze.ErrInvalidDimensions) ||
		errors.Is(err, maze.ErrStartOutOfBounds) ||
		errors.Is(err, maze.ErrInvalidUnlockDepth)
}
