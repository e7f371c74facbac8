package service

import (
	"context"
	"errors"
	"testing"

	dmn "github.com/beka-birhanu/vinom-maze3d/domain"
	"github.com/beka-birhanu/vinom-maze3d/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mazeFixture struct {
	svc    *Mazes
	repo   *fakeMazeRepo
	cache  *fakeCache
	queue  *fakeQueue
	logger *fakeLogger
}

func newMazeFixture(t *testing.T, maxCells int) *mazeFixture {
	f := &mazeFixture{
		repo:   newFakeMazeRepo(),
		cache:  newFakeCache(),
		queue:  newFakeQueue(),
		logger: &fakeLogger{},
	}
	svc, err := NewMazeService(&MazeConfig{
		Repo:       f.repo,
		Cache:      f.cache,
		History:    f.queue,
		Logger:     f.logger,
		MaxCells:   maxCells,
		SeedSource: func() int64 { return 99 },
		Clock:      tickingClock(),
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func params(w, h, d int, seed int64) dmn.MazeParams {
	return dmn.MazeParams{Width: w, Height: h, Depth: d, Seed: seed, UseSeed: true, VerticalUnlockDepth: 1}
}

func TestNewMazeServiceRequiresDependencies(t *testing.T) {
	_, err := NewMazeService(nil)
	assert.Error(t, err)

	_, err = NewMazeService(&MazeConfig{Logger: &fakeLogger{}})
	assert.Error(t, err)
}

func TestMazesGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded request matches the carver", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		snap, err := f.svc.Generate(ctx, params(4, 2, 4, 42))
		require.NoError(t, err)

		res, err := maze.Generate(params(4, 2, 4, 42).Options())
		require.NoError(t, err)
		assert.Equal(t, maze.NewSnapshot(res, 1), snap)
		assert.Equal(t, int64(1), f.queue.Count(ctx, recentQueueKey))
	})

	t.Run("unseeded request draws and logs a seed", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		p := params(3, 1, 3, 0)
		p.UseSeed = false

		snap, err := f.svc.Generate(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, int64(99), snap.Seed)
		assert.Contains(t, f.logger.infos, "drew fresh seed 99 for 3x1x3 maze")
	})

	t.Run("repeated request is served from cache", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		first, err := f.svc.Generate(ctx, params(5, 1, 5, 7))
		require.NoError(t, err)
		second, err := f.svc.Generate(ctx, params(5, 1, 5, 7))
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, 1, f.cache.builds)
	})

	t.Run("explicit default start shares the cache entry", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		_, err := f.svc.Generate(ctx, params(5, 2, 5, 7))
		require.NoError(t, err)

		p := params(5, 2, 5, 7)
		p.Start = &maze.Coord{X: 2, Y: 1, Z: 2}
		_, err = f.svc.Generate(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, 1, f.cache.builds)
	})

	t.Run("cell limit", func(t *testing.T) {
		f := newMazeFixture(t, 100)
		_, err := f.svc.Generate(ctx, params(5, 5, 5, 1))
		assert.ErrorIs(t, err, dmn.ErrMazeTooLarge)
		assert.Zero(t, f.cache.builds)
	})

	t.Run("cell count overflow", func(t *testing.T) {
		// 2^21 per axis wraps width*height*depth to a negative int
		f := newMazeFixture(t, 4_000_000)
		_, err := f.svc.Generate(ctx, params(1<<21, 1<<21, 1<<21, 1))
		assert.ErrorIs(t, err, dmn.ErrMazeTooLarge)

		_, err = f.svc.Generate(ctx, params(1<<32, 1<<32, 1, 1))
		assert.ErrorIs(t, err, dmn.ErrMazeTooLarge)
		assert.Zero(t, f.cache.builds)
	})

	t.Run("request errors pass through", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		p := params(3, 1, 3, 1)
		p.Start = &maze.Coord{X: 5}

		_, err := f.svc.Generate(ctx, p)
		assert.ErrorIs(t, err, maze.ErrStartOutOfBounds)
		assert.Empty(t, f.logger.errors)
		assert.Empty(t, f.logger.warns)
	})

	t.Run("cache outage falls back to carving", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		f.cache.err = errors.New("connection refused")

		snap, err := f.svc.Generate(ctx, params(3, 1, 3, 42))
		require.NoError(t, err)
		assert.Len(t, snap.Visited, 9)
		assert.Len(t, f.logger.warns, 1)
		assert.Empty(t, f.logger.errors)
	})

	t.Run("store failure keeps the built maze", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		f.cache.storeErr = errors.New("OOM command not allowed")

		snap, err := f.svc.Generate(ctx, params(3, 1, 3, 42))
		require.NoError(t, err)
		assert.Len(t, snap.Visited, 9)
		assert.Equal(t, 1, f.cache.builds)
		assert.Len(t, f.logger.warns, 1)
	})

	t.Run("history failure is not fatal", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		f.queue.err = errors.New("connection refused")

		_, err := f.svc.Generate(ctx, params(3, 1, 3, 42))
		require.NoError(t, err)
		assert.Len(t, f.logger.warns, 1)
	})
}

func TestMazesSave(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("name is required", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		_, err := f.svc.Save(ctx, owner, "", params(3, 1, 3, 1))
		assert.ErrorIs(t, err, dmn.ErrMazeNameRequired)
	})

	t.Run("stores the record", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		record, err := f.svc.Save(ctx, owner, "tower", params(3, 3, 3, 5))
		require.NoError(t, err)

		assert.Equal(t, owner, record.OwnerID)
		assert.Equal(t, "tower", record.Name)
		assert.Equal(t, int64(5), record.Maze.Seed)

		stored, err := f.svc.ByID(ctx, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, stored)
	})

	t.Run("lists owner mazes newest first", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		older, err := f.svc.Save(ctx, owner, "first", params(2, 1, 2, 1))
		require.NoError(t, err)
		newer, err := f.svc.Save(ctx, owner, "second", params(2, 1, 2, 2))
		require.NoError(t, err)
		_, err = f.svc.Save(ctx, uuid.New(), "other", params(2, 1, 2, 3))
		require.NoError(t, err)

		records, err := f.svc.ByOwner(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{newer.ID, older.ID}, []uuid.UUID{records[0].ID, records[1].ID})
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		f.repo.err = errors.New("write conflict")
		_, err := f.svc.Save(ctx, owner, "tower", params(2, 2, 2, 1))
		assert.EqualError(t, err, "write conflict")
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newMazeFixture(t, 0)
		_, err := f.svc.ByID(ctx, uuid.New())
		assert.ErrorIs(t, err, dmn.ErrNotFound)
	})
}

func TestMazesRecent(t *testing.T) {
	ctx := context.Background()
	f := newMazeFixture(t, 0)
	for seed := int64(1); seed <= 3; seed++ {
		_, err := f.svc.Generate(ctx, params(2, 1, 2, seed))
		require.NoError(t, err)
	}

	recent, total, err := f.svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{
		"maze:2x1x2:seed_3:unlock_1:start_1_0_1",
		"maze:2x1x2:seed_2:unlock_1:start_1_0_1",
	}, recent)

	all, _, err := f.svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bare, err := NewMazeService(&MazeConfig{Repo: newFakeMazeRepo(), Logger: &fakeLogger{}})
	require.NoError(t, err)
	none, total, err := bare.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, none)
	assert.Zero(t, total)
}
