package service

import (
	"context"
	"sort"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze3d/domain"
	"github.com/beka-birhanu/vinom-maze3d/identity"
	"github.com/beka-birhanu/vinom-maze3d/maze"
	"github.com/google/uuid"
)

type fakeLogger struct {
	sync.Mutex
	infos  []string
	warns  []string
	errors []string
}

func (l *fakeLogger) Info(msg string) {
	l.Lock()
	defer l.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *fakeLogger) Warn(msg string) {
	l.Lock()
	defer l.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *fakeLogger) Error(msg string) {
	l.Lock()
	defer l.Unlock()
	l.errors = append(l.errors, msg)
}

type fakeMazeRepo struct {
	records map[uuid.UUID]*dmn.MazeRecord
	err     error
}

func newFakeMazeRepo() *fakeMazeRepo {
	return &fakeMazeRepo{records: map[uuid.UUID]*dmn.MazeRecord{}}
}

func (r *fakeMazeRepo) Save(_ context.Context, record *dmn.MazeRecord) error {
	if r.err != nil {
		return r.err
	}
	r.records[record.ID] = record
	return nil
}

func (r *fakeMazeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, dmn.ErrNotFound
	}
	return record, nil
}

func (r *fakeMazeRepo) ByOwner(_ context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error) {
	var result []*dmn.MazeRecord
	for _, record := range r.records {
		if record.OwnerID == ownerID {
			result = append(result, record)
		}
	}
	sort.Slice(result, func(a, b int) bool { return result[a].CreatedAt.After(result[b].CreatedAt) })
	return result, nil
}

type fakeCache struct {
	entries map[string]*maze.Snapshot
	builds   int
	err      error
	storeErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*maze.Snapshot{}}
}

func (c *fakeCache) GetOrCreate(_ context.Context, key string, build func() (*maze.Snapshot, error)) (*maze.Snapshot, bool, error) {
	if c.err != nil {
		return nil, false, c.err
	}
	if snap, ok := c.entries[key]; ok {
		return snap, true, nil
	}
	c.builds++
	snap, err := build()
	if err != nil {
		return nil, false, err
	}
	if c.storeErr != nil {
		return snap, false, c.storeErr
	}
	c.entries[key] = snap
	return snap, false, nil
}

type fakeQueue struct {
	scores map[string]float64
	err    error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{scores: map[string]float64{}}
}

func (q *fakeQueue) Enqueue(_ context.Context, _ string, score float64, member string) error {
	if q.err != nil {
		return q.err
	}
	q.scores[member] = score
	return nil
}

func (q *fakeQueue) Latest(_ context.Context, _ string, amount int64) ([]string, error) {
	var members []string
	for m := range q.scores {
		members = append(members, m)
	}
	sort.Slice(members, func(a, b int) bool { return q.scores[members[a]] > q.scores[members[b]] })
	if int64(len(members)) > amount {
		members = members[:amount]
	}
	return members, nil
}

func (q *fakeQueue) Count(context.Context, string) int64 {
	return int64(len(q.scores))
}

type fakeDesignerRepo struct {
	designers map[string]*identity.Designer
}

func (r *fakeDesignerRepo) Save(d *identity.Designer) error {
	r.designers[d.Username] = d
	return nil
}

func (r *fakeDesignerRepo) ByID(id uuid.UUID) (*identity.Designer, error) {
	for _, d := range r.designers {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, dmn.ErrNotFound
}

func (r *fakeDesignerRepo) ByUsername(username string) (*identity.Designer, error) {
	d, ok := r.designers[username]
	if !ok {
		return nil, dmn.ErrNotFound
	}
	return d, nil
}

type fakeTokenizer struct {
	claims map[string]interface{}
}

func (t *fakeTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	t.claims = claims
	return "token", nil
}

func (t *fakeTokenizer) Decode(string) (map[string]interface{}, error) {
	return t.claims, nil
}

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}
