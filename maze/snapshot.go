package maze

import (
	"errors"
	"fmt"
)

var ErrCorruptSnapshot = errors.New("corrupt maze snapshot")

// Snapshot is the serializable form of a carved maze.
type Snapshot struct {
	Width               int     `json:"width" bson:"width"`
	Height              int     `json:"height" bson:"height"`
	Depth               int     `json:"depth" bson:"depth"`
	Seed                int64   `json:"seed" bson:"seed"`
	VerticalUnlockDepth int     `json:"vertical_unlock_depth" bson:"verticalUnlockDepth"`
	Start               Coord   `json:"start" bson:"start"`
	Visited             []Coord `json:"visited" bson:"visited"`
	DeadEnds            []Coord `json:"dead_ends" bson:"deadEnds"`
	Walls               []uint8 `json:"walls" bson:"walls"` // Walls holds one bit set per cell in lattice order
}

// NewSnapshot captures the state of a finished run.
func NewSnapshot(r *Result, verticalUnlockDepth int) *Snapshot {
	g := r.grid
	walls := make([]uint8, len(g.cells))
	for i := range g.cells {
		walls[i] = uint8(g.cells[i].walls)
	}

	return &Snapshot{
		Width:               g.width,
		Height:              g.height,
		Depth:               g.depth,
		Seed:                r.seed,
		VerticalUnlockDepth: verticalUnlockDepth,
		Start:               r.start,
		Visited:             r.VisitedCellsInOrder(),
		DeadEnds:            r.DeadEndCells(),
		Walls:               walls,
	}
}

// Restore rebuilds the grid described by the snapshot.
func (s *Snapshot) Restore() (*Grid, error) {
	g, err := NewGrid(s.Width, s.Height, s.Depth)
	if err != nil {
		return nil, err
	}
	if len(s.Walls) != len(g.cells) {
		return nil, fmt.Errorf("%w: %d wall sets for %d cells", ErrCorruptSnapshot, len(s.Walls), len(g.cells))
	}

	for i, w := range s.Walls {
		g.cells[i].walls = Walls(w) & AllWalls
	}
	for _, c := range s.Visited {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: visited cell %s", ErrCorruptSnapshot, c)
		}
		g.cells[g.index(c)].visit()
	}
	return g, nil
}
