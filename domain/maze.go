// Package domain holds the records shared by the service, storage and transport layers.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze3d/maze"
	"github.com/google/uuid"
)

// MazeParams describes a generation request.
type MazeParams struct {
	Width               int
	Height              int
	Depth               int
	Seed                int64
	UseSeed             bool
	VerticalUnlockDepth int
	Start               *maze.Coord // nil = top layer center
}

// Cells returns the number of cells the request would allocate.
func (p MazeParams) Cells() (int, bool) {
	return maze.CellCount(p.Width, p.Height, p.Depth)
}

// Options converts the params for the carver.
func (p MazeParams) Options() maze.Options {
	return maze.Options{
		Width:               p.Width,
		Height:              p.Height,
		Depth:               p.Depth,
		Seed:                p.Seed,
		UseSeed:             p.UseSeed,
		VerticalUnlockDepth: p.VerticalUnlockDepth,
		Start:               p.Start,
	}
}

// MazeRecord is a generated maze saved by a designer.
type MazeRecord struct {
	ID        uuid.UUID     `bson:"_id"`
	OwnerID   uuid.UUID     `bson:"ownerId"`
	Name      string        `bson:"name"`
	Maze      maze.Snapshot `bson:"maze"`
	CreatedAt time.Time     `bson:"createdAt"`
}

var (
	ErrNotFound         = errors.New("not found")
	ErrMazeTooLarge     = errors.New("maze exceeds the cell limit")
	ErrMazeNameRequired = errors.New("maze name is required")
)
