package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze3d/domain"
	"github.com/beka-birhanu/vinom-maze3d/maze"
	"github.com/google/uuid"
)

// MazeService generates, saves and looks up mazes.
type MazeService interface {
	Generate(ctx context.Context, params dmn.MazeParams) (*maze.Snapshot, error)
	Save(ctx context.Context, ownerID uuid.UUID, name string, params dmn.MazeParams) (*dmn.MazeRecord, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error)
	// Recent returns the keys of the latest generations, newest first, with the size
	// of the whole history.
	Recent(ctx context.Context, limit int64) ([]string, int64, error)
}
