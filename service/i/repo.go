package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze3d/domain"
	"github.com/beka-birhanu/vinom-maze3d/identity"
	"github.com/google/uuid"
)

// DesignerRepo defines the interface for designer persistence operations.
type DesignerRepo interface {
	// Save inserts or updates a designer in the repository.
	// If the designer already exists, it updates the record. Otherwise, it creates a new one.
	Save(designer *identity.Designer) error

	// ByID retrieves a designer by their unique ID.
	ByID(id uuid.UUID) (*identity.Designer, error)

	// ByUsername retrieves a designer by their username.
	ByUsername(username string) (*identity.Designer, error)
}

// MazeRepo stores saved mazes.
type MazeRepo interface {
	Save(ctx context.Context, record *dmn.MazeRecord) error
	ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error)
	// ByOwner returns the owner's mazes, newest first.
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]*dmn.MazeRecord, error)
}
