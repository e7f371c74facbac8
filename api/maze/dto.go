// Package mazeapi exposes maze generation and saved mazes over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-maze3d/domain"
	"github.com/beka-birhanu/vinom-maze3d/maze"
)

// GenerateRequest describes the maze to carve. A missing seed asks the server to draw one.
type GenerateRequest struct {
	Width               int         `json:"width"`
	Height              int         `json:"height"`
	Depth               int         `json:"depth"`
	Seed                *int64      `json:"seed"`
	VerticalUnlockDepth int         `json:"vertical_unlock_depth"`
	Start               *maze.Coord `json:"start"`
}

func (r GenerateRequest) params() dmn.MazeParams {
	p := dmn.MazeParams{
		Width:               r.Width,
		Height:              r.Height,
		Depth:               r.Depth,
		VerticalUnlockDepth: r.VerticalUnlockDepth,
		Start:               r.Start,
	}
	if r.Seed != nil {
		p.Seed = *r.Seed
		p.UseSeed = true
	}
	return p
}

// SaveRequest generates a maze and stores it under a name.
type SaveRequest struct {
	Name string          `json:"name" binding:"required"`
	Maze GenerateRequest `json:"maze"`
}

// CellResponse is the wall state of one cell.
type CellResponse struct {
	Position maze.Coord     `json:"position"`
	Walls    maze.WallState `json:"walls"`
	Visited  bool           `json:"visited"`
	DeadEnd  bool           `json:"dead_end"`
}

// MazeResponse is a carved maze as consumed by renderers.
type MazeResponse struct {
	Width               int            `json:"width"`
	Height              int            `json:"height"`
	Depth               int            `json:"depth"`
	Seed                int64          `json:"seed"`
	VerticalUnlockDepth int            `json:"vertical_unlock_depth"`
	Start               maze.Coord     `json:"start"`
	Visited             []maze.Coord   `json:"visited"`
	DeadEnds            []maze.Coord   `json:"dead_ends"`
	Cells               []CellResponse `json:"cells"`
	Passages            []maze.Passage `json:"passages"`
}

// RecordResponse is a saved maze.
type RecordResponse struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	Name      string        `json:"name"`
	CreatedAt time.Time     `json:"created_at"`
	Maze      *MazeResponse `json:"maze"`
}

// RecentResponse lists the keys of the latest generations.
type RecentResponse struct {
	Keys  []string `json:"keys"`
	Total int64    `json:"total"` // Total is the size of the whole history
}

func newMazeResponse(s *maze.Snapshot) (*MazeResponse, error) {
	grid, err := s.Restore()
	if err != nil {
		return nil, err
	}

	deadEnds := make(map[maze.Coord]struct{}, len(s.DeadEnds))
	for _, c := range s.DeadEnds {
		deadEnds[c] = struct{}{}
	}

	cells := make([]CellResponse, 0, grid.Size())
	for x := 0; x < grid.Width(); x++ {
		for y := 0; y < grid.Height(); y++ {
			for z := 0; z < grid.Depth(); z++ {
				pos := maze.Coord{X: x, Y: y, Z: z}
				cell, err := grid.Cell(pos)
				if err != nil {
					return nil, err
				}
				_, deadEnd := deadEnds[pos]
				cells = append(cells, CellResponse{
					Position: pos,
					Walls:    cell.Walls().State(),
					Visited:  cell.Visited(),
					DeadEnd:  deadEnd,
				})
			}
		}
	}

	passages := grid.Passages()
	if passages == nil {
		passages = []maze.Passage{}
	}

	return &MazeResponse{
		Width:               s.Width,
		Height:              s.Height,
		Depth:               s.Depth,
		Seed:                s.Seed,
		VerticalUnlockDepth: s.VerticalUnlockDepth,
		Start:               s.Start,
		Visited:             s.Visited,
		DeadEnds:            s.DeadEnds,
		Cells:               cells,
		Passages:            passages,
	}, nil
}

func newRecordResponse(r *dmn.MazeRecord) (*RecordResponse, error) {
	m, err := newMazeResponse(&r.Maze)
	if err != nil {
		return nil, err
	}
	return &RecordResponse{
		ID:        r.ID.String(),
		OwnerID:   r.OwnerID.String(),
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		Maze:      m,
	}, nil
}
