package maze

// Step records one visit of the traversal.
type Step struct {
	Cell      Coord `json:"cell"`
	Parent    Coord `json:"parent"`     // Parent is meaningful only when HasParent is set
	HasParent bool  `json:"has_parent"` // HasParent is false for the start cell
	Depth     int   `json:"depth"`      // Depth is the branch depth the cell was visited at
}

// Result is the read-only outcome of a carving run.
type Result struct {
	grid     *Grid
	seed     int64
	start    Coord
	steps    []Step
	deadEnds map[Coord]struct{}
	deadList []Coord
}

func (r *Result) addDeadEnd(c Coord) {
	r.deadEnds[c] = struct{}{}
	r.deadList = append(r.deadList, c)
}

// Grid returns the carved grid.
func (r *Result) Grid() *Grid {
	return r.grid
}

// Seed returns the seed the run was generated with. Zero for runs started through Carve
// with a caller-owned generator.
func (r *Result) Seed() int64 {
	return r.seed
}

// Start returns the cell the traversal started from.
func (r *Result) Start() Coord {
	return r.start
}

// VisitedCellsInOrder returns the visited cells in the order the traversal reached them.
func (r *Result) VisitedCellsInOrder() []Coord {
	cells := make([]Coord, len(r.steps))
	for i, s := range r.steps {
		cells[i] = s.Cell
	}
	return cells
}

// Steps returns the visits with their parent and branch depth, in visitation order.
func (r *Result) Steps() []Step {
	return append([]Step(nil), r.steps...)
}

// DeadEndCells returns the dead ends in the order they were found.
func (r *Result) DeadEndCells() []Coord {
	return append([]Coord(nil), r.deadList...)
}

// IsDeadEnd reports whether c was recorded as a dead end.
func (r *Result) IsDeadEnd(c Coord) bool {
	_, ok := r.deadEnds[c]
	return ok
}

// Passages enumerates the carved adjacency of the grid.
func (r *Result) Passages() []Passage {
	return r.grid.Passages()
}
