/*
Package maze carves tree-shaped passage structures through a 3D lattice of cells.

A Grid owns every Cell for one generation run. Carve walks the grid with a randomized
depth-first backtracker, clearing the matching wall pair between each cell and the
neighbor it steps into. Horizontal moves are always eligible; vertical moves only become
eligible once the branch is deep enough, and even then they are penalized in the
neighbor draw so the resulting mazes stay mostly flat with occasional shafts.

The result exposes the visitation order, the dead-end cells and the carved adjacency so
renderers and navigation builders can consume it without touching the traversal.
*/
package maze

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// MaxGridCells is the largest lattice NewGrid allocates.
const MaxGridCells = math.MaxInt32

var (
	ErrInvalidDimensions  = errors.New("invalid maze dimensions")
	ErrOutOfBounds        = errors.New("coordinate out of bounds")
	ErrStartOutOfBounds   = errors.New("start coordinate out of bounds")
	ErrInvalidUnlockDepth = errors.New("invalid vertical unlock depth")
)

// Passage is a carved adjacency between two cells. From is always the lower coordinate
// along the axis of the move.
type Passage struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
	Face Face  `json:"face"` // Face is the face of From that was opened
}

// Grid is a fixed width × height × depth lattice of cells.
type Grid struct {
	width  int
	height int
	depth  int
	cells  []Cell
}

// CellCount returns width*height*depth. ok is false when the product does not fit in an
// int. Non-positive dimensions count as an empty lattice.
func CellCount(width, height, depth int) (count int, ok bool) {
	if min(width, height, depth) < 1 {
		return 0, true
	}
	if width > math.MaxInt/height {
		return 0, false
	}
	area := width * height
	if area > math.MaxInt/depth {
		return 0, false
	}
	return area * depth, true
}

// NewGrid allocates a grid with every wall closed and no cell visited.
func NewGrid(width, height, depth int) (*Grid, error) {
	if min(width, height, depth) < 1 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, width, height, depth)
	}
	size, ok := CellCount(width, height, depth)
	if !ok || size > MaxGridCells {
		return nil, fmt.Errorf("%w: %dx%dx%d exceeds %d cells", ErrInvalidDimensions, width, height, depth, MaxGridCells)
	}

	g := &Grid{
		width:  width,
		height: height,
		depth:  depth,
		cells:  make([]Cell, size),
	}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			for z := 0; z < depth; z++ {
				pos := Coord{X: x, Y: y, Z: z}
				g.cells[g.index(pos)] = Cell{pos: pos, walls: AllWalls}
			}
		}
	}
	return g, nil
}

// Width returns the number of cells along X.
func (g *Grid) Width() int { return g.width }

// Height returns the number of cells along Y.
func (g *Grid) Height() int { return g.height }

// Depth returns the number of cells along Z.
func (g *Grid) Depth() int { return g.depth }

// Size returns the total number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether c addresses a cell of the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width &&
		c.Y >= 0 && c.Y < g.height &&
		c.Z >= 0 && c.Z < g.depth
}

// Cell returns the cell at c.
func (g *Grid) Cell(c Coord) (*Cell, error) {
	if !g.InBounds(c) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	return &g.cells[g.index(c)], nil
}

// WallState returns the six wall flags of the cell at c.
func (g *Grid) WallState(c Coord) (WallState, error) {
	cell, err := g.Cell(c)
	if err != nil {
		return WallState{}, err
	}
	return cell.walls.State(), nil
}

// Passages enumerates every carved adjacency exactly once, in lattice order.
func (g *Grid) Passages() []Passage {
	var result []Passage
	for i := range g.cells {
		cell := &g.cells[i]
		for _, f := range []Face{FaceRight, FaceCeiling, FaceFront} {
			if cell.walls.Has(f) {
				continue
			}
			result = append(result, Passage{From: cell.pos, To: cell.pos.Add(f.Delta()), Face: f})
		}
	}
	return result
}

// IsOpen reports whether a passage connects a and b.
func (g *Grid) IsOpen(a, b Coord) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	f, ok := faceBetween(a, b)
	if !ok {
		return false
	}
	return !g.cells[g.index(a)].walls.Has(f) && !g.cells[g.index(b)].walls.Has(f.Opposite())
}

// index maps a coordinate to its slot in the cells slice.
func (g *Grid) index(c Coord) int {
	return (c.X*g.height+c.Y)*g.depth + c.Z
}

func (g *Grid) at(i int) *Cell {
	return &g.cells[i]
}

// neighbor returns the index of the cell across face f, or false at the lattice edge.
func (g *Grid) neighbor(i int, f Face) (int, bool) {
	next := g.cells[i].pos.Add(f.Delta())
	if !g.InBounds(next) {
		return 0, false
	}
	return g.index(next), true
}

// openWall clears the matching wall pair between two adjacent cells.
func (g *Grid) openWall(from, to int, f Face) {
	g.cells[from].clearWall(f)
	g.cells[to].clearWall(f.Opposite())
}

// faceBetween returns the face of a that touches b when the two are lattice-adjacent.
func faceBetween(a, b Coord) (Face, bool) {
	d := Coord{X: b.X - a.X, Y: b.Y - a.Y, Z: b.Z - a.Z}
	for _, f := range Faces {
		if f.Delta() == d {
			return f, true
		}
	}
	return 0, false
}

// Layer renders one height layer as ASCII. Open floors are marked "v", open ceilings "^",
// and cells open both ways "X".
func (g *Grid) Layer(y int) (string, error) {
	if y < 0 || y >= g.height {
		return "", fmt.Errorf("%w: layer %d", ErrOutOfBounds, y)
	}

	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", g.width) + "\n")

	for z := g.depth - 1; z >= 0; z-- {
		// Cell rows
		b.WriteString("|")
		for x := 0; x < g.width; x++ {
			cell := &g.cells[g.index(Coord{X: x, Y: y, Z: z})]
			b.WriteString(" " + verticalMarker(cell.walls) + " ")
			if cell.walls.Has(FaceRight) {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")

		// Wall rows
		b.WriteString("+")
		for x := 0; x < g.width; x++ {
			cell := &g.cells[g.index(Coord{X: x, Y: y, Z: z})]
			if cell.walls.Has(FaceBack) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

// String renders every layer from the top of the grid down.
func (g *Grid) String() string {
	var b strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		layer, _ := g.Layer(y)
		fmt.Fprintf(&b, "layer %d\n%s", y, layer)
	}
	return b.String()
}

func verticalMarker(w Walls) string {
	floor, ceiling := !w.Has(FaceFloor), !w.Has(FaceCeiling)
	switch {
	case floor && ceiling:
		return "X"
	case floor:
		return "v"
	case ceiling:
		return "^"
	default:
		return " "
	}
}
