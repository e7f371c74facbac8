package maze

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	// keyRange is the exclusive upper bound of the per-candidate draw; keys fall in [1, keyRange).
	keyRange = 10
	// verticalPenalty multiplies the draw of candidates on the Y axis.
	verticalPenalty = 3
)

// Options configures a single generation run.
type Options struct {
	Width  int
	Height int
	Depth  int

	// Seed is used only when UseSeed is set. Otherwise a fresh seed is drawn and reported
	// through Result.Seed so the run can be reproduced later.
	Seed    int64
	UseSeed bool

	// VerticalUnlockDepth is the branch depth at or beyond which Y-axis neighbors
	// become candidates.
	VerticalUnlockDepth int

	// Start overrides the default start cell (nil = DefaultStart).
	Start *Coord
}

// DefaultStart returns the horizontal center of the topmost layer.
func DefaultStart(width, height, depth int) Coord {
	return Coord{X: width / 2, Y: height - 1, Z: depth / 2}
}

// NewSeed draws a seed for runs that do not supply one.
func NewSeed() int64 {
	return time.Now().UnixNano()
}

// Generate allocates a grid and carves it according to opts.
func Generate(opts Options) (*Result, error) {
	if opts.VerticalUnlockDepth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidUnlockDepth, opts.VerticalUnlockDepth)
	}

	grid, err := NewGrid(opts.Width, opts.Height, opts.Depth)
	if err != nil {
		return nil, err
	}

	start := DefaultStart(opts.Width, opts.Height, opts.Depth)
	if opts.Start != nil {
		start = *opts.Start
	}

	seed := opts.Seed
	if !opts.UseSeed {
		seed = NewSeed()
	}

	result, err := Carve(grid, start, rand.New(rand.NewSource(seed)), opts.VerticalUnlockDepth)
	if err != nil {
		return nil, err
	}
	result.seed = seed
	return result, nil
}

// frame is one pending step of the traversal.
type frame struct {
	parent  int // index of the cell we came from, -1 for the start cell
	current int
	depth   int // branch depth of current
	entered bool
}

// carver holds the state of one traversal.
type carver struct {
	grid       *Grid
	rng        *rand.Rand
	unlock     int
	candidates []Face
	keys       []int
}

// Carve runs the randomized backtracker over grid from start. The grid is validated
// before any cell is touched; on error it is left unmodified.
func Carve(grid *Grid, start Coord, rng *rand.Rand, verticalUnlockDepth int) (*Result, error) {
	if !grid.InBounds(start) {
		return nil, fmt.Errorf("%w: %s in %dx%dx%d grid", ErrStartOutOfBounds, start, grid.width, grid.height, grid.depth)
	}
	if verticalUnlockDepth < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidUnlockDepth, verticalUnlockDepth)
	}

	c := &carver{
		grid:       grid,
		rng:        rng,
		unlock:     verticalUnlockDepth,
		candidates: make([]Face, 0, len(Faces)),
		keys:       make([]int, 0, len(Faces)),
	}
	result := &Result{
		grid:     grid,
		start:    start,
		deadEnds: make(map[Coord]struct{}),
	}

	stack := []frame{{parent: -1, current: grid.index(start)}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if !top.entered {
			stack[len(stack)-1].entered = true
			c.enter(top, result)

			if len(c.collect(top.current, top.depth)) == 0 {
				result.addDeadEnd(grid.at(top.current).pos)
				stack = stack[:len(stack)-1]
				continue
			}
		} else if len(c.collect(top.current, top.depth)) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next, _ := grid.neighbor(top.current, c.choose())
		stack = append(stack, frame{parent: top.current, current: next, depth: top.depth + 1})
	}

	return result, nil
}

// enter marks the frame's cell visited and opens the wall it was reached through.
func (c *carver) enter(f frame, result *Result) {
	cell := c.grid.at(f.current)
	cell.visit()

	step := Step{Cell: cell.pos, Depth: f.depth}
	if f.parent >= 0 {
		parent := c.grid.at(f.parent)
		face, _ := faceBetween(parent.pos, cell.pos)
		c.grid.openWall(f.parent, f.current, face)
		step.Parent = parent.pos
		step.HasParent = true
	}
	result.steps = append(result.steps, step)
}

// collect fills c.candidates with the faces of i that lead to unvisited neighbors.
// Y-axis faces are only considered once depth reaches the unlock depth.
func (c *carver) collect(i, depth int) []Face {
	c.candidates = c.candidates[:0]
	for _, f := range Faces {
		if f.Vertical() && depth < c.unlock {
			continue
		}
		n, ok := c.grid.neighbor(i, f)
		if !ok || c.grid.at(n).visited {
			continue
		}
		c.candidates = append(c.candidates, f)
	}
	return c.candidates
}

// choose draws a key for every candidate and returns the candidate with the lowest key.
// Keys are drawn in candidate order and ties go to the earlier candidate.
func (c *carver) choose() Face {
	c.keys = c.keys[:0]
	for _, f := range c.candidates {
		key := c.rng.Intn(keyRange-1) + 1
		if f.Vertical() {
			key *= verticalPenalty
		}
		c.keys = append(c.keys, key)
	}

	best := 0
	for j := 1; j < len(c.keys); j++ {
		if c.keys[j] < c.keys[best] {
			best = j
		}
	}
	return c.candidates[best]
}
