package maze

import "fmt"

// Coord is the position of a cell in the lattice.
type Coord struct {
	X int `json:"x" bson:"x"` // X is the width axis
	Y int `json:"y" bson:"y"` // Y is the height axis
	Z int `json:"z" bson:"z"` // Z is the depth axis
}

// String returns the coordinate as "(x,y,z)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Add returns the coordinate shifted by delta.
func (c Coord) Add(delta Coord) Coord {
	return Coord{X: c.X + delta.X, Y: c.Y + delta.Y, Z: c.Z + delta.Z}
}

// Face identifies one of the six walls of a cell.
type Face uint8

const (
	FaceLeft    Face = iota // -x
	FaceRight               // +x
	FaceFloor               // -y
	FaceCeiling             // +y
	FaceBack                // -z
	FaceFront               // +z
)

// Faces lists every face in candidate enumeration order.
var Faces = []Face{FaceRight, FaceLeft, FaceCeiling, FaceFloor, FaceFront, FaceBack}

var (
	faceDeltas = [...]Coord{
		FaceLeft:    {X: -1},
		FaceRight:   {X: 1},
		FaceFloor:   {Y: -1},
		FaceCeiling: {Y: 1},
		FaceBack:    {Z: -1},
		FaceFront:   {Z: 1},
	}
	faceNames = [...]string{
		FaceLeft:    "left",
		FaceRight:   "right",
		FaceFloor:   "floor",
		FaceCeiling: "ceiling",
		FaceBack:    "back",
		FaceFront:   "front",
	}
)

// Delta returns the unit displacement that crosses the face.
func (f Face) Delta() Coord {
	return faceDeltas[f]
}

// Opposite returns the face on the other side of the shared wall.
func (f Face) Opposite() Face {
	return f ^ 1
}

// Vertical reports whether the face lies on the Y axis.
func (f Face) Vertical() bool {
	return f == FaceFloor || f == FaceCeiling
}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return fmt.Sprintf("face(%d)", uint8(f))
}

// MarshalText encodes the face by name.
func (f Face) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a face name.
func (f *Face) UnmarshalText(text []byte) error {
	for i, name := range faceNames {
		if name == string(text) {
			*f = Face(i)
			return nil
		}
	}
	return fmt.Errorf("unknown face %q", text)
}

// Walls is a bit set of closed faces. A set bit means the wall is standing.
type Walls uint8

// AllWalls is the wall set of a freshly created cell.
const AllWalls Walls = 1<<6 - 1

// Has reports whether the wall on face f is closed.
func (w Walls) Has(f Face) bool {
	return w&(1<<f) != 0
}

func (w Walls) without(f Face) Walls {
	return w &^ (1 << f)
}

// WallState is the six-flag wall record of a cell. True means closed.
type WallState struct {
	Left    bool `json:"left"`
	Right   bool `json:"right"`
	Floor   bool `json:"floor"`
	Ceiling bool `json:"ceiling"`
	Back    bool `json:"back"`
	Front   bool `json:"front"`
}

// State expands the bit set into a WallState.
func (w Walls) State() WallState {
	return WallState{
		Left:    w.Has(FaceLeft),
		Right:   w.Has(FaceRight),
		Floor:   w.Has(FaceFloor),
		Ceiling: w.Has(FaceCeiling),
		Back:    w.Has(FaceBack),
		Front:   w.Has(FaceFront),
	}
}

// Cell represents a single lattice position with its visited flag and walls.
type Cell struct {
	pos     Coord
	visited bool
	walls   Walls
}

// Position returns the cell coordinates.
func (c *Cell) Position() Coord {
	return c.pos
}

// Visited reports whether the carving traversal has reached the cell.
func (c *Cell) Visited() bool {
	return c.visited
}

// Walls returns the closed faces of the cell.
func (c *Cell) Walls() Walls {
	return c.walls
}

// HasWall reports whether the wall on face f is closed.
func (c *Cell) HasWall(f Face) bool {
	return c.walls.Has(f)
}

func (c *Cell) visit() {
	c.visited = true
}

func (c *Cell) clearWall(f Face) {
	c.walls = c.walls.without(f)
}
