// Package chunk streams fixed-size squares of world tiles in and out of a
// bounded working set around a moving viewer.
package chunk

const (
	// DefaultSize is the chunk side length in tiles.
	DefaultSize = 32

	// DefaultTileSize is the world-space width of one tile.
	DefaultTileSize = 4.0
)

// Coord identifies a chunk in chunk space.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds is an inclusive-exclusive tile range clamped to the world extent.
type Bounds struct {
	StartX int `json:"start_x"`
	StartY int `json:"start_y"`
	EndX   int `json:"end_x"`
	EndY   int `json:"end_y"`
}

// Empty reports whether the range covers no tiles. A chunk coordinate
// entirely outside the world clamps to an empty range.
func (b Bounds) Empty() bool {
	return b.StartX >= b.EndX || b.StartY >= b.EndY
}

// EntityHandle indexes into the presentation layer's entity arena.
type EntityHandle uint64

// Realizer is implemented by the presentation collaborator. Realize turns
// a chunk's tile range into presentation entities and returns their
// handles; Release destroys them. Both are invoked only from the control
// tick that owns the Manager.
type Realizer interface {
	Realize(c Coord, b Bounds) []EntityHandle
	Release(handles []EntityHandle)
}

// Chunk is the streaming record for one loaded coordinate: the realized
// entity handles plus the loaded flag. Created on entering streaming
// range, destroyed on leaving it.
type Chunk struct {
	Coord    Coord
	Entities []EntityHandle
	Loaded   bool
}
