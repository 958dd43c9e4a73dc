// Package world holds the authoritative generated world grid and its
// compact derived view.
package world

import (
	"fmt"

	"github.com/driftline/worldgen/internal/biome"
)

// DefaultSize is the world side length in tiles.
const DefaultSize = 1000

// Tile is one cell of the world grid. Tiles are immutable once generated;
// regeneration replaces the whole Map instead of mutating tiles in place.
type Tile struct {
	Biome       biome.Type
	Elevation   float64
	Temperature float64
	Moisture    float64
	Resources   []biome.Resource
}

// Map owns the size×size tile grid for one generation run together with
// the seed that produced it. It is never mutated after construction; a new
// generation run produces a new Map that wholesale-replaces the old one.
type Map struct {
	size  int
	seed  int64
	tiles []Tile // x-major: index = x*size + y
}

// NewMap wraps a fully populated tile slice. The slice must hold exactly
// size×size tiles in x-major order.
func NewMap(size int, seed int64, tiles []Tile) *Map {
	if len(tiles) != size*size {
		panic(fmt.Sprintf("world: tile slice has %d entries, want %d", len(tiles), size*size))
	}
	return &Map{size: size, seed: seed, tiles: tiles}
}

// Size returns the world side length in tiles.
func (m *Map) Size() int {
	return m.size
}

// Seed returns the seed this map was generated from.
func (m *Map) Seed() int64 {
	return m.seed
}

// InBounds reports whether (x, y) addresses a tile.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.size && y >= 0 && y < m.size
}

// TileAt returns the tile at (x, y). Out-of-range access is a programming
// error and panics; callers serving external input must check InBounds
// first.
func (m *Map) TileAt(x, y int) Tile {
	if !m.InBounds(x, y) {
		panic(fmt.Sprintf("world: tile (%d,%d) out of range for size %d", x, y, m.size))
	}
	return m.tiles[x*m.size+y]
}
