package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/worldgen/internal/biome"
)

func makeTiles(size int, fill func(x, y int) Tile) []Tile {
	tiles := make([]Tile, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			tiles[x*size+y] = fill(x, y)
		}
	}
	return tiles
}

func TestNewMapValidatesLength(t *testing.T) {
	assert.Panics(t, func() {
		NewMap(10, 1, make([]Tile, 99))
	})
	assert.NotPanics(t, func() {
		NewMap(10, 1, make([]Tile, 100))
	})
}

func TestTileAtXMajorOrder(t *testing.T) {
	const size = 5
	m := NewMap(size, 7, makeTiles(size, func(x, y int) Tile {
		return Tile{Elevation: float64(x), Moisture: float64(y)}
	}))

	require.Equal(t, size, m.Size())
	require.Equal(t, int64(7), m.Seed())

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			tile := m.TileAt(x, y)
			assert.Equal(t, float64(x), tile.Elevation)
			assert.Equal(t, float64(y), tile.Moisture)
		}
	}
}

func TestTileAtOutOfRangePanics(t *testing.T) {
	m := NewMap(4, 1, make([]Tile, 16))

	assert.True(t, m.InBounds(0, 0))
	assert.True(t, m.InBounds(3, 3))
	assert.False(t, m.InBounds(4, 0))
	assert.False(t, m.InBounds(0, -1))

	assert.Panics(t, func() { m.TileAt(4, 0) })
	assert.Panics(t, func() { m.TileAt(-1, 2) })
}

func TestTilesImmutableByValue(t *testing.T) {
	m := NewMap(2, 1, makeTiles(2, func(x, y int) Tile {
		return Tile{Biome: biome.Forest}
	}))

	tile := m.TileAt(1, 1)
	tile.Biome = biome.Ocean
	assert.Equal(t, biome.Forest, m.TileAt(1, 1).Biome)
}
