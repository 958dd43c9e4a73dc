package worldgen

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/worldgen/internal/biome"
	"github.com/driftline/worldgen/internal/world"
)

func generate(t *testing.T, seed int64, size int, opts ...Option) *world.Map {
	t.Helper()
	m, err := New(seed, size, opts...).Generate(context.Background())
	require.NoError(t, err)
	return m
}

func requireSameWorld(t *testing.T, a, b *world.Map) {
	t.Helper()
	require.Equal(t, a.Size(), b.Size())
	for x := 0; x < a.Size(); x++ {
		for y := 0; y < a.Size(); y++ {
			ta, tb := a.TileAt(x, y), b.TileAt(x, y)
			require.Equal(t, ta.Biome, tb.Biome, "(%d,%d)", x, y)
			require.Equal(t, ta.Elevation, tb.Elevation, "(%d,%d)", x, y)
			require.Equal(t, ta.Resources, tb.Resources, "(%d,%d)", x, y)
		}
	}
}

func TestGenerateDeterministicAcrossRuns(t *testing.T) {
	a := generate(t, 12345, 96)
	b := generate(t, 12345, 96)
	requireSameWorld(t, a, b)
}

func TestGenerateIndependentOfPartitioning(t *testing.T) {
	// Tile values must not depend on how the grid is cut into blocks or
	// how many workers run.
	reference := generate(t, 777, 90, WithBlockSize(90), WithWorkers(1))
	for _, tc := range []struct {
		blockSize int
		workers   int
	}{
		{64, 4},
		{16, 8},
		{7, 3},
		{1, 2},
	} {
		got := generate(t, 777, 90, WithBlockSize(tc.blockSize), WithWorkers(tc.workers))
		requireSameWorld(t, reference, got)
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	a := generate(t, 1, 64)
	b := generate(t, 2, 64)

	same := 0
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			if a.TileAt(x, y).Biome == b.TileAt(x, y).Biome {
				same++
			}
		}
	}
	assert.Less(t, same, 64*64, "different seeds should produce different worlds")
}

func TestGenerateFieldInvariants(t *testing.T) {
	m := generate(t, 12345, 80)
	for x := 0; x < 80; x++ {
		for y := 0; y < 80; y++ {
			tile := m.TileAt(x, y)
			require.Less(t, tile.Biome, biome.Type(biome.Count))
			require.GreaterOrEqual(t, tile.Elevation, 0.0)
			require.LessOrEqual(t, tile.Elevation, 1.0)
			require.GreaterOrEqual(t, tile.Temperature, 0.0)
			require.LessOrEqual(t, tile.Temperature, 1.0)
			require.GreaterOrEqual(t, tile.Moisture, 0.0)
			require.LessOrEqual(t, tile.Moisture, 1.0)
		}
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(1, 256, WithBlockSize(8)).Generate(ctx)
	assert.Error(t, err)
}

func TestProgressObserver(t *testing.T) {
	var mu sync.Mutex
	var fractions []float64
	var stages []string

	_ = generate(t, 42, 64, WithBlockSize(8), WithObserver(func(fraction float64, stage string) {
		mu.Lock()
		defer mu.Unlock()
		fractions = append(fractions, fraction)
		stages = append(stages, stage)
	}))

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, fractions)

	for i := 1; i < len(fractions); i++ {
		assert.GreaterOrEqual(t, fractions[i], fractions[i-1], "fractions must not decrease")
	}
	assert.Equal(t, 1.0, fractions[len(fractions)-1])
	assert.Equal(t, "world ready", stages[len(stages)-1])
	for _, f := range fractions {
		assert.GreaterOrEqual(t, f, 0.0)
		assert.LessOrEqual(t, f, 1.0)
	}
}

func TestBlockSizeNormalization(t *testing.T) {
	// Oversized and non-positive block sizes collapse to a single block.
	a := generate(t, 5, 20, WithBlockSize(500))
	b := generate(t, 5, 20, WithBlockSize(0))
	requireSameWorld(t, a, b)
}
