package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/worldgen/internal/chunk"
)

func testConfig(seed int64) Config {
	return Config{
		Seed:            seed,
		WorldSize:       64,
		BlockSize:       16,
		Octaves:         2,
		SampleStride:    8,
		ChunkSize:       32,
		TileSize:        4.0,
		StreamRadius:    200,
		SpatialCellSize: 64,
	}
}

// waitForWorld polls until a generation run installs, or fails the test.
func waitForWorld(t *testing.T, e *Engine) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if e.PollGeneration() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("generation did not complete in time")
}

func TestStateNilBeforeFirstGeneration(t *testing.T) {
	e := New(testConfig(1), nil)
	assert.Nil(t, e.State())
	assert.False(t, e.Generating())
	assert.False(t, e.PollGeneration())
}

func TestGenerateInstallsState(t *testing.T) {
	e := New(testConfig(12345), nil)
	e.Generate(12345)
	assert.True(t, e.Generating())

	waitForWorld(t, e)

	state := e.State()
	require.NotNil(t, state)
	assert.Equal(t, int64(12345), state.Map.Seed())
	assert.Equal(t, 64, state.Map.Size())
	require.NotNil(t, state.Compressed)
	assert.Equal(t, state.Map.TileAt(10, 10).Biome, state.Compressed.BiomeAt(10, 10))

	assert.False(t, e.Generating())
	p := e.Progress()
	assert.Equal(t, 1.0, p.Fraction)
	assert.False(t, p.Generating)
}

func TestOldWorldServedDuringRegeneration(t *testing.T) {
	e := New(testConfig(1), nil)
	e.Generate(1)
	waitForWorld(t, e)
	first := e.State()

	e.Generate(2)
	// Until the poll that installs the new world, reads still see the old
	// one.
	assert.Same(t, first, e.State())

	waitForWorld(t, e)
	second := e.State()
	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.Equal(t, int64(2), second.Map.Seed())
}

func TestSupersededJobDiscarded(t *testing.T) {
	e := New(testConfig(1), nil)
	e.Generate(1)
	e.Generate(2)

	waitForWorld(t, e)
	assert.Equal(t, int64(2), e.State().Map.Seed())

	// Give the superseded run time to finish; its result must never
	// replace the newer world.
	time.Sleep(100 * time.Millisecond)
	e.PollGeneration()
	assert.Equal(t, int64(2), e.State().Map.Seed())
}

func TestTickStreamsChunks(t *testing.T) {
	e := New(testConfig(7), nil)

	// Before any world exists, Tick is a no-op.
	e.Tick(0, 0)
	assert.Equal(t, 0, e.Chunks().LoadedCount())

	e.Generate(7)
	waitForWorld(t, e)

	e.Tick(0, 0)
	// 64-tile world: 2x2 chunks of 32 tiles, all within radius 200.
	assert.Equal(t, 4, e.Chunks().LoadedCount())
	assert.True(t, e.Chunks().IsLoaded(chunk.Coord{X: 0, Y: 0}))
}

func TestRegenerationResetsChunks(t *testing.T) {
	e := New(testConfig(1), nil)
	e.Generate(1)
	waitForWorld(t, e)
	e.Tick(0, 0)
	require.Equal(t, 4, e.Chunks().LoadedCount())

	e.Generate(2)
	waitForWorld(t, e)
	// Installing the new world clears all chunk state.
	assert.Equal(t, 0, e.Chunks().LoadedCount())

	e.Tick(0, 0)
	assert.Equal(t, 4, e.Chunks().LoadedCount())
}

func TestProgressReachesReady(t *testing.T) {
	e := New(testConfig(5), nil)
	e.Generate(5)
	waitForWorld(t, e)

	p := e.Progress()
	assert.Equal(t, 1.0, p.Fraction)
	assert.Equal(t, "world ready", p.Stage)
	assert.False(t, p.Generating)
}

func TestSpatialIndexAccessible(t *testing.T) {
	e := New(testConfig(1), nil)
	idx := e.Spatial()
	require.NotNil(t, idx)
	idx.Insert(1, 10, 10)
	assert.Equal(t, 1, idx.Len())
}
