package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingRealizer hands out sequential handles and records the order of
// realize/release events.
type recordingRealizer struct {
	next     EntityHandle
	events   []string
	realized map[EntityHandle]bool
}

func newRecordingRealizer() *recordingRealizer {
	return &recordingRealizer{realized: make(map[EntityHandle]bool)}
}

func (r *recordingRealizer) Realize(c Coord, b Bounds) []EntityHandle {
	r.events = append(r.events, "realize")
	handles := make([]EntityHandle, 2)
	for i := range handles {
		r.next++
		handles[i] = r.next
		r.realized[r.next] = true
	}
	return handles
}

func (r *recordingRealizer) Release(handles []EntityHandle) {
	r.events = append(r.events, "release")
	for _, h := range handles {
		delete(r.realized, h)
	}
}

func TestBoundsOfClampsToWorld(t *testing.T) {
	m := NewManager(100, 32, 4.0, nil)

	assert.Equal(t, Bounds{StartX: 0, StartY: 0, EndX: 32, EndY: 32}, m.BoundsOf(Coord{0, 0}))
	assert.Equal(t, Bounds{StartX: 96, StartY: 96, EndX: 100, EndY: 100}, m.BoundsOf(Coord{3, 3}))

	// Chunks fully outside the world clamp to an empty range.
	assert.True(t, m.BoundsOf(Coord{4, 0}).Empty())
	assert.True(t, m.BoundsOf(Coord{-1, 0}).Empty())
}

func TestChunksTileWorldWithoutOverlap(t *testing.T) {
	const worldSize = 100
	m := NewManager(worldSize, 32, 4.0, nil)

	covered := make(map[[2]int]int)
	for cx := 0; cx < 4; cx++ {
		for cy := 0; cy < 4; cy++ {
			b := m.BoundsOf(Coord{cx, cy})
			for x := b.StartX; x < b.EndX; x++ {
				for y := b.StartY; y < b.EndY; y++ {
					covered[[2]int{x, y}]++
				}
			}
		}
	}

	require.Len(t, covered, worldSize*worldSize)
	for pos, n := range covered {
		require.Equal(t, 1, n, "tile %v covered %d times", pos, n)
	}
}

func TestVisibleChunkSetAtOrigin(t *testing.T) {
	// chunkWorldSize = 32*4 = 128; radius 200 gives ceil(200/128)+1 = 3
	// rings, clipped at the world edge to chunk columns 0..3.
	m := NewManager(1000, 32, 4.0, nil)
	target := m.VisibleChunkSet(0, 0, 200)

	assert.Len(t, target, 16)
	for x := 0; x <= 3; x++ {
		for y := 0; y <= 3; y++ {
			assert.Contains(t, target, Coord{x, y})
		}
	}
}

func TestVisibleChunkSetInterior(t *testing.T) {
	m := NewManager(1000, 32, 4.0, nil)
	target := m.VisibleChunkSet(2000, 2000, 200)

	// Viewer chunk (15,15); 3 rings in every direction, none clipped.
	assert.Len(t, target, 49)
	assert.Contains(t, target, Coord{15, 15})
	assert.Contains(t, target, Coord{12, 12})
	assert.Contains(t, target, Coord{18, 18})
	assert.NotContains(t, target, Coord{11, 15})
}

func TestLoadUnloadIdempotent(t *testing.T) {
	r := newRecordingRealizer()
	m := NewManager(1000, 32, 4.0, r)

	c := Coord{1, 1}
	assert.True(t, m.Load(c))
	assert.False(t, m.Load(c), "second load is a no-op")
	assert.Equal(t, 1, m.LoadedCount())
	assert.True(t, m.IsLoaded(c))
	require.NotNil(t, m.Get(c))
	assert.Len(t, m.Get(c).Entities, 2)

	assert.True(t, m.Unload(c))
	assert.False(t, m.Unload(c), "second unload is a no-op")
	assert.Equal(t, 0, m.LoadedCount())
	assert.Empty(t, r.realized, "all handles released")
}

func TestLoadOutsideWorldIsNoOp(t *testing.T) {
	m := NewManager(100, 32, 4.0, newRecordingRealizer())
	assert.False(t, m.Load(Coord{50, 50}))
	assert.Equal(t, 0, m.LoadedCount())
}

func TestUpdateConvergesToTargetSet(t *testing.T) {
	r := newRecordingRealizer()
	m := NewManager(1000, 32, 4.0, r)

	loaded, unloaded := m.Update(0, 0, 200)
	assert.Equal(t, 16, loaded)
	assert.Equal(t, 0, unloaded)
	assert.Equal(t, 16, m.LoadedCount())

	// Same viewer: steady state, no churn.
	loaded, unloaded = m.Update(0, 0, 200)
	assert.Equal(t, 0, loaded)
	assert.Equal(t, 0, unloaded)

	// Teleport far away: the old set drains, the new one fills.
	r.events = nil
	loaded, unloaded = m.Update(2000, 2000, 200)
	assert.Equal(t, 49, loaded)
	assert.Equal(t, 16, unloaded)
	assert.Equal(t, 49, m.LoadedCount())

	// Unloads settle before loads within one pass.
	firstRealize := -1
	lastRelease := -1
	for i, e := range r.events {
		if e == "realize" && firstRealize == -1 {
			firstRealize = i
		}
		if e == "release" {
			lastRelease = i
		}
	}
	assert.Less(t, lastRelease, firstRealize)

	// The loaded set matches the target set exactly.
	for c := range m.ActiveSet() {
		assert.True(t, m.IsLoaded(c))
	}
}

func TestSmallMovementKeepsOverlap(t *testing.T) {
	m := NewManager(1000, 32, 4.0, newRecordingRealizer())
	m.Update(2000, 2000, 200)

	// Moving one chunk over churns only the leading and trailing columns.
	loaded, unloaded := m.Update(2128, 2000, 200)
	assert.Equal(t, 7, loaded)
	assert.Equal(t, 7, unloaded)
	assert.Equal(t, 49, m.LoadedCount())
}

func TestResetReleasesEverything(t *testing.T) {
	r := newRecordingRealizer()
	m := NewManager(1000, 32, 4.0, r)
	m.Update(2000, 2000, 200)
	require.Equal(t, 49, m.LoadedCount())

	m.Reset()
	assert.Equal(t, 0, m.LoadedCount())
	assert.Empty(t, m.ActiveSet())
	assert.Empty(t, r.realized)
}

func TestNilRealizerChunksCarryNoEntities(t *testing.T) {
	m := NewManager(1000, 32, 4.0, nil)
	require.True(t, m.Load(Coord{0, 0}))
	assert.Empty(t, m.Get(Coord{0, 0}).Entities)
}
