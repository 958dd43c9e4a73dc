package chunk

import (
	"math"

	"github.com/charmbracelet/log"
)

// Manager owns all chunk streaming state: the coordinate→Chunk mapping and
// the active coordinate set, with at most one Chunk per coordinate. It is
// mutated exclusively by the single control tick that owns presentation
// entities; concurrent writers are not supported.
type Manager struct {
	worldSize int
	chunkSize int
	tileSize  float64
	realizer  Realizer
	loaded    map[Coord]*Chunk
	active    map[Coord]struct{}
}

// NewManager creates a manager for a worldSize×worldSize tile grid.
// realizer may be nil, in which case chunks carry no entities.
func NewManager(worldSize, chunkSize int, tileSize float64, realizer Realizer) *Manager {
	if chunkSize <= 0 {
		chunkSize = DefaultSize
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &Manager{
		worldSize: worldSize,
		chunkSize: chunkSize,
		tileSize:  tileSize,
		realizer:  realizer,
		loaded:    make(map[Coord]*Chunk),
		active:    make(map[Coord]struct{}),
	}
}

// ChunkWorldSize returns the world-space width of one chunk.
func (m *Manager) ChunkWorldSize() float64 {
	return float64(m.chunkSize) * m.tileSize
}

// chunksPerAxis is the number of chunk columns/rows intersecting the world.
func (m *Manager) chunksPerAxis() int {
	return (m.worldSize + m.chunkSize - 1) / m.chunkSize
}

// VisibleChunkSet computes the target chunk set for a viewer: every
// coordinate within ceil(radius/chunkWorldSize)+1 rings of the viewer's
// chunk, intersected with the chunk coordinates that actually intersect
// the world.
func (m *Manager) VisibleChunkSet(viewerX, viewerY, radius float64) map[Coord]struct{} {
	cw := m.ChunkWorldSize()
	cx := int(math.Floor(viewerX / cw))
	cy := int(math.Floor(viewerY / cw))
	rings := int(math.Ceil(radius/cw)) + 1
	n := m.chunksPerAxis()

	target := make(map[Coord]struct{})
	for x := cx - rings; x <= cx+rings; x++ {
		if x < 0 || x >= n {
			continue
		}
		for y := cy - rings; y <= cy+rings; y++ {
			if y < 0 || y >= n {
				continue
			}
			target[Coord{X: x, Y: y}] = struct{}{}
		}
	}
	return target
}

// BoundsOf converts a chunk coordinate to its inclusive-exclusive tile
// range, clamped to [0, worldSize). Coordinates entirely outside the world
// yield an empty range, not an error.
func (m *Manager) BoundsOf(c Coord) Bounds {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > m.worldSize {
			return m.worldSize
		}
		return v
	}
	return Bounds{
		StartX: clamp(c.X * m.chunkSize),
		StartY: clamp(c.Y * m.chunkSize),
		EndX:   clamp((c.X + 1) * m.chunkSize),
		EndY:   clamp((c.Y + 1) * m.chunkSize),
	}
}

// Load realizes one chunk. Loading an already-loaded coordinate, or one
// whose tile range is empty, is a no-op. The chunk entry and its entities
// appear together, so the load is atomic from the caller's view.
func (m *Manager) Load(c Coord) bool {
	if _, ok := m.loaded[c]; ok {
		return false
	}
	b := m.BoundsOf(c)
	if b.Empty() {
		return false
	}
	ch := &Chunk{Coord: c, Loaded: true}
	if m.realizer != nil {
		ch.Entities = m.realizer.Realize(c, b)
	}
	m.loaded[c] = ch
	return true
}

// Unload releases one chunk. Unloading an absent coordinate is a no-op.
func (m *Manager) Unload(c Coord) bool {
	ch, ok := m.loaded[c]
	if !ok {
		return false
	}
	if m.realizer != nil {
		m.realizer.Release(ch.Entities)
	}
	delete(m.loaded, c)
	return true
}

// Update runs one streaming pass for the viewer: chunks that dropped out
// of the target set are unloaded first, then newly targeted chunks are
// loaded. Both settle before Update returns, so a render pass reading
// chunk state after the tick sees a consistent set.
func (m *Manager) Update(viewerX, viewerY, radius float64) (loaded, unloaded int) {
	target := m.VisibleChunkSet(viewerX, viewerY, radius)

	for c := range m.loaded {
		if _, ok := target[c]; !ok {
			if m.Unload(c) {
				unloaded++
			}
		}
	}
	for c := range target {
		if m.Load(c) {
			loaded++
		}
	}
	m.active = target

	if loaded > 0 || unloaded > 0 {
		log.Debug("chunk streaming pass",
			"loaded", loaded, "unloaded", unloaded, "active", len(m.active))
	}
	return loaded, unloaded
}

// Reset unconditionally releases every chunk. Called when the world is
// wholesale-replaced, before the next streaming pass.
func (m *Manager) Reset() {
	for c := range m.loaded {
		m.Unload(c)
	}
	m.active = make(map[Coord]struct{})
	log.Debug("chunk state cleared")
}

// IsLoaded reports whether a coordinate currently has a Chunk.
func (m *Manager) IsLoaded(c Coord) bool {
	_, ok := m.loaded[c]
	return ok
}

// Get returns the Chunk for a coordinate, or nil.
func (m *Manager) Get(c Coord) *Chunk {
	return m.loaded[c]
}

// LoadedCount returns the number of materialized chunks.
func (m *Manager) LoadedCount() int {
	return len(m.loaded)
}

// ActiveSet returns the coordinates targeted by the last streaming pass.
// The returned map must not be mutated.
func (m *Manager) ActiveSet() map[Coord]struct{} {
	return m.active
}
