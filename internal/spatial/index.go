// Package spatial provides a uniform-grid broad-phase index over dynamic
// entity positions. The grid is independent of terrain chunking.
package spatial

import (
	"math"
)

// DefaultCellSize suits typical interaction radii.
const DefaultCellSize = 64.0

// EntityID identifies one tracked entity.
type EntityID uint64

type cell struct {
	x, y int
}

// Index maps grid cells to the entities inside them. It is mutated only
// by the owning control tick; concurrent writers are not supported.
type Index struct {
	cellSize float64
	grid     map[cell]map[EntityID]struct{}
}

// NewIndex creates an index with the given cell size (world units).
func NewIndex(cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Index{
		cellSize: cellSize,
		grid:     make(map[cell]map[EntityID]struct{}),
	}
}

func (i *Index) cellFor(x, y float64) cell {
	return cell{
		x: int(math.Floor(x / i.cellSize)),
		y: int(math.Floor(y / i.cellSize)),
	}
}

// Insert adds the entity to the cell containing position.
func (i *Index) Insert(e EntityID, x, y float64) {
	c := i.cellFor(x, y)
	set, ok := i.grid[c]
	if !ok {
		set = make(map[EntityID]struct{})
		i.grid[c] = set
	}
	set[e] = struct{}{}
}

// Remove deletes the entity from the cell containing position. Removing
// an entity that is not there is a no-op.
func (i *Index) Remove(e EntityID, x, y float64) {
	c := i.cellFor(x, y)
	set, ok := i.grid[c]
	if !ok {
		return
	}
	delete(set, e)
	if len(set) == 0 {
		delete(i.grid, c)
	}
}

// Move relocates an entity in one call. Every position change must go
// through Move (or a paired Remove+Insert); a missed removal leaves a
// stale entry that corrupts queries, which is why the combined operation
// exists.
func (i *Index) Move(e EntityID, oldX, oldY, newX, newY float64) {
	from := i.cellFor(oldX, oldY)
	to := i.cellFor(newX, newY)
	if from == to {
		// Still ensure presence: Move doubles as Insert for entities
		// whose old position was never indexed.
		i.Insert(e, newX, newY)
		return
	}
	i.Remove(e, oldX, oldY)
	i.Insert(e, newX, newY)
}

// QueryRadius returns every entity in cells whose bounds intersect the box
// around (x, y) with half-width radius. Broad-phase only: callers apply
// exact distance filtering.
func (i *Index) QueryRadius(x, y, radius float64) []EntityID {
	minCell := i.cellFor(x-radius, y-radius)
	maxCell := i.cellFor(x+radius, y+radius)
	var out []EntityID
	for cx := minCell.x; cx <= maxCell.x; cx++ {
		for cy := minCell.y; cy <= maxCell.y; cy++ {
			for e := range i.grid[cell{x: cx, y: cy}] {
				out = append(out, e)
			}
		}
	}
	return out
}

// Len returns the number of tracked entities.
func (i *Index) Len() int {
	n := 0
	for _, set := range i.grid {
		n += len(set)
	}
	return n
}

// Clear drops all entries.
func (i *Index) Clear() {
	i.grid = make(map[cell]map[EntityID]struct{})
}
