package worldgen

import (
	"github.com/driftline/worldgen/internal/biome"
	"github.com/driftline/worldgen/internal/mathx"
)

// maxResourcesPerTile caps the resource set size of one tile.
const maxResourcesPerTile = 3

// AssignResources picks a tile's resource set from its biome catalog
// without any stateful random generator: (seed, x, y) is mixed through a
// 64-bit hash, the hash picks a count in [1, min(3, catalog size)], and
// the set is that prefix of the catalog in its fixed order. Identical
// inputs always yield an identical set.
func AssignResources(seed int64, x, y int, b biome.Type) []biome.Resource {
	catalog := b.Catalog()
	if len(catalog) == 0 {
		return nil
	}
	limit := min(maxResourcesPerTile, len(catalog))
	count := 1 + int(mathx.Hash2(seed, x, y)%uint64(limit))
	out := make([]biome.Resource, count)
	copy(out, catalog[:count])
	return out
}
