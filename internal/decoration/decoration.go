// Package decoration selects the cosmetic environment elements placed on
// a tile. Selection is a pure function of (biome, tile coordinates), so
// the presentation layer can re-derive a chunk's decorations every time it
// is realized.
package decoration

import (
	"github.com/driftline/worldgen/internal/biome"
	"github.com/driftline/worldgen/internal/mathx"
)

// Kind is one decoration sprite kind.
type Kind uint8

const (
	Tree Kind = iota
	Grass
	Rock
	Cactus
	Bush
	Flower
	Mushroom
	DeadTree
)

var kindNames = [...]string{
	"tree",
	"grass",
	"rock",
	"cactus",
	"bush",
	"flower",
	"mushroom",
	"dead_tree",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

type spawn struct {
	kind   Kind
	chance float64
}

// spawnTables lists each biome's candidate decorations with their spawn
// chance, in fixed evaluation order. Ocean and Coastal carry no land
// decorations.
var spawnTables = [biome.Count][]spawn{
	biome.Forest:             {{Tree, 0.3}, {Bush, 0.4}, {Mushroom, 0.2}},
	biome.TropicalRainforest: {{Tree, 0.5}, {Bush, 0.6}, {Flower, 0.1}},
	biome.Grasslands:         {{Grass, 0.7}, {Flower, 0.1}, {Rock, 0.05}},
	biome.Savanna:            {{Grass, 0.5}, {Tree, 0.1}, {Rock, 0.1}},
	biome.Desert:             {{Cactus, 0.1}, {Rock, 0.15}, {DeadTree, 0.05}},
	biome.Mountain:           {{Rock, 0.3}, {DeadTree, 0.1}},
	biome.Alpine:             {{Rock, 0.4}},
	biome.Wetlands:           {{Grass, 0.6}, {Bush, 0.2}, {Mushroom, 0.1}},
	biome.Tundra:             {{Rock, 0.1}},
	biome.Badlands:           {{Rock, 0.2}, {DeadTree, 0.05}},
	biome.Volcanic:           {{Rock, 0.25}},
	biome.Caves:              {{Mushroom, 0.3}, {Rock, 0.4}},
}

// ForTile returns the decoration kinds for one tile. Idempotent: the draw
// sequence is seeded from the tile coordinates alone, so repeated calls
// for the same tile always agree.
func ForTile(b biome.Type, x, y, worldSize int) []Kind {
	if b >= biome.Count {
		return nil
	}
	table := spawnTables[b]
	if len(table) == 0 {
		return nil
	}
	base := uint64(int64(x)*int64(worldSize)+int64(y)) * 12345
	var out []Kind
	for i, s := range table {
		if mathx.Unit(mathx.Mix64(base+uint64(i))) < s.chance {
			out = append(out, s.kind)
		}
	}
	return out
}
