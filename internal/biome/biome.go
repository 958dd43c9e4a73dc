// Package biome defines the terrain biome categories, their resource
// catalogs and the classification of terrain fields into biomes.
package biome

// Type identifies one biome category. The numeric values are stable:
// they are packed as 4-bit ids in the compressed world view, so new
// biomes must be appended, never reordered.
type Type uint8

const (
	Ocean Type = iota
	Coastal
	Desert
	Savanna
	Grasslands
	Forest
	TropicalRainforest
	Mountain
	Alpine
	Tundra
	Wetlands
	Caves
	Volcanic
	Badlands

	// Count is the number of defined biome categories.
	Count = 14
)

var typeNames = [Count]string{
	"ocean",
	"coastal",
	"desert",
	"savanna",
	"grasslands",
	"forest",
	"tropical_rainforest",
	"mountain",
	"alpine",
	"tundra",
	"wetlands",
	"caves",
	"volcanic",
	"badlands",
}

func (t Type) String() string {
	if t >= Count {
		return "unknown"
	}
	return typeNames[t]
}

// ID returns the stable 4-bit id used by the compressed world view.
func (t Type) ID() uint8 {
	return uint8(t)
}

// FromID maps a packed 4-bit id back to a biome. Ids outside the defined
// range (corrupt data) fall back to the first enumerated biome instead of
// failing.
func FromID(id uint8) Type {
	if id >= Count {
		return Ocean
	}
	return Type(id)
}

// Resource is one gatherable resource kind.
type Resource uint8

const (
	Water Resource = iota
	Wood
	Stone
	Fish
	Berries
	Herbs
	Minerals
	Salt
	Ice
	Mushrooms
	Clay
	Sulfur
)

var resourceNames = [...]string{
	"water",
	"wood",
	"stone",
	"fish",
	"berries",
	"herbs",
	"minerals",
	"salt",
	"ice",
	"mushrooms",
	"clay",
	"sulfur",
}

func (r Resource) String() string {
	if int(r) >= len(resourceNames) {
		return "unknown"
	}
	return resourceNames[r]
}

// catalogs holds the fixed ordered resource catalog per biome. Resource
// assignment takes prefixes of these lists, so the order is part of the
// world format.
var catalogs = [Count][]Resource{
	Ocean:              {Water, Fish, Salt},
	Coastal:            {Water, Fish, Salt, Clay},
	Desert:             {Stone, Minerals, Salt},
	Savanna:            {Herbs, Stone},
	Grasslands:         {Herbs, Berries},
	Forest:             {Wood, Berries, Herbs},
	TropicalRainforest: {Wood, Berries, Water},
	Mountain:           {Stone, Minerals, Water},
	Alpine:             {Stone, Ice, Herbs},
	Tundra:             {Ice, Fish},
	Wetlands:           {Water, Clay, Fish},
	Caves:              {Minerals, Stone, Mushrooms},
	Volcanic:           {Minerals, Sulfur, Stone},
	Badlands:           {Stone, Minerals},
}

// Catalog returns the biome's fixed ordered resource catalog. Callers must
// not mutate the returned slice.
func (t Type) Catalog() []Resource {
	if t >= Count {
		return nil
	}
	return catalogs[t]
}

// CanTransitionTo reports whether two biomes may share an edge in a
// plausible world layout. Caves are underground and never border surface
// biomes.
func (t Type) CanTransitionTo(other Type) bool {
	switch t {
	case Ocean:
		return other == Coastal
	case Coastal:
		return other == Ocean || other == Grasslands || other == Wetlands
	case Desert:
		return other == Savanna || other == Badlands
	case Savanna:
		return other == Desert || other == Grasslands
	case Grasslands:
		return other == Savanna || other == Forest || other == Coastal
	case Forest:
		return other == Grasslands || other == Mountain || other == TropicalRainforest || other == Wetlands
	case TropicalRainforest:
		return other == Forest || other == Wetlands
	case Mountain:
		return other == Forest || other == Alpine || other == Volcanic
	case Alpine:
		return other == Mountain || other == Tundra
	case Tundra:
		return other == Alpine || other == Grasslands
	case Wetlands:
		return other == Forest || other == Coastal || other == TropicalRainforest
	case Caves:
		return false
	case Volcanic:
		return other == Mountain || other == Badlands
	case Badlands:
		return other == Desert || other == Volcanic
	default:
		return false
	}
}
