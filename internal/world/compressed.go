package world

import (
	"fmt"

	"github.com/driftline/worldgen/internal/biome"
)

// DefaultSampleStride samples the continuous fields every 8th tile per axis.
const DefaultSampleStride = 8

// CompressedView is a compact, lossy, read-only snapshot of a Map for
// cheap global queries. Biome ids are exact (4 bits each, two per byte in
// x-major scan order); the continuous fields are sampled at a fixed stride
// and read back without interpolation, so those reads are intentionally
// approximate. A view goes stale when its Map is replaced.
type CompressedView struct {
	size           int
	stride         int
	samplesPerAxis int
	biomes         []byte
	elevation      []float64
	temperature    []float64
	moisture       []float64
}

// Compress builds a view from a completed Map.
func Compress(m *Map, stride int) *CompressedView {
	if stride <= 0 {
		stride = DefaultSampleStride
	}
	size := m.size
	total := size * size

	// Pack biome ids two per byte following the x-major linear order:
	// even index in the low nibble, odd index in the high nibble.
	biomes := make([]byte, (total+1)/2)
	for idx := 0; idx < total; idx++ {
		id := m.tiles[idx].Biome.ID()
		if idx%2 == 0 {
			biomes[idx/2] = id
		} else {
			biomes[idx/2] |= id << 4
		}
	}

	perAxis := (size + stride - 1) / stride
	v := &CompressedView{
		size:           size,
		stride:         stride,
		samplesPerAxis: perAxis,
		biomes:         biomes,
		elevation:      make([]float64, 0, perAxis*perAxis),
		temperature:    make([]float64, 0, perAxis*perAxis),
		moisture:       make([]float64, 0, perAxis*perAxis),
	}
	for x := 0; x < size; x += stride {
		for y := 0; y < size; y += stride {
			t := m.tiles[x*size+y]
			v.elevation = append(v.elevation, t.Elevation)
			v.temperature = append(v.temperature, t.Temperature)
			v.moisture = append(v.moisture, t.Moisture)
		}
	}
	return v
}

// Size returns the side length of the underlying world.
func (v *CompressedView) Size() int {
	return v.size
}

// Stride returns the sampling stride of the continuous fields.
func (v *CompressedView) Stride() int {
	return v.stride
}

// BiomeAt unpacks the 4-bit biome id for a tile. An id that does not name
// a known biome decodes to the first enumerated biome rather than failing.
func (v *CompressedView) BiomeAt(x, y int) biome.Type {
	v.checkBounds(x, y)
	idx := x*v.size + y
	packed := v.biomes[idx/2]
	if idx%2 == 1 {
		packed >>= 4
	}
	return biome.FromID(packed & 0x0f)
}

// ElevationAt returns the elevation of the nearest sampled tile at the
// fixed stride. No interpolation is applied.
func (v *CompressedView) ElevationAt(x, y int) float64 {
	v.checkBounds(x, y)
	return v.elevation[v.sampleIndex(x, y)]
}

// TemperatureAt returns the temperature of the nearest sampled tile.
func (v *CompressedView) TemperatureAt(x, y int) float64 {
	v.checkBounds(x, y)
	return v.temperature[v.sampleIndex(x, y)]
}

// MoistureAt returns the moisture of the nearest sampled tile.
func (v *CompressedView) MoistureAt(x, y int) float64 {
	v.checkBounds(x, y)
	return v.moisture[v.sampleIndex(x, y)]
}

func (v *CompressedView) sampleIndex(x, y int) int {
	sx := min(x/v.stride, v.samplesPerAxis-1)
	sy := min(y/v.stride, v.samplesPerAxis-1)
	return sx*v.samplesPerAxis + sy
}

func (v *CompressedView) checkBounds(x, y int) {
	if x < 0 || x >= v.size || y < 0 || y >= v.size {
		panic(fmt.Sprintf("world: compressed read (%d,%d) out of range for size %d", x, y, v.size))
	}
}
