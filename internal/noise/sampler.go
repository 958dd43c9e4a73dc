// Package noise produces the three coherent terrain fields (elevation,
// temperature, moisture) from a single world seed.
package noise

import (
	"github.com/aquilax/go-perlin"
)

const (
	elevationFreq   = 0.01
	temperatureFreq = 0.005
	moistureFreq    = 0.008

	// Weight of the noise term blended into the latitude gradient.
	temperatureNoiseWeight = 0.3

	// DefaultOctaves is the reference-quality elevation octave count.
	// FastOctaves trades detail for speed; both are bit-deterministic
	// for a fixed seed.
	DefaultOctaves = 4
	FastOctaves    = 2
)

// Sampler evaluates the three terrain fields at integer tile coordinates.
// The fields use consecutive seeds (seed, seed+1, seed+2) so they are
// decorrelated but fully reproducible. Every method is a pure function of
// (x, y, seed); a shared Sampler is safe for concurrent reads because the
// underlying noise tables are read-only after construction.
type Sampler struct {
	elevation   *perlin.Perlin
	temperature *perlin.Perlin
	moisture    *perlin.Perlin
	seed        int64
	worldSize   int
	octaves     int
}

// NewSampler creates a sampler for a worldSize×worldSize grid. The alpha=2,
// beta=2, n=3 parameters give good terrain-like noise.
func NewSampler(seed int64, worldSize, octaves int) *Sampler {
	if octaves <= 0 {
		octaves = DefaultOctaves
	}
	return &Sampler{
		elevation:   perlin.NewPerlin(2, 2, 3, seed),
		temperature: perlin.NewPerlin(2, 2, 3, seed+1),
		moisture:    perlin.NewPerlin(2, 2, 3, seed+2),
		seed:        seed,
		worldSize:   worldSize,
		octaves:     octaves,
	}
}

// Seed returns the sampler's base seed.
func (s *Sampler) Seed() int64 {
	return s.seed
}

// Octaves returns the elevation octave count.
func (s *Sampler) Octaves() int {
	return s.octaves
}

// Elevation returns the fractal elevation at a tile, in [0,1]. Amplitude
// halves and frequency doubles per octave.
func (s *Sampler) Elevation(x, y int) float64 {
	sum := 0.0
	amplitude := 1.0
	frequency := elevationFreq
	for i := 0; i < s.octaves; i++ {
		sum += s.elevation.Noise2D(float64(x)*frequency, float64(y)*frequency) * amplitude
		amplitude *= 0.5
		frequency *= 2.0
	}
	return clamp01((sum + 1.0) / 2.0)
}

// Temperature returns the temperature at a tile, in [0,1]: a linear
// latitude gradient (1.0 at y=0, 0.0 at y=worldSize) blended with
// single-octave noise.
func (s *Sampler) Temperature(x, y int) float64 {
	latitude := 1.0 - float64(y)/float64(s.worldSize)
	n := s.temperature.Noise2D(float64(x)*temperatureFreq, float64(y)*temperatureFreq)
	return clamp01(latitude + n*temperatureNoiseWeight)
}

// Moisture returns the single-octave moisture at a tile, in [0,1].
func (s *Sampler) Moisture(x, y int) float64 {
	n := s.moisture.Noise2D(float64(x)*moistureFreq, float64(y)*moistureFreq)
	return clamp01((n + 1.0) / 2.0)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
