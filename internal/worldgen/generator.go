// Package worldgen orchestrates deterministic, parallel generation of
// complete world maps from a seed.
package worldgen

import (
	"context"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/driftline/worldgen/internal/biome"
	"github.com/driftline/worldgen/internal/noise"
	"github.com/driftline/worldgen/internal/world"
)

const (
	// DefaultBlockSize is the side length of the square sub-blocks the
	// grid is partitioned into for parallel generation.
	DefaultBlockSize = 64

	// progressInterval bounds the observer invocation rate.
	progressInterval = 50 * time.Millisecond

	stageTerrain = "sculpting terrain"
	stageReady   = "world ready"
)

// Generator produces world maps. Generation is deterministic for a fixed
// (seed, size, octave count) regardless of block size, worker count or
// scheduling order: every tile is a pure function of (seed, x, y) and each
// tile slot is written exactly once.
type Generator struct {
	seed      int64
	size      int
	blockSize int
	octaves   int
	workers   int
	observer  Observer
}

// Option configures a Generator.
type Option func(*Generator)

// WithBlockSize sets the parallel sub-block side length.
func WithBlockSize(n int) Option {
	return func(g *Generator) { g.blockSize = n }
}

// WithOctaves sets the elevation octave count (quality/speed knob).
func WithOctaves(n int) Option {
	return func(g *Generator) { g.octaves = n }
}

// WithWorkers caps the number of concurrent block workers.
func WithWorkers(n int) Option {
	return func(g *Generator) { g.workers = n }
}

// WithObserver attaches a progress observer.
func WithObserver(o Observer) Option {
	return func(g *Generator) { g.observer = o }
}

// New creates a generator for a size×size world.
func New(seed int64, size int, opts ...Option) *Generator {
	g := &Generator{
		seed:      seed,
		size:      size,
		blockSize: DefaultBlockSize,
		octaves:   noise.DefaultOctaves,
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.blockSize <= 0 || g.blockSize > size {
		g.blockSize = size
	}
	if g.workers < 1 {
		g.workers = 1
	}
	return g
}

// Generate builds exactly one world map. Workers fill statically disjoint
// sub-blocks of a shared tile slice, so the merge is just the slice itself
// and needs no synchronization; the only shared mutable state is the
// progress channel.
func (g *Generator) Generate(ctx context.Context) (*world.Map, error) {
	start := time.Now()
	log.Debug("starting world generation",
		"seed", g.seed, "size", g.size, "block_size", g.blockSize,
		"octaves", g.octaves, "workers", g.workers)

	sampler := noise.NewSampler(g.seed, g.size, g.octaves)
	tiles := make([]world.Tile, g.size*g.size)
	progress := newProgressAggregator(g.size*g.size, g.observer, progressInterval)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for bx := 0; bx < g.size; bx += g.blockSize {
		for by := 0; by < g.size; by += g.blockSize {
			bx, by := bx, by
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				done := g.generateBlock(sampler, tiles, bx, by)
				progress.report(done, stageTerrain)
				return nil
			})
		}
	}
	err := eg.Wait()
	progress.finish()
	if err != nil {
		return nil, err
	}

	log.Info("world generation completed",
		"seed", g.seed, "size", g.size, "duration", time.Since(start))
	return world.NewMap(g.size, g.seed, tiles), nil
}

// generateBlock fills one sub-block and returns the number of tiles done.
func (g *Generator) generateBlock(sampler *noise.Sampler, tiles []world.Tile, bx, by int) int {
	endX := min(bx+g.blockSize, g.size)
	endY := min(by+g.blockSize, g.size)
	for x := bx; x < endX; x++ {
		for y := by; y < endY; y++ {
			elevation := sampler.Elevation(x, y)
			temperature := sampler.Temperature(x, y)
			moisture := sampler.Moisture(x, y)
			b := biome.Classify(elevation, temperature, moisture)
			tiles[x*g.size+y] = world.Tile{
				Biome:       b,
				Elevation:   elevation,
				Temperature: temperature,
				Moisture:    moisture,
				Resources:   AssignResources(g.seed, x, y, b),
			}
		}
	}
	return (endX - bx) * (endY - by)
}
