// Package engine ties generation, the installed world state and the
// streaming components together under a single control flow.
package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/driftline/worldgen/internal/chunk"
	"github.com/driftline/worldgen/internal/spatial"
	"github.com/driftline/worldgen/internal/world"
	"github.com/driftline/worldgen/internal/worldgen"
)

// Config carries the knobs for one engine instance.
type Config struct {
	Seed            int64
	WorldSize       int
	BlockSize       int
	Octaves         int
	SampleStride    int
	ChunkSize       int
	TileSize        float64
	StreamRadius    float64
	SpatialCellSize float64
}

// State couples one generated world with its derived compressed view.
// A State is installed in one step when generation completes and is never
// mutated afterward, only wholesale-replaced, so readers may hold it
// across ticks.
type State struct {
	Map        *world.Map
	Compressed *world.CompressedView
}

// Progress is a snapshot of the current generation run.
type Progress struct {
	Fraction   float64 `json:"fraction"`
	Stage      string  `json:"stage"`
	Generating bool    `json:"generating"`
}

type generationJob struct {
	seed   int64
	result chan *world.Map
}

// Engine owns the installed world state, the in-flight generation job (at
// most one is polled; superseded jobs finish and have their results
// discarded) and the two single-writer streaming components. Reads of the
// installed state are safe from any goroutine; Tick and the components it
// mutates belong to one control goroutine.
type Engine struct {
	cfg    Config
	chunks *chunk.Manager
	index  *spatial.Index
	state  atomic.Pointer[State]

	mu  sync.Mutex
	job *generationJob

	progressMu sync.Mutex
	progress   Progress
}

// New creates an engine. realizer may be nil when no presentation layer
// is attached (for example in the HTTP server).
func New(cfg Config, realizer chunk.Realizer) *Engine {
	return &Engine{
		cfg:    cfg,
		chunks: chunk.NewManager(cfg.WorldSize, cfg.ChunkSize, cfg.TileSize, realizer),
		index:  spatial.NewIndex(cfg.SpatialCellSize),
	}
}

// Generate starts an asynchronous generation run on its own worker pool.
// The previously installed world stays available until the new one
// completes. There is no cancellation: starting a new run while one is in
// flight simply means the older result is discarded when it arrives.
func (e *Engine) Generate(seed int64) {
	e.mu.Lock()
	if e.job != nil {
		log.Warn("superseding in-flight generation", "old_seed", e.job.seed, "new_seed", seed)
	}
	job := &generationJob{seed: seed, result: make(chan *world.Map, 1)}
	e.job = job
	e.mu.Unlock()

	e.setProgress(0, "starting", true)
	gen := worldgen.New(seed, e.cfg.WorldSize,
		worldgen.WithBlockSize(e.cfg.BlockSize),
		worldgen.WithOctaves(e.cfg.Octaves),
		worldgen.WithObserver(func(fraction float64, stage string) {
			e.setProgress(fraction, stage, fraction < 1)
		}),
	)
	go func() {
		m, err := gen.Generate(context.Background())
		if err != nil {
			log.Error("world generation failed", "seed", seed, "error", err)
			return
		}
		job.result <- m
	}()
	log.Info("world generation started", "seed", seed, "size", e.cfg.WorldSize)
}

// PollGeneration checks the in-flight job without blocking. When the job
// has finished, the new map and its compressed view are installed together
// and all chunk state is cleared before the next streaming pass.
func (e *Engine) PollGeneration() bool {
	e.mu.Lock()
	job := e.job
	e.mu.Unlock()
	if job == nil {
		return false
	}

	select {
	case m := <-job.result:
		compressed := world.Compress(m, e.cfg.SampleStride)
		e.state.Store(&State{Map: m, Compressed: compressed})
		e.chunks.Reset()

		e.mu.Lock()
		if e.job == job {
			e.job = nil
		}
		e.mu.Unlock()

		e.setProgress(1, "world ready", false)
		log.Info("world installed", "seed", m.Seed(), "size", m.Size())
		return true
	default:
		return false
	}
}

// Tick runs one control pass: poll for a finished generation, then stream
// chunks around the viewer. Unloads settle before loads within the pass.
func (e *Engine) Tick(viewerX, viewerY float64) {
	e.PollGeneration()
	if e.state.Load() == nil {
		return
	}
	e.chunks.Update(viewerX, viewerY, e.cfg.StreamRadius)
}

// State returns the installed world state, or nil before the first
// generation completes.
func (e *Engine) State() *State {
	return e.state.Load()
}

// Generating reports whether a generation job is in flight.
func (e *Engine) Generating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.job != nil
}

// Progress returns the latest generation progress snapshot.
func (e *Engine) Progress() Progress {
	e.progressMu.Lock()
	defer e.progressMu.Unlock()
	return e.progress
}

func (e *Engine) setProgress(fraction float64, stage string, generating bool) {
	e.progressMu.Lock()
	defer e.progressMu.Unlock()
	// Superseded jobs may report out of order; never move backwards
	// within one run.
	if generating && fraction < e.progress.Fraction && e.progress.Generating {
		e.progress.Stage = stage
		return
	}
	e.progress = Progress{Fraction: fraction, Stage: stage, Generating: generating}
}

// Chunks exposes the streaming manager to the owning control flow.
func (e *Engine) Chunks() *chunk.Manager {
	return e.chunks
}

// Spatial exposes the entity index to the owning control flow.
func (e *Engine) Spatial() *spatial.Index {
	return e.index
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
