package worldgen

import (
	"sync"
	"time"
)

// Observer receives generation progress updates. fraction is monotonically
// non-decreasing in [0,1]; stage is a cosmetic label for loading displays.
// The generator serializes calls internally, so observers need no locking
// of their own.
type Observer func(fraction float64, stage string)

type progressUpdate struct {
	tiles int
	stage string
}

// progressAggregator owns all progress state for one generation run.
// Workers report completed tile counts over a channel and a single
// goroutine folds them in and invokes the observer, throttled to one call
// per interval. Keeping the state behind a channel instead of a shared
// counter keeps the hot generation path free of lock contention.
type progressAggregator struct {
	updates  chan progressUpdate
	observer Observer
	total    int
	interval time.Duration
	wg       sync.WaitGroup
}

func newProgressAggregator(total int, observer Observer, interval time.Duration) *progressAggregator {
	p := &progressAggregator{
		updates:  make(chan progressUpdate, 256),
		observer: observer,
		total:    total,
		interval: interval,
	}
	p.wg.Add(1)
	go p.run()
	return p
}

func (p *progressAggregator) run() {
	defer p.wg.Done()
	completed := 0
	stage := ""
	var last time.Time
	for u := range p.updates {
		completed += u.tiles
		if u.stage != "" {
			stage = u.stage
		}
		if p.observer == nil {
			continue
		}
		if now := time.Now(); now.Sub(last) >= p.interval {
			p.observer(float64(completed)/float64(p.total), stage)
			last = now
		}
	}
	if p.observer != nil {
		p.observer(1.0, stageReady)
	}
}

// report may be called concurrently from any worker.
func (p *progressAggregator) report(tiles int, stage string) {
	p.updates <- progressUpdate{tiles: tiles, stage: stage}
}

// finish flushes pending updates and emits the final 1.0 call before
// returning.
func (p *progressAggregator) finish() {
	close(p.updates)
	p.wg.Wait()
}
