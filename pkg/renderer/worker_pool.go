package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool renders tiles in parallel with a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool; numWorkers <= 0 uses the CPU count
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the concurrency limit
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Run calls fn once per tile. The first error cancels the context passed to
// the remaining calls and is returned once all started calls have finished.
func (wp *WorkerPool) Run(parent context.Context, tiles []*Tile, fn func(ctx context.Context, tile *Tile) error) error {
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(wp.numWorkers)

	for _, tile := range tiles {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return fn(ctx, tile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return parent.Err()
}
