package trace

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// Trace vectorizes a binary raster: it extracts closed contours, arranges
// them into a nesting tree, and runs the analysis stages over every path,
// producing a tree of closed curves. Set bits are foreground.
//
// The input bitmap is not modified; the pipeline works on a clone. A nil
// params uses DefaultParams. A raster with no foreground (or nothing left
// after despeckling) yields an empty trace, not an error.
func Trace(ctx context.Context, bm *Bitmap, params *Params) (*Result, error) {
	if bm == nil {
		return nil, fmt.Errorf("nil bitmap")
	}
	if params == nil {
		params = DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	work := bm.Clone()

	paths, err := pathList(ctx, bm, work, params)
	if err != nil {
		return nil, err
	}

	roots, err := buildTree(ctx, work, paths)
	if err != nil {
		return nil, err
	}

	result := &Result{Roots: roots, Width: bm.Width(), Height: bm.Height()}
	if err := analyzePaths(ctx, result.Paths(), params); err != nil {
		return nil, err
	}
	return result, nil
}

// analyzePaths runs the five analysis stages over every path, fanned out
// across the hardware threads. Paths share no mutable state; the workers
// coordinate only through the atomic counter feeding the progress callback,
// a mutex-guarded last-reported count that keeps progress monotone, and a
// mutex-guarded first-error slot.
func analyzePaths(ctx context.Context, paths []*Path, params *Params) error {
	if len(paths) == 0 {
		return nil
	}

	workers := runtime.NumCPU()
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan *Path)
	var done atomic.Int64
	total := float64(len(paths))

	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	// progress must be monotone even when completions are delivered out of
	// order across workers
	var pmu sync.Mutex
	reported := int64(0)
	report := func(n int64) {
		pmu.Lock()
		if n > reported {
			reported = n
			reportProgress(params, ProgressTracing, float64(n)/total)
		}
		pmu.Unlock()
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				if err := analyzePath(ctx, p, params); err != nil {
					fail(err)
					continue // keep draining so the producer never blocks
				}
				report(done.Add(1))
			}
		}()
	}

	for _, p := range paths {
		jobs <- p
	}
	close(jobs)
	wg.Wait()

	return firstErr
}

// analyzePath runs the per-path stage cascade, checking for cancellation
// at every stage boundary. Caches are released as soon as the last stage
// needing them has run.
func analyzePath(ctx context.Context, p *Path, params *Params) error {
	check := func() error {
		if ctx.Err() != nil {
			return fmt.Errorf("tracing path: %w", ErrCancelled)
		}
		return nil
	}

	if err := check(); err != nil {
		return err
	}
	p.calcSums()
	if err := check(); err != nil {
		return err
	}
	p.calcLon()
	if err := check(); err != nil {
		return err
	}
	p.bestPolygon()
	p.lon = nil
	if err := check(); err != nil {
		return err
	}
	p.adjustVertices()
	p.sums = nil
	if err := check(); err != nil {
		return err
	}
	p.smooth(params.AlphaMax)
	if err := check(); err != nil {
		return err
	}
	if params.OptTolerance > 0 {
		p.optiCurve(params.OptTolerance)
	}
	p.po = nil
	return check()
}
