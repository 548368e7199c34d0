// Package parallel provides a small bounded worker pool for CPU-bound fan-out.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc submits a unit of work to the pool.
	WorkerFunc func(func())
	// WaitFunc blocks until submitted work has finished. When done is true the
	// pool is closed and must not be used again.
	WaitFunc func(done bool)
	// CancelFunc closes the pool's work queue.
	CancelFunc func()
)

// Pool runs submitted functions on a fixed number of goroutines.
// A pool with a single worker runs every function inline on the caller's goroutine.
type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc
}

// Start creates a pool with numWorkers goroutines.
// numWorkers < 1 uses GOMAXPROCS.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Chunks splits the half-open range [0, n) into at most parts contiguous
// [start, end) spans of near-equal size. Chunk boundaries depend only on n and
// parts, so per-chunk results can be reduced in a fixed order.
func Chunks(n, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}

	spans := make([][2]int, 0, parts)
	size := n / parts
	extra := n % parts
	start := 0
	for i := range parts {
		end := start + size
		if i < extra {
			end++
		}
		spans = append(spans, [2]int{start, end})
		start = end
	}
	return spans
}

// ForEachChunk splits [0, n) into chunks and calls fn for each one on a pool of
// workers, returning once every call has finished. fn receives the chunk index
// so callers can write per-chunk partial results without locking.
func ForEachChunk(n, workers int, fn func(chunk, start, end int)) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	spans := Chunks(n, workers)
	if len(spans) == 0 {
		return
	}
	if len(spans) == 1 {
		fn(0, spans[0][0], spans[0][1])
		return
	}

	pool := Start(len(spans))
	for i, span := range spans {
		pool.Do(func() {
			fn(i, span[0], span[1])
		})
	}
	pool.Wait(true)
}
