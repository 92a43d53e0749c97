// Package parallel provides the fork-join executor shared by every pipeline
// stage. Work is partitioned up front into disjoint chunks, so tasks never
// need locks to write their results.
package parallel

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// Chunk is the contiguous index range [Start, End) handed to one task.
type Chunk struct {
	Index int
	Start int
	End   int
}

// Len returns the number of positions in the chunk.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// Executor runs data-parallel loops on a bounded set of goroutines.
type Executor struct {
	maxWorkers int
}

// New creates an executor. Non-positive worker counts use runtime.GOMAXPROCS(0).
func New(workers int) *Executor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Executor{maxWorkers: workers}
}

// Workers returns the maximum number of goroutines used per loop.
func (e *Executor) Workers() int {
	return e.maxWorkers
}

// ForEach calls fn once per chunk and returns after all calls finish.
// A panic in any task is re-raised in the caller once the others complete.
func (e *Executor) ForEach(chunks []Chunk, fn func(Chunk)) {
	switch len(chunks) {
	case 0:
		return
	case 1:
		fn(chunks[0])
		return
	}
	if e.maxWorkers == 1 {
		for _, c := range chunks {
			fn(c)
		}
		return
	}

	p := pool.New().WithMaxGoroutines(min(e.maxWorkers, len(chunks)))
	for _, c := range chunks {
		p.Go(func() {
			fn(c)
		})
	}
	p.Wait()
}

// Range splits [0, n) into pieces of at least grain positions and runs fn on
// each in parallel. Small ranges run inline.
func (e *Executor) Range(n, grain int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	grain = max(grain, 1)
	if n <= grain || e.maxWorkers == 1 {
		fn(0, n)
		return
	}
	size := max(grain, ceilDiv(n, e.maxWorkers*4))
	e.ForEach(Partition(n, size), func(c Chunk) {
		fn(c.Start, c.End)
	})
}

// Partition splits [0, n) into chunks of size positions; the last may be shorter.
func Partition(n, size int) []Chunk {
	if n <= 0 {
		return nil
	}
	if size <= 0 {
		panic("parallel: chunk size must be positive")
	}
	chunks := make([]Chunk, 0, ceilDiv(n, size))
	for start, idx := 0, 0; start < n; start, idx = start+size, idx+1 {
		chunks = append(chunks, Chunk{Index: idx, Start: start, End: min(start+size, n)})
	}
	return chunks
}

// ChunkSize returns n / (factor * workers), at least 1, so that each worker
// receives about factor chunks.
func ChunkSize(n, workers, factor int) int {
	workers = max(workers, 1)
	factor = max(factor, 1)
	return max(n/(factor*workers), 1)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
