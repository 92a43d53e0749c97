// Package ansv computes all nearest smaller values: for every position of an
// array, the nearest position to its left and to its right holding a strictly
// smaller key.
//
// The array is cut into chunks that are scanned independently with a
// monotonic stack. Entries whose answer lies outside their chunk are then
// resolved by walking a min segment tree built over the whole array.
package ansv

import (
	"cmp"
	"time"

	internal "github.com/ZanzyTHEbar/parallel-lz77/plz"
	"github.com/ZanzyTHEbar/parallel-lz77/plz/parallel"
	"github.com/ZanzyTHEbar/parallel-lz77/plz/trees"

	"github.com/rs/zerolog"
)

// Stats describes one computation. Searches count tree walks; entries
// resolved by reusing the previous answer are not counted.
type Stats struct {
	N                int
	Workers          int
	ChunkSize        int
	Chunks           int
	TreeDepth        int
	LeftSearches     int
	RightSearches    int
	SearchesPerChunk []int
	TreeBuild        time.Duration
	Scan             time.Duration
}

// Result holds both neighbor arrays and the stats of the run that built them.
type Result struct {
	Left  []int
	Right []int
	Stats Stats
}

type options struct {
	exec        *parallel.Executor
	workers     int
	chunkSize   int
	chunkFactor int
	logger      zerolog.Logger
}

// Option customizes Compute.
type Option func(*options)

// WithWorkers bounds the number of goroutines; 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithExecutor shares an existing executor. It overrides WithWorkers.
func WithExecutor(e *parallel.Executor) Option {
	return func(o *options) {
		o.exec = e
	}
}

// WithChunkSize fixes the chunk size instead of deriving it from the worker count.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithChunkFactor sets how many chunks each worker receives.
func WithChunkFactor(f int) Option {
	return func(o *options) {
		o.chunkFactor = f
	}
}

// WithLogger sets a custom logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Compute returns the left and right nearest strictly smaller neighbor of
// every entry of data, None where no such neighbor exists.
func Compute[K cmp.Ordered](data []K, opts ...Option) (left, right []int) {
	res := ComputeWithStats(data, opts...)
	return res.Left, res.Right
}

// ComputeWithStats is Compute with per-run statistics.
func ComputeWithStats[K cmp.Ordered](data []K, opts ...Option) Result {
	o := options{
		chunkFactor: internal.DefaultChunkFactor,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.exec == nil {
		o.exec = parallel.New(o.workers)
	}

	n := len(data)
	res := Result{
		Left:  make([]int, n),
		Right: make([]int, n),
		Stats: Stats{N: n, Workers: o.exec.Workers()},
	}
	if n <= 1 {
		for i := range n {
			res.Left[i], res.Right[i] = None, None
		}
		return res
	}

	chunkSize := o.chunkSize
	if chunkSize <= 0 {
		chunkSize = parallel.ChunkSize(n, o.exec.Workers(), o.chunkFactor)
	}
	chunks := parallel.Partition(n, chunkSize)

	start := time.Now()
	tree := trees.BuildMinTree(data, o.exec)
	res.Stats.TreeBuild = time.Since(start)

	leftSearches := make([]int, len(chunks))
	rightSearches := make([]int, len(chunks))

	start = time.Now()
	o.exec.ForEach(chunks, func(c parallel.Chunk) {
		leftSearches[c.Index], rightSearches[c.Index] = resolveChunk(data, tree, c, res.Left, res.Right)
	})
	res.Stats.Scan = time.Since(start)

	res.Stats.ChunkSize = chunkSize
	res.Stats.Chunks = len(chunks)
	res.Stats.TreeDepth = tree.Depth()
	res.Stats.SearchesPerChunk = make([]int, len(chunks))
	for i := range chunks {
		res.Stats.LeftSearches += leftSearches[i]
		res.Stats.RightSearches += rightSearches[i]
		res.Stats.SearchesPerChunk[i] = leftSearches[i] + rightSearches[i]
	}

	o.logger.Debug().
		Int("n", n).
		Int("chunks", len(chunks)).
		Int("chunk_size", chunkSize).
		Int("left_searches", res.Stats.LeftSearches).
		Int("right_searches", res.Stats.RightSearches).
		Dur("tree_build", res.Stats.TreeBuild).
		Dur("scan", res.Stats.Scan).
		Msg("ansv computed")

	return res
}

// resolveChunk runs the stack scan over one chunk and then fills the entries
// it left unresolved. It writes only left[c.Start:c.End] and right[c.Start:c.End].
func resolveChunk[K cmp.Ordered](data []K, tree *trees.LayeredArray[K], c parallel.Chunk, left, right []int) (ls, rs int) {
	if c.Len() == 0 {
		panic("ansv: boundary resolution on empty chunk")
	}
	lo, hi := c.Start, c.End
	ComputeLinear(data[lo:hi], left[lo:hi], right[lo:hi], lo)

	cur := trees.NewCursor[K](tree)

	// Unresolved entries of a chunk have non-increasing keys from left to
	// right, so the answer of one is still valid for the next unless its
	// key is no longer smaller.
	cand := lo
	if lo == 0 {
		cand = None
	}
	for i := lo; i < hi; i++ {
		if left[i] != None {
			continue
		}
		if cand != None && data[cand] >= data[i] {
			cand = resolveLeft(cur, i, cand)
			ls++
		}
		left[i] = cand
	}

	cand = hi - 1
	if hi == len(data) {
		cand = None
	}
	for i := hi - 1; i >= lo; i-- {
		if right[i] != None {
			continue
		}
		if cand != None && data[cand] >= data[i] {
			cand = resolveRight(cur, i, cand)
			rs++
		}
		right[i] = cand
	}
	return ls, rs
}
