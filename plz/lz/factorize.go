// Package lz turns a longest-previous-factor array into the greedy LZ77
// factorization of its text.
//
// The factor starts form a single chain 0 -> p + max(1, lpf[p]) -> ... .
// Following it is inherently sequential, so the array is cut into blocks
// and, for every block start, the chain is followed until it lands exactly
// on another block start. Pointer jumping over those block links then marks
// the blocks whose start lies on the chain from 0, and each marked block
// fills in its own stretch of the chain independently.
package lz

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"sync/atomic"
	"time"

	internal "github.com/ZanzyTHEbar/parallel-lz77/plz"
	"github.com/ZanzyTHEbar/parallel-lz77/plz/parallel"

	roaring "github.com/RoaringBitmap/roaring"
	"github.com/rs/zerolog"
)

// None is the Source of a literal factor.
const None = -1

const pointerGrain = 1 << 14

var (
	// ErrLengthMismatch is returned when lpf and prevOcc differ in length.
	ErrLengthMismatch = errors.New("lz: lpf and prevOcc lengths differ")
	// ErrInputTooLarge is returned when positions do not fit a 32-bit bitmap.
	ErrInputTooLarge = errors.New("lz: input exceeds 32-bit positions")
	// ErrInvalidLPF is returned when a factor would run past the end of the text.
	ErrInvalidLPF = errors.New("lz: lpf entry exceeds remaining text")
)

// Factor is one phrase of the factorization. Source is the start of an
// earlier occurrence of the phrase, or None for a single literal byte.
type Factor struct {
	Start  int
	Length int
	Source int
}

// Factorization is the greedy LZ77 parse of a text.
type Factorization struct {
	// Starts holds the start position of every factor.
	Starts  *roaring.Bitmap
	Factors []Factor
}

// Len returns the number of factors.
func (f *Factorization) Len() int {
	return len(f.Factors)
}

// FactorAt returns the factor covering text position pos.
func (f *Factorization) FactorAt(pos int) (Factor, bool) {
	if pos < 0 || uint64(pos) > math.MaxUint32 || len(f.Factors) == 0 {
		return Factor{}, false
	}
	idx := int(f.Starts.Rank(uint32(pos))) - 1
	if idx < 0 {
		return Factor{}, false
	}
	fc := f.Factors[idx]
	if pos >= fc.Start+fc.Length {
		return Factor{}, false
	}
	return fc, true
}

// Stats describes one factorization run.
type Stats struct {
	N         int
	BlockSize int
	Blocks    int
	Marked    int
	Rounds    int
	Elapsed   time.Duration
}

type options struct {
	exec         *parallel.Executor
	minBlockSize int
	logger       zerolog.Logger
}

// Option customizes Factorize.
type Option func(*options)

// WithExecutor sets the executor used for the parallel steps.
func WithExecutor(e *parallel.Executor) Option {
	return func(o *options) {
		o.exec = e
	}
}

// WithMinBlockSize sets the lower bound of the block size.
func WithMinBlockSize(n int) Option {
	return func(o *options) {
		o.minBlockSize = n
	}
}

// WithLogger sets a custom logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// BlockSize returns max(ceil(log2 n), minBlockSize), at least 1.
func BlockSize(n, minBlockSize int) int {
	l2 := 0
	if n > 1 {
		l2 = bits.Len(uint(n - 1))
	}
	return max(l2, minBlockSize, 1)
}

// Factorize computes the greedy LZ77 factorization described by lpf and prevOcc.
func Factorize(lpf, prevOcc []int, opts ...Option) (*Factorization, error) {
	f, _, err := FactorizeWithStats(lpf, prevOcc, opts...)
	return f, err
}

// FactorizeWithStats is Factorize with per-run statistics.
func FactorizeWithStats(lpf, prevOcc []int, opts ...Option) (*Factorization, Stats, error) {
	o := options{
		minBlockSize: internal.DefaultLZMinBlockSize,
		logger:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.exec == nil {
		o.exec = parallel.New(0)
	}

	n := len(lpf)
	stats := Stats{N: n}
	if len(prevOcc) != n {
		return nil, stats, fmt.Errorf("%w: lpf=%d prevOcc=%d", ErrLengthMismatch, n, len(prevOcc))
	}
	if uint64(n) > math.MaxUint32 {
		return nil, stats, fmt.Errorf("%w: %d positions", ErrInputTooLarge, n)
	}
	for p, l := range lpf {
		if l < 0 || l > n-p {
			return nil, stats, fmt.Errorf("%w: lpf[%d]=%d with %d positions left", ErrInvalidLPF, p, l, n-p)
		}
	}
	if n == 0 {
		return &Factorization{Starts: roaring.New()}, stats, nil
	}

	start := time.Now()
	pointers := make([]int, n)
	o.exec.Range(n, pointerGrain, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			pointers[i] = min(n, i+max(lpf[i], 1))
		}
	})

	bs := BlockSize(n, o.minBlockSize)
	sn := (n + bs - 1) / bs

	groups := parallel.Partition(sn, parallel.ChunkSize(sn, o.exec.Workers(), internal.DefaultChunkFactor))

	// next[b] is the block whose start the chain from block b lands on, or
	// sn when it runs off the end first.
	next := make([]int, sn+1)
	o.exec.ForEach(groups, func(g parallel.Chunk) {
		for b := g.Start; b < g.End; b++ {
			j := pointers[b*bs]
			for j%bs != 0 && j != n {
				j = pointers[j]
			}
			next[b] = j / bs
			if j == n {
				next[b] = sn
			}
		}
	})
	next[sn] = sn

	marked := markReachable(next, groups, o.exec)

	// Stretches filled by different marked blocks never overlap, but one
	// stretch may cross into later blocks, so each group keeps its own set.
	sets := newStartSets(len(groups))
	o.exec.ForEach(groups, func(g parallel.Chunk) {
		for b := g.Start; b < g.End; b++ {
			if !marked[b].Load() {
				continue
			}
			sets.add(g.Index, b*bs)
			for j := pointers[b*bs]; j%bs != 0 && j != n; j = pointers[j] {
				sets.add(g.Index, j)
			}
		}
	})
	starts := sets.union(o.exec.Workers())

	f := &Factorization{
		Starts:  starts,
		Factors: make([]Factor, 0, starts.GetCardinality()),
	}
	it := starts.Iterator()
	for it.HasNext() {
		p := int(it.Next())
		fc := Factor{Start: p, Length: pointers[p] - p, Source: None}
		if lpf[p] > 0 {
			fc.Source = prevOcc[p]
		}
		f.Factors = append(f.Factors, fc)
	}

	stats.BlockSize = bs
	stats.Blocks = sn
	stats.Rounds = rounds(sn)
	for i := 0; i < sn; i++ {
		if marked[i].Load() {
			stats.Marked++
		}
	}
	stats.Elapsed = time.Since(start)

	o.logger.Debug().
		Int("n", n).
		Int("block_size", bs).
		Int("blocks", sn).
		Int("marked", stats.Marked).
		Int("factors", len(f.Factors)).
		Dur("elapsed", stats.Elapsed).
		Msg("lz factorized")

	return f, stats, nil
}

// markReachable returns, for every block, whether the chain of block links
// from block 0 reaches it. Each round doubles the hop length of next, so
// after round d every block within 2^(d+1) hops of block 0 is marked.
func markReachable(next []int, groups []parallel.Chunk, exec *parallel.Executor) []atomic.Bool {
	sn := len(next) - 1
	marked := make([]atomic.Bool, sn+1)
	marked[0].Store(true)

	cur, jumped := next, make([]int, sn+1)
	jumped[sn] = sn
	for d := rounds(sn); d > 0; d-- {
		exec.ForEach(groups, func(g parallel.Chunk) {
			for b := g.Start; b < g.End; b++ {
				j := cur[b]
				if marked[b].Load() {
					marked[j].Store(true)
				}
				jumped[b] = cur[j]
			}
		})
		cur, jumped = jumped, cur
	}
	return marked
}

func rounds(blocks int) int {
	if blocks <= 1 {
		return 1
	}
	return bits.Len(uint(blocks-1)) + 1
}
