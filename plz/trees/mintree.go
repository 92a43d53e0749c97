package trees

import (
	"cmp"

	"github.com/ZanzyTHEbar/parallel-lz77/plz/parallel"
)

// minTreeGrain is the number of parent cells one task computes.
const minTreeGrain = 1 << 12

// BuildMinTree builds the layers of running minima over base. Layers are
// filled bottom-up one at a time; the cells of a layer are computed in
// parallel since they only read the layer below.
//
// When the layer below has odd length its last entry has no sibling and is
// copied up unchanged.
func BuildMinTree[T cmp.Ordered](base []T, exec *parallel.Executor) *LayeredArray[T] {
	tree := New(base)
	w := tree.writer()
	for d := 1; d < tree.Depth(); d++ {
		fillMinLayer[T](w, d, exec)
	}
	return tree
}

func fillMinLayer[T cmp.Ordered](w Writer[T], depth int, exec *parallel.Executor) {
	child, parent := w.Layer(depth-1), w.Layer(depth)
	paired := len(child) / 2
	exec.Range(paired, minTreeGrain, func(start, end int) {
		for j := start; j < end; j++ {
			parent[j] = min(child[j<<1], child[j<<1|1])
		}
	})
	if len(child)%2 == 1 {
		w.Set(depth, len(parent)-1, child[len(child)-1])
	}
}

// RangeMin returns the minimum of base entries [lo, hi) of a min tree by
// combining at most two nodes per layer. It panics on an empty range.
func RangeMin[T cmp.Ordered](l Layers[T], lo, hi int) T {
	if l.Depth() == 0 || lo < 0 || hi > l.Width(0) || lo >= hi {
		panic("trees: empty or out of range query")
	}
	var (
		res  T
		seen bool
	)
	take := func(v T) {
		if !seen || v < res {
			res, seen = v, true
		}
	}
	for d := 0; lo < hi; d++ {
		if lo&1 == 1 {
			take(l.At(d, lo))
			lo++
		}
		if hi&1 == 1 {
			hi--
			take(l.At(d, hi))
		}
		lo >>= 1
		hi >>= 1
	}
	return res
}
