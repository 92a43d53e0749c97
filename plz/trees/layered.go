package trees

import (
	"fmt"
	"math/bits"
)

// LayeredArray is an array-of-arrays forming a complete binary tree over a
// borrowed base slice. It owns layers 1..Depth()-1.
//
// The exported API is read-only; layers are filled through a layerWriter
// handed out only to builders in this package.
type LayeredArray[T any] struct {
	base   []T
	layers [][]T
}

var _ Layers[int] = (*LayeredArray[int])(nil)

// New allocates the layers above base, zero valued.
func New[T any](base []T) *LayeredArray[T] {
	depth := DepthFor(len(base))
	layers := make([][]T, max(depth-1, 0))
	for d := 1; d < depth; d++ {
		layers[d-1] = make([]T, LayerLength(len(base), d))
	}
	return &LayeredArray[T]{base: base, layers: layers}
}

// DepthFor returns ceil(log2(n)) + 1, the number of layers needed to reduce
// n entries to a single root. It is 0 for an empty base.
func DepthFor(n int) int {
	switch {
	case n <= 0:
		return 0
	case n == 1:
		return 1
	}
	return bits.Len(uint(n-1)) + 1
}

// LayerLength returns ceil(n / 2^depth).
func LayerLength(n, depth int) int {
	if n <= 0 {
		return 0
	}
	return ((n - 1) >> depth) + 1
}

// Depth returns the number of layers, counting the base.
func (a *LayeredArray[T]) Depth() int {
	if len(a.base) == 0 {
		return 0
	}
	return len(a.layers) + 1
}

// Width returns the length of the layer at depth.
func (a *LayeredArray[T]) Width(depth int) int {
	return len(a.Layer(depth))
}

// At returns entry idx of the layer at depth.
func (a *LayeredArray[T]) At(depth, idx int) T {
	layer := a.Layer(depth)
	if idx < 0 || idx >= len(layer) {
		panic(fmt.Sprintf("trees: index %d out of range for layer %d of width %d", idx, depth, len(layer)))
	}
	return layer[idx]
}

// Layer returns the layer at depth. Callers must treat it as read-only.
func (a *LayeredArray[T]) Layer(depth int) []T {
	if depth < 0 || depth >= a.Depth() {
		panic(fmt.Sprintf("trees: depth %d out of range for %d layers", depth, a.Depth()))
	}
	if depth == 0 {
		return a.base
	}
	return a.layers[depth-1]
}

// Base returns the borrowed base slice.
func (a *LayeredArray[T]) Base() []T {
	return a.base
}

// Root returns the single entry of the top layer.
func (a *LayeredArray[T]) Root() T {
	return a.At(a.Depth()-1, 0)
}

func (a *LayeredArray[T]) writer() layerWriter[T] {
	return layerWriter[T]{a}
}

// layerWriter is the mutation capability over a LayeredArray.
type layerWriter[T any] struct {
	*LayeredArray[T]
}

var _ Writer[int] = layerWriter[int]{}

func (w layerWriter[T]) Set(depth, idx int, v T) {
	if depth == 0 {
		panic("trees: base layer is read-only")
	}
	w.Layer(depth)[idx] = v
}
