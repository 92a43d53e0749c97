package trees

import "fmt"

// Cursor navigates a Layers value by (depth, index). It holds no data of its
// own and must not outlive the layers it reads. Cursors are cheap; give each
// goroutine its own.
//
// Every move is bound-checked and panics when it would leave the tree.
type Cursor[T any] struct {
	layers Layers[T]
	depth  int
	idx    int
}

// NewCursor returns a cursor at (0, 0).
func NewCursor[T any](layers Layers[T]) *Cursor[T] {
	if layers.Depth() == 0 {
		panic("trees: cursor over empty layers")
	}
	return &Cursor[T]{layers: layers}
}

// Depth returns the current layer.
func (c *Cursor[T]) Depth() int { return c.depth }

// Index returns the position within the current layer.
func (c *Cursor[T]) Index() int { return c.idx }

// Width returns the length of the current layer.
func (c *Cursor[T]) Width() int { return c.layers.Width(c.depth) }

// TreeDepth returns the number of layers in the underlying tree.
func (c *Cursor[T]) TreeDepth() int { return c.layers.Depth() }

// Span returns the base index range [lo, hi) covered by the current node.
// hi may exceed the base length for the last node of a layer.
func (c *Cursor[T]) Span() (lo, hi int) {
	return c.idx << c.depth, (c.idx + 1) << c.depth
}

// Value returns the entry under the cursor.
func (c *Cursor[T]) Value() T {
	return c.layers.At(c.depth, c.idx)
}

// ValueAt reads any entry without moving.
func (c *Cursor[T]) ValueAt(depth, idx int) T {
	c.check(depth, idx)
	return c.layers.At(depth, idx)
}

// RootValue returns the entry of the single top node.
func (c *Cursor[T]) RootValue() T {
	return c.layers.At(c.layers.Depth()-1, 0)
}

// LeftChildValue peeks at the left child of the current node.
func (c *Cursor[T]) LeftChildValue() T {
	return c.ValueAt(c.depth-1, c.idx<<1)
}

// RightChildValue peeks at the right child of the current node.
func (c *Cursor[T]) RightChildValue() T {
	return c.ValueAt(c.depth-1, c.idx<<1|1)
}

// HasRightChild reports whether the current node has two children.
func (c *Cursor[T]) HasRightChild() bool {
	return c.depth > 0 && c.idx<<1|1 < c.layers.Width(c.depth-1)
}

// MoveToParent moves one layer up.
func (c *Cursor[T]) MoveToParent() {
	c.MoveTo(c.depth+1, c.idx>>1)
}

// MoveToLeftChild moves one layer down to the left child.
func (c *Cursor[T]) MoveToLeftChild() {
	c.MoveTo(c.depth-1, c.idx<<1)
}

// MoveToRightChild moves one layer down to the right child.
func (c *Cursor[T]) MoveToRightChild() {
	c.MoveTo(c.depth-1, c.idx<<1|1)
}

// MoveLeft moves to the previous node of the current layer.
func (c *Cursor[T]) MoveLeft() {
	c.MoveTo(c.depth, c.idx-1)
}

// MoveRight moves to the next node of the current layer.
func (c *Cursor[T]) MoveRight() {
	c.MoveTo(c.depth, c.idx+1)
}

// MoveTo jumps to an arbitrary position.
func (c *Cursor[T]) MoveTo(depth, idx int) {
	c.check(depth, idx)
	c.depth, c.idx = depth, idx
}

// MoveToRoot jumps to the top node.
func (c *Cursor[T]) MoveToRoot() {
	c.MoveTo(c.layers.Depth()-1, 0)
}

// JumpToBottom moves to the leftmost base entry under the current node.
func (c *Cursor[T]) JumpToBottom() {
	c.MoveTo(0, c.idx<<c.depth)
}

func (c *Cursor[T]) check(depth, idx int) {
	if depth < 0 || depth >= c.layers.Depth() {
		panic(fmt.Sprintf("trees: cursor depth out of range: %d not in [0, %d)", depth, c.layers.Depth()))
	}
	if w := c.layers.Width(depth); idx < 0 || idx >= w {
		panic(fmt.Sprintf("trees: cursor index out of range for layer: %d not in [0, %d) at depth %d", idx, w, depth))
	}
}
