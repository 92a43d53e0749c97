package trees

import (
	"testing"

	"github.com/ZanzyTHEbar/parallel-lz77/plz/parallel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorNavigation(t *testing.T) {
	base := []int{5, 3, 8, 1, 9, 2, 7}
	tree := BuildMinTree(base, parallel.New(1))
	c := NewCursor[int](tree)

	require.Equal(t, 0, c.Depth())
	require.Equal(t, 0, c.Index())
	assert.Equal(t, 5, c.Value())
	assert.Equal(t, 7, c.Width())
	assert.Equal(t, 4, c.TreeDepth())

	c.MoveTo(0, 5)
	c.MoveToParent()
	assert.Equal(t, 1, c.Depth())
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, 2, c.Value())
	assert.Equal(t, 9, c.LeftChildValue())
	assert.Equal(t, 2, c.RightChildValue())

	lo, hi := c.Span()
	assert.Equal(t, 4, lo)
	assert.Equal(t, 6, hi)

	c.MoveToRightChild()
	assert.Equal(t, 5, c.Index())
	c.MoveToParent()
	c.MoveToLeftChild()
	assert.Equal(t, 4, c.Index())

	c.MoveToRoot()
	assert.Equal(t, 3, c.Depth())
	assert.Equal(t, 1, c.Value())
	assert.Equal(t, 1, c.RootValue())

	c.MoveToLeftChild()
	c.MoveToRightChild()
	c.JumpToBottom()
	assert.Equal(t, 0, c.Depth())
	assert.Equal(t, 2, c.Index())
}

func TestCursorSiblingMoves(t *testing.T) {
	tree := BuildMinTree([]int{4, 3, 2, 1}, parallel.New(1))
	c := NewCursor[int](tree)

	c.MoveTo(1, 0)
	c.MoveRight()
	assert.Equal(t, 1, c.Value())
	c.MoveLeft()
	assert.Equal(t, 3, c.Value())
	assert.Panics(t, func() { c.MoveLeft() })
}

func TestCursorOddBoundary(t *testing.T) {
	tree := BuildMinTree([]int{4, 6, 1}, parallel.New(1))
	c := NewCursor[int](tree)

	c.MoveTo(1, 1)
	assert.Equal(t, 1, c.Value(), "lone child is copied up")
	assert.False(t, c.HasRightChild())
	assert.Panics(t, func() { c.RightChildValue() })

	c.MoveTo(1, 0)
	assert.True(t, c.HasRightChild())
}

func TestCursorBoundsPanics(t *testing.T) {
	tree := BuildMinTree([]int{1, 2, 3, 4, 5}, parallel.New(1))

	tests := []struct {
		name string
		move func(c *Cursor[int])
	}{
		{"parent of root", func(c *Cursor[int]) { c.MoveToRoot(); c.MoveToParent() }},
		{"child of leaf", func(c *Cursor[int]) { c.MoveToLeftChild() }},
		{"index past width", func(c *Cursor[int]) { c.MoveTo(1, 3) }},
		{"negative index", func(c *Cursor[int]) { c.MoveTo(0, -1) }},
		{"depth past top", func(c *Cursor[int]) { c.MoveTo(4, 0) }},
		{"peek below leaf", func(c *Cursor[int]) { c.RightChildValue() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor[int](tree)
			assert.Panics(t, func() { tt.move(c) })
		})
	}
}

func TestCursorPanicMessage(t *testing.T) {
	c := NewCursor[int](New([]int{1, 2}))
	assert.PanicsWithValue(t,
		"trees: cursor index out of range for layer: 2 not in [0, 2) at depth 0",
		func() { c.MoveTo(0, 2) })
}

func TestNewCursorEmpty(t *testing.T) {
	assert.Panics(t, func() { NewCursor[int](New[int](nil)) })
}
