package ansv

import (
	"cmp"

	"github.com/ZanzyTHEbar/parallel-lz77/plz/trees"
)

// resolveLeft returns the nearest position left of start whose key is
// strictly smaller than the key at target, or None.
//
// Every position in [start, target] must already be known to hold a key
// >= key[target]. The search climbs from the parent of leaf start, keeping
// the current node entirely left of target, until it finds a node whose
// minimum is smaller; it then descends toward the rightmost such leaf.
func resolveLeft[K cmp.Ordered](c *trees.Cursor[K], target, start int) int {
	key := c.ValueAt(0, target)
	if key == c.RootValue() {
		return None
	}
	if start > target {
		panic("ansv: left search must start at or before its target")
	}

	c.MoveTo(0, start)
	c.MoveToParent()
	for {
		// node must not reach past target
		if _, hi := c.Span(); hi-1 > target {
			if c.Index() == 0 {
				return None
			}
			c.MoveLeft()
		}
		if c.Value() < key {
			break
		}
		if c.Depth() == c.TreeDepth()-1 {
			return None
		}
		c.MoveToParent()
	}

	// nearer smaller values sit to the right
	for c.Depth() > 0 {
		if c.RightChildValue() < key {
			c.MoveToRightChild()
		} else {
			c.MoveToLeftChild()
		}
	}
	return c.Index()
}

// resolveRight mirrors resolveLeft: it returns the nearest position right of
// start whose key is strictly smaller than the key at target, or None.
// Every position in [target, start] must hold a key >= key[target].
func resolveRight[K cmp.Ordered](c *trees.Cursor[K], target, start int) int {
	key := c.ValueAt(0, target)
	if key == c.RootValue() {
		return None
	}
	if start < target {
		panic("ansv: right search must start at or after its target")
	}

	c.MoveTo(0, start)
	c.MoveToParent()
	for {
		// node must not reach before target
		if lo, _ := c.Span(); lo < target {
			if c.Index() == c.Width()-1 {
				return None
			}
			c.MoveRight()
		}
		if c.Value() < key {
			break
		}
		if c.Depth() == c.TreeDepth()-1 {
			return None
		}
		c.MoveToParent()
	}

	// nearer smaller values sit to the left; a node with no right child
	// took its value from the left one
	for c.Depth() > 0 {
		if !c.HasRightChild() || c.LeftChildValue() < key {
			c.MoveToLeftChild()
		} else {
			c.MoveToRightChild()
		}
	}
	return c.Index()
}
