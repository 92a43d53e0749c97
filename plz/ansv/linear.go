package ansv

import "cmp"

// None marks a position with no strictly smaller neighbor on that side.
const None = -1

// stack is a growable slice used as a LIFO of indices.
type stack struct {
	items []int
}

func newStack(capacity int) *stack {
	return &stack{items: make([]int, 0, capacity)}
}

func (s *stack) push(v int) { s.items = append(s.items, v) }

func (s *stack) peek() int { return s.items[len(s.items)-1] }

func (s *stack) pop() { s.items = s.items[:len(s.items)-1] }

func (s *stack) empty() bool { return len(s.items) == 0 }

func (s *stack) clear() { s.items = s.items[:0] }

// ComputeLinear fills left and right with the nearest strictly smaller
// neighbors of every chunk entry, using a monotonic stack per direction.
// Results are chunk indices plus offset; None means nothing smaller inside
// the chunk, not necessarily nothing smaller anywhere.
//
// Keys equal to the current one are popped along with larger ones, so runs of
// equal values resolve to the nearest strictly smaller key beyond the run.
func ComputeLinear[K cmp.Ordered](chunk []K, left, right []int, offset int) {
	if len(left) != len(chunk) || len(right) != len(chunk) {
		panic("ansv: output length does not match chunk length")
	}
	s := newStack(len(chunk))
	nearest := func(i int) int {
		for !s.empty() && chunk[s.peek()] >= chunk[i] {
			s.pop()
		}
		res := None
		if !s.empty() {
			res = s.peek() + offset
		}
		s.push(i)
		return res
	}

	for i := range chunk {
		left[i] = nearest(i)
	}
	s.clear()
	for i := len(chunk) - 1; i >= 0; i-- {
		right[i] = nearest(i)
	}
}
