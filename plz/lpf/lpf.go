// Package lpf derives the longest previous factor of every text position
// from its suffix array and the nearest smaller values of that array.
//
// For the suffix starting at p, the longest match among earlier-starting
// suffixes is found at one of the two lexicographic neighbours with a smaller
// start: the nearest smaller suffix-array value on each side of p's rank.
package lpf

import (
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/parallel-lz77/plz/ansv"
	"github.com/ZanzyTHEbar/parallel-lz77/plz/parallel"
	"github.com/ZanzyTHEbar/parallel-lz77/plz/trees"
)

// None marks a position with no previous occurrence.
const None = ansv.None

const lpfGrain = 1 << 12

// ErrLengthMismatch is returned when text, suffix array and neighbour arrays differ in length.
var ErrLengthMismatch = errors.New("lpf: input lengths differ")

// Compute returns lpf and prevOcc indexed by text position. lpf[p] is the
// length of the longest prefix of text[p:] that also starts at some q < p,
// and prevOcc[p] is such a q, or None when lpf[p] is 0.
//
// left and right are the nearest smaller values of sa, indexed by rank. When
// both neighbours give the same length the left one is reported.
func Compute(text []byte, sa []int32, left, right []int, exec *parallel.Executor) (lpf, prevOcc []int, err error) {
	n := len(text)
	if len(sa) != n || len(left) != n || len(right) != n {
		return nil, nil, fmt.Errorf("%w: text=%d sa=%d left=%d right=%d",
			ErrLengthMismatch, n, len(sa), len(left), len(right))
	}

	lpf = make([]int, n)
	prevOcc = make([]int, n)
	if n == 0 {
		return lpf, prevOcc, nil
	}

	lcp := trees.BuildMinTree(LCP(text, sa, exec), exec)

	exec.Range(n, lpfGrain, func(start, end int) {
		for r := start; r < end; r++ {
			best, src := 0, None
			if l := left[r]; l != None {
				if m := trees.RangeMin[int](lcp, l+1, r+1); m > 0 {
					best, src = m, int(sa[l])
				}
			}
			if g := right[r]; g != None {
				if m := trees.RangeMin[int](lcp, r+1, g+1); m > best {
					best, src = m, int(sa[g])
				}
			}
			p := sa[r]
			lpf[p], prevOcc[p] = best, src
		}
	})
	return lpf, prevOcc, nil
}
