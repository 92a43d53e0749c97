package lpf

import (
	"github.com/ZanzyTHEbar/parallel-lz77/plz/parallel"
)

const rankGrain = 1 << 14

// Ranks inverts a suffix array: rank[sa[r]] = r.
func Ranks(sa []int32, exec *parallel.Executor) []int32 {
	rank := make([]int32, len(sa))
	exec.Range(len(sa), rankGrain, func(start, end int) {
		for r := start; r < end; r++ {
			rank[sa[r]] = int32(r)
		}
	})
	return rank
}

// LCP returns the longest common prefix of every suffix with its predecessor
// in suffix order. lcp[0] is 0.
//
// It is Kasai's algorithm: walking text positions left to right, the match
// length drops by at most one between consecutive suffixes.
func LCP(text []byte, sa []int32, exec *parallel.Executor) []int {
	n := len(text)
	lcp := make([]int, n)
	if n == 0 {
		return lcp
	}
	rank := Ranks(sa, exec)

	k := 0
	for i := 0; i < n; i++ {
		r := rank[i]
		if r == 0 {
			k = 0
			continue
		}
		j := int(sa[r-1])
		for i+k < n && j+k < n && text[i+k] == text[j+k] {
			k++
		}
		lcp[r] = k
		if k > 0 {
			k--
		}
	}
	return lcp
}
