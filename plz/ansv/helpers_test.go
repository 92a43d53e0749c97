package ansv

import (
	"cmp"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// bruteForce is the quadratic reference for nearest strictly smaller values.
func bruteForce[K cmp.Ordered](data []K) (left, right []int) {
	n := len(data)
	left, right = make([]int, n), make([]int, n)
	for i := range data {
		left[i], right[i] = None, None
		for j := i - 1; j >= 0; j-- {
			if data[j] < data[i] {
				left[i] = j
				break
			}
		}
		for j := i + 1; j < n; j++ {
			if data[j] < data[i] {
				right[i] = j
				break
			}
		}
	}
	return left, right
}

// requireValid checks the validity and sentinel-completeness properties directly.
func requireValid[K cmp.Ordered](t *testing.T, data []K, left, right []int) {
	t.Helper()
	require.Len(t, left, len(data))
	require.Len(t, right, len(data))
	for i := range data {
		from := 0
		if l := left[i]; l != None {
			require.Less(t, data[l], data[i], "left[%d]=%d is not smaller", i, l)
			require.Less(t, l, i)
			from = l + 1
		}
		for j := from; j < i; j++ {
			require.GreaterOrEqual(t, data[j], data[i], "left[%d]=%d skips smaller %d", i, left[i], j)
		}

		to := len(data)
		if r := right[i]; r != None {
			require.Less(t, data[r], data[i], "right[%d]=%d is not smaller", i, r)
			require.Greater(t, r, i)
			to = r
		}
		for j := i + 1; j < to; j++ {
			require.GreaterOrEqual(t, data[j], data[i], "right[%d]=%d skips smaller %d", i, right[i], j)
		}
	}
}

func permutation(rng *rand.Rand, n int) []uint32 {
	out := make([]uint32, n)
	for i, v := range rng.Perm(n) {
		out[i] = uint32(v)
	}
	return out
}

func randomKeys(rng *rand.Rand, n, limit int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(rng.Intn(limit))
	}
	return out
}
