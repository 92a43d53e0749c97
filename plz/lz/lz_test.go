package lz

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/ZanzyTHEbar/parallel-lz77/plz/parallel"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomLPF returns an lpf-shaped array: every entry fits the remaining text.
func randomLPF(rng *rand.Rand, n, maxLen int) []int {
	lpf := make([]int, n)
	for i := range lpf {
		lpf[i] = min(rng.Intn(maxLen+1), n-i)
	}
	return lpf
}

func bruteLPF(text []byte) (lpf, prevOcc []int) {
	n := len(text)
	lpf, prevOcc = make([]int, n), make([]int, n)
	for i := range text {
		prevOcc[i] = None
		for j := 0; j < i; j++ {
			k := 0
			for i+k < n && text[j+k] == text[i+k] {
				k++
			}
			if k > lpf[i] {
				lpf[i], prevOcc[i] = k, j
			}
		}
	}
	return lpf, prevOcc
}

// reconstruct expands factors left to right; sources may overlap the factor itself.
func reconstruct(t *testing.T, text []byte, f *Factorization) []byte {
	t.Helper()
	out := make([]byte, 0, len(text))
	for _, fc := range f.Factors {
		require.Equal(t, len(out), fc.Start)
		if fc.Source == None {
			require.Equal(t, 1, fc.Length)
			out = append(out, text[fc.Start])
			continue
		}
		require.Less(t, fc.Source, fc.Start)
		for k := 0; k < fc.Length; k++ {
			out = append(out, out[fc.Source+k])
		}
	}
	return out
}

func startsOf(f *Factorization) []int {
	out := make([]int, 0, f.Len())
	for _, v := range f.Starts.ToArray() {
		out = append(out, int(v))
	}
	return out
}

func TestSerialStarts(t *testing.T) {
	assert.Nil(t, SerialStarts(nil))
	assert.Equal(t, []int{0}, SerialStarts([]int{0}))
	assert.Equal(t, []int{0, 1, 2, 3, 5}, SerialStarts([]int{0, 0, 0, 2, 1, 1}))
	assert.Equal(t, []int{0, 1}, SerialStarts([]int{0, 4, 3, 2, 1}))
}

func TestBlockSize(t *testing.T) {
	assert.Equal(t, 256, BlockSize(0, 256))
	assert.Equal(t, 256, BlockSize(1<<20, 256))
	assert.Equal(t, 1, BlockSize(1, 0))
	assert.Equal(t, 10, BlockSize(1000, 1))
	assert.Equal(t, 10, BlockSize(1024, 1))
	assert.Equal(t, 11, BlockSize(1025, 1))
}

func TestFactorizeMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for _, n := range []int{1, 2, 5, 63, 256, 257, 1000, 10_000} {
		for _, maxLen := range []int{0, 1, 3, 40} {
			lpf := randomLPF(rng, n, maxLen)
			prevOcc := make([]int, n)
			want := SerialStarts(lpf)

			for _, minBlock := range []int{1, 4, 256} {
				for _, workers := range []int{1, 4} {
					f, err := Factorize(lpf, prevOcc,
						WithMinBlockSize(minBlock), WithExecutor(parallel.New(workers)))
					require.NoError(t, err)
					require.Equal(t, want, startsOf(f),
						"n=%d maxLen=%d minBlock=%d workers=%d", n, maxLen, minBlock, workers)
					require.Equal(t, len(want), f.Len())
				}
			}
		}
	}
}

func TestFactorizeReconstructsText(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	texts := [][]byte{
		[]byte("abracadabra"),
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaa"),
		bytes.Repeat([]byte("xyz"), 50),
	}
	for i := 0; i < 5; i++ {
		text := make([]byte, 300)
		for j := range text {
			text[j] = "ab"[rng.Intn(2)]
		}
		texts = append(texts, text)
	}

	for _, text := range texts {
		lpf, prevOcc := bruteLPF(text)
		f, err := Factorize(lpf, prevOcc, WithMinBlockSize(2), WithExecutor(parallel.New(3)))
		require.NoError(t, err)
		assert.Equal(t, text, reconstruct(t, text, f))
	}
}

func TestFactorizeAbracadabra(t *testing.T) {
	text := []byte("abracadabra")
	lpf, prevOcc := bruteLPF(text)

	f, err := Factorize(lpf, prevOcc)
	require.NoError(t, err)

	assert.Equal(t, []Factor{
		{Start: 0, Length: 1, Source: None},
		{Start: 1, Length: 1, Source: None},
		{Start: 2, Length: 1, Source: None},
		{Start: 3, Length: 1, Source: 0},
		{Start: 4, Length: 1, Source: None},
		{Start: 5, Length: 1, Source: 0},
		{Start: 6, Length: 1, Source: None},
		{Start: 7, Length: 4, Source: 0},
	}, f.Factors)
}

func TestFactorAt(t *testing.T) {
	lpf := []int{0, 0, 3, 2, 1, 0}
	f, err := Factorize(lpf, []int{None, None, 0, 0, 0, None})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 5}, startsOf(f))

	fc, ok := f.FactorAt(4)
	require.True(t, ok)
	assert.Equal(t, Factor{Start: 2, Length: 3, Source: 0}, fc)

	fc, ok = f.FactorAt(0)
	require.True(t, ok)
	assert.Equal(t, 0, fc.Start)

	_, ok = f.FactorAt(6)
	assert.False(t, ok)
	_, ok = f.FactorAt(-1)
	assert.False(t, ok)
}

func TestFactorizeEmpty(t *testing.T) {
	f, err := Factorize(nil, nil)
	require.NoError(t, err)
	assert.Zero(t, f.Len())
	assert.True(t, f.Starts.IsEmpty())
	_, ok := f.FactorAt(0)
	assert.False(t, ok)
}

func TestFactorizeErrors(t *testing.T) {
	_, err := Factorize([]int{0, 0}, []int{None})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Factorize([]int{0, 3}, []int{None, 0})
	assert.ErrorIs(t, err, ErrInvalidLPF)

	_, err = Factorize([]int{-1}, []int{None})
	assert.ErrorIs(t, err, ErrInvalidLPF)
}

func TestFactorizeWithStats(t *testing.T) {
	lpf := make([]int, 4096)
	_, stats, err := FactorizeWithStats(lpf, make([]int, 4096), WithMinBlockSize(64))
	require.NoError(t, err)

	assert.Equal(t, 4096, stats.N)
	assert.Equal(t, 64, stats.BlockSize)
	assert.Equal(t, 64, stats.Blocks)
	// every position starts a literal, so every block start is on the chain
	assert.Equal(t, 64, stats.Marked)
	assert.Equal(t, 7, stats.Rounds)
}

func TestFactorizeLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := Factorize([]int{0, 0, 1}, []int{None, None, 1}, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"lz factorized"`)
}

func BenchmarkFactorize(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	lpf := randomLPF(rng, 1<<20, 12)
	prevOcc := make([]int, len(lpf))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Factorize(lpf, prevOcc); err != nil {
			b.Fatal(err)
		}
	}
}
