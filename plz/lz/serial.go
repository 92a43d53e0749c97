package lz

// SerialStarts returns the greedy LZ77 factor starts of an lpf array: 0, then
// each start p followed by p + max(1, lpf[p]) until the end of the text.
func SerialStarts(lpf []int) []int {
	var starts []int
	for p := 0; p < len(lpf); p += max(1, lpf[p]) {
		starts = append(starts, p)
	}
	return starts
}
