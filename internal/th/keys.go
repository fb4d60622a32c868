package th

import "math/rand"

// Inc returns the next string in the lower alpha counting sequence:
// "aaa", "aab", ... "aaz", "aba", and a digit longer once every position
// wraps. Successive calls yield distinct keys with heavily shared prefixes,
// which is exactly the unfriendly case for a hash keyed structure.
func Inc(s string) string {
	var b = []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 'z' {
			b[i]++
			return string(b)
		}
		b[i] = 'a'
	}
	return "a" + string(b)
}

// Shuffle returns a Fisher-Yates shuffled copy of xs, leaving xs alone.
func Shuffle[T any](rnd *rand.Rand, xs []T) []T {
	var out = make([]T, len(xs))
	copy(out, xs)
	for i := len(out) - 1; i > 0; i-- {
		var j = rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
