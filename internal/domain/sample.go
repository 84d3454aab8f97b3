package domain

// Rand is the random source used for sampling and random picks.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// PickLines returns up to n lines. Lists with n or fewer items come back
// unchanged and in order; longer lists yield n distinct items chosen
// uniformly at random, in random order.
func PickLines(rng Rand, lines []string, n int) []string {
	if len(lines) == 0 || n <= 0 {
		return nil
	}
	if len(lines) <= n {
		return lines
	}

	idx := make([]int, len(lines))
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: the first n slots end up holding a uniform sample.
	out := make([]string, n)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = lines[idx[i]]
	}
	return out
}

// pickOne returns a uniformly random element of fs. fs must be non-empty.
func pickOne(rng Rand, fs []Facility) Facility {
	return fs[rng.IntN(len(fs))]
}
