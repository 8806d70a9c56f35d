// internal/solver/entropy.go
//
// Expected-information-gain scoring.
package solver

import "math"

// InformationGain returns the Shannon entropy, in bits, of the partition
// of possible induced by scoring guess against each word. This is the
// expected reduction in uncertainty about the answer if guess were played.
//
// Range is [0, log2(len(possible))]; 0 when every word yields the same
// pattern (and, by convention, for an empty set); the maximum when the
// guess splits possible into singletons.
func InformationGain(guess Word, possible []Word) float64 {
	n := len(possible)
	if n == 0 {
		return 0
	}
	groups := make(map[Pattern]int)
	for _, w := range possible {
		groups[Score(guess, w)]++
	}
	var bits float64
	total := float64(n)
	for _, c := range groups {
		p := float64(c) / total
		bits -= p * math.Log2(p)
	}
	return bits
}
