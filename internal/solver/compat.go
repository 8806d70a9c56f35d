// internal/solver/compat.go
//
// Compatibility predicate and hard-mode legality.
package solver

// Entry is one played guess together with the feedback observed for it.
type Entry struct {
	Guess    Word
	Feedback Pattern
}

// Compatible reports whether candidate could be the answer that produced
// observed when guess was played. Defined as oracle equality: candidate is
// compatible iff scoring the guess against it reproduces the observed
// pattern, which handles every duplicate-letter corner case by
// construction.
func Compatible(candidate, guess Word, observed Pattern) bool {
	return Score(guess, candidate) == observed
}

// LegalGuess reports whether candidate is an admissible hard-mode guess:
// it must be compatible with every entry in history. Vacuously true for an
// empty history.
func LegalGuess(candidate Word, history []Entry) bool {
	for _, e := range history {
		if !Compatible(candidate, e.Guess, e.Feedback) {
			return false
		}
	}
	return true
}

// Filter returns the subset of words compatible with the (guess, observed)
// observation, preserving order. Pure; the input slice is not modified.
func Filter(words []Word, guess Word, observed Pattern) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		if Compatible(w, guess, observed) {
			out = append(out, w)
		}
	}
	return out
}
