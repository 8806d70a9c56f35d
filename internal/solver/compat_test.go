package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWords(t *testing.T, ss ...string) []Word {
	t.Helper()
	out := make([]Word, len(ss))
	for i, s := range ss {
		out[i] = mustWord(t, s)
	}
	return out
}

func TestCompatibleCharacterizesOraclePreimage(t *testing.T) {
	words := testWords(t, "APPLE", "BERRY", "CRISP", "DOUGH", "EAGLE", "SPEED", "ERASE")

	for _, guess := range words {
		for _, answer := range words {
			observed := Score(guess, answer)

			// The true answer is always compatible with its own feedback.
			assert.True(t, Compatible(answer, guess, observed),
				"answer %s incompatible with feedback(%s, %s)", answer, guess, answer)

			// And compatibility holds exactly for candidates that reproduce
			// the observed pattern.
			for _, candidate := range words {
				want := Score(guess, candidate) == observed
				assert.Equal(t, want, Compatible(candidate, guess, observed),
					"candidate=%s guess=%s answer=%s", candidate, guess, answer)
			}
		}
	}
}

func TestLegalGuess(t *testing.T) {
	crane := mustWord(t, "CRANE")
	history := []Entry{{Guess: crane, Feedback: mustPattern(t, "XXXXX")}}

	// No letter of MOUTH was ruled out.
	assert.True(t, LegalGuess(mustWord(t, "MOUTH"), history))

	// Words reusing confirmed-absent letters are inadmissible.
	assert.False(t, LegalGuess(mustWord(t, "ACORN"), history), "reuses A, C, R, N")
	assert.False(t, LegalGuess(mustWord(t, "CRANE"), history), "replays the guess itself")
	assert.False(t, LegalGuess(mustWord(t, "EAGLE"), history), "reuses A and E")

	// Empty history admits everything.
	assert.True(t, LegalGuess(crane, nil))
}

func TestLegalGuessConjunction(t *testing.T) {
	history := []Entry{
		{Guess: mustWord(t, "STOCK"), Feedback: mustPattern(t, "XXXXX")},
		{Guess: mustWord(t, "CHIMP"), Feedback: Score(mustWord(t, "CHIMP"), mustWord(t, "APPLE"))},
	}
	assert.True(t, LegalGuess(mustWord(t, "APPLE"), history))
	// AMPLE survives the first entry but not the second.
	assert.True(t, LegalGuess(mustWord(t, "AMPLE"), history[:1]))
	assert.False(t, LegalGuess(mustWord(t, "AMPLE"), history))
}

func TestFilter(t *testing.T) {
	words := testWords(t, "APPLE", "BERRY", "CRISP", "DOUGH", "EAGLE")
	apple := mustWord(t, "APPLE")

	got := Filter(words, apple, Score(apple, mustWord(t, "BERRY")))
	require.Equal(t, testWords(t, "BERRY"), got)

	// Filtering never grows the set and preserves input order.
	all := Filter(words, mustWord(t, "ZZZZZ"), Pattern{})
	assert.LessOrEqual(t, len(all), len(words))
}
