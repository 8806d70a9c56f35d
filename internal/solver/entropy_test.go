package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInformationGainEmptySet(t *testing.T) {
	assert.Zero(t, InformationGain(mustWord(t, "CRANE"), nil))
	assert.Zero(t, InformationGain(mustWord(t, "CRANE"), []Word{}))
}

func TestInformationGainUninformativeGuess(t *testing.T) {
	// MOUTH shares no letters with either candidate: one feedback bucket,
	// nothing learned.
	possible := testWords(t, "APPLE", "BERRY")
	assert.Zero(t, InformationGain(mustWord(t, "MOUTH"), possible))

	// A single candidate is already certain.
	assert.Zero(t, InformationGain(mustWord(t, "CRANE"), testWords(t, "APPLE")))
}

func TestInformationGainPerfectSplit(t *testing.T) {
	// APPLE distinguishes the two candidates completely: 1 bit on a set of 2.
	possible := testWords(t, "APPLE", "BERRY")
	assert.InDelta(t, 1.0, InformationGain(mustWord(t, "APPLE"), possible), 1e-12)
}

func TestInformationGainBounds(t *testing.T) {
	possible := testWords(t, "APPLE", "BERRY", "CRISP", "DOUGH", "EAGLE", "MOUTH", "SPEED")
	limit := math.Log2(float64(len(possible)))
	for _, g := range possible {
		bits := InformationGain(g, possible)
		assert.GreaterOrEqual(t, bits, 0.0, "guess %s", g)
		assert.LessOrEqual(t, bits, limit+1e-12, "guess %s", g)
	}
}
