package framesync

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNCOMixDownRemovesKnownPhase(t *testing.T) {
	n := newNCO()
	n.setPhase(math.Pi / 4)

	in := complex(1, 0)
	out := n.mixDown(in)

	assert.InDelta(t, 0, cmplx.Phase(out)+math.Pi/4, 1e-9)
}

func TestNCOStepAdvancesPhaseByFrequency(t *testing.T) {
	n := newNCO()
	n.setFrequency(0.1)
	n.setPhase(0)

	n.step()
	assert.InDelta(t, 0.1, n.phase, 1e-12)

	n.step()
	assert.InDelta(t, 0.2, n.phase, 1e-12)
}

func TestNCOResetClearsFrequencyAndPhase(t *testing.T) {
	n := newNCO()
	n.setFrequency(0.3)
	n.setPhase(1.0)
	n.reset()

	assert.Equal(t, 0.0, n.getFrequency())
	assert.Equal(t, 0.0, n.phase)
}

func TestWrapPhaseStaysInRange(t *testing.T) {
	for _, p := range []float64{0, math.Pi, -math.Pi, 3 * math.Pi, -3 * math.Pi, 100} {
		w := wrapPhase(p)
		assert.LessOrEqual(t, w, math.Pi)
		assert.Greater(t, w, -math.Pi-1e-9)
	}
}
