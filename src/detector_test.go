package framesync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameDetectorFindsKnownPreamble(t *testing.T) {
	d := newFrameDetector()

	pn := pnSequence()
	var samples []complex128
	for _, chip := range pn {
		for s := 0; s < SamplesPerSymbol; s++ {
			samples = append(samples, complex(chip, 0))
		}
	}
	// Trailing samples below threshold so the peak's fall-off actually fires.
	samples = append(samples, complex(0, 0), complex(0, 0))

	var result *detectorResult
	for _, s := range samples {
		if r := d.execute(s); r != nil {
			result = r
			break
		}
	}

	if assert.NotNil(t, result, "expected a detection on a clean p/n preamble") {
		assert.InDelta(t, 1.0, d.getGammaHat(), 0.05)
		assert.InDelta(t, 0.0, d.getPhiHat(), 0.2)
	}
}

func TestFrameDetectorStaysUnarmedOnNoise(t *testing.T) {
	d := newFrameDetector()
	for i := 0; i < detectorRefLen*2; i++ {
		r := d.execute(complex(0, 0))
		assert.Nil(t, r)
	}
}

func TestFrameDetectorResetClearsState(t *testing.T) {
	d := newFrameDetector()
	d.armed = true
	d.peakMag = 5
	d.armBuf = []complex128{1, 2, 3}

	d.reset()

	assert.False(t, d.armed)
	assert.Equal(t, 0.0, d.peakMag)
	assert.Nil(t, d.armBuf)
	assert.Equal(t, 0, d.ringLen)
}

func TestParabolicOffsetZeroAtSymmetricPeak(t *testing.T) {
	assert.Equal(t, 0.0, parabolicOffset(1, 2, 1))
}

func TestParabolicOffsetSignFollowsAsymmetry(t *testing.T) {
	// A taller neighbor on the right means the true peak lies to the right
	// of center, which this implementation reports as a positive offset.
	assert.Greater(t, parabolicOffset(1, 2, 1.5), 0.0)
}

func TestEstimateFreqSlopeZeroWhenSymmetric(t *testing.T) {
	assert.Equal(t, 0.0, estimateFreqSlope(1, 2, 1))
}
