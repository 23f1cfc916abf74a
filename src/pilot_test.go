package framesync

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPilotSyncExecuteRemovesKnownPhaseOffset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		phase := rapid.Float64Range(-3, 3).Draw(t, "phase")

		var dataSyms [DataSymbols]complex128
		for i := range dataSyms {
			dataSyms[i] = qpskMap(i%2, (i/2)%2)
		}

		rx := insertPilots(dataSyms[:])
		rot := cmplx.Exp(complex(0, phase))
		for i := range rx {
			rx[i] *= rot
		}

		ps := newPilotSync()
		out := ps.Execute(rx)

		for i, want := range dataSyms {
			assert.InDelta(t, real(want), real(out[i]), 1e-6)
			assert.InDelta(t, imag(want), imag(out[i]), 1e-6)
		}
	})
}

func TestPilotSyncFrameLen(t *testing.T) {
	ps := newPilotSync()
	assert.Equal(t, PayloadSymbolsWithPilots, ps.FrameLen())
}

func TestInterpolatedPhaseMatchesPilotsExactlyAtPilotIndices(t *testing.T) {
	var pilotPhase [PilotCount]float64
	for i := range pilotPhase {
		pilotPhase[i] = float64(i) * 0.01
	}
	for i := 0; i < PilotCount; i++ {
		idx := i * pilotSpacing
		assert.InDelta(t, pilotPhase[i], interpolatedPhase(pilotPhase, idx), 1e-12)
	}
}
