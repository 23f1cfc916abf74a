package framesync

/*-------------------------------------------------------------
 *
 * Purpose:	Polyphase root-Nyquist matched filter bank (C3).
 *
 * Contract: push(sample), execute(phase_index) -> sample,
 *		set_scale(s), reset(). Phase index in [0, Npfb).
 *
 *--------------------------------------------------------------*/

// matchedFilterBank holds a sliding window of the most recent
// rrcTapsPerBranch complex samples and convolves it, on demand, against
// whichever of the Npfb polyphase RRC branches the caller selects.
type matchedFilterBank struct {
	taps  [PolyphaseBranches][rrcTapsPerBranch]float64
	ring  [rrcTapsPerBranch]complex128
	scale float64
}

func newMatchedFilterBank() *matchedFilterBank {
	return &matchedFilterBank{
		taps:  designPolyphaseRRC(),
		scale: 1,
	}
}

// push shifts one new sample into the filter's history, most recent last.
func (m *matchedFilterBank) push(sample complex128) {
	copy(m.ring[:], m.ring[1:])
	m.ring[len(m.ring)-1] = sample
}

// execute convolves the current history against the branch named by phase,
// scaled by the amplitude compensation set via setScale.
func (m *matchedFilterBank) execute(phase int) complex128 {
	coeffs := &m.taps[phase]
	var acc complex128
	for i, s := range m.ring {
		acc += s * complex(coeffs[i], 0)
	}
	return acc * complex(m.scale, 0)
}

func (m *matchedFilterBank) setScale(s float64) {
	m.scale = s
}

func (m *matchedFilterBank) reset() {
	for i := range m.ring {
		m.ring[i] = 0
	}
	m.scale = 1
}
