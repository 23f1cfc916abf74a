package framesync

/*-------------------------------------------------------------
 *
 * Purpose:	Numerically-controlled oscillator (C4) used to derotate
 *		incoming samples by the detector's coarse carrier estimate
 *		and track it sample by sample.
 *
 *--------------------------------------------------------------*/

import (
	"math"
	"math/cmplx"
)

// nco is a complex derotator: mix_down(x) = x * e^(-j*phase), then phase
// advances by freq each step(). Both freq and phase are in radians/sample
// and radians respectively.
type nco struct {
	freq  float64
	phase float64
}

func newNCO() *nco {
	return &nco{}
}

func (n *nco) setFrequency(freq float64) {
	n.freq = freq
}

func (n *nco) setPhase(phase float64) {
	n.phase = wrapPhase(phase)
}

func (n *nco) getFrequency() float64 {
	return n.freq
}

// mixDown multiplies in by e^(-j*phase) without advancing the oscillator.
// Callers call step() separately so the mix and the advance are two
// distinct, individually testable operations (matches the per-symbol-step
// description, which mixes then advances).
func (n *nco) mixDown(in complex128) complex128 {
	return in * cmplx.Exp(complex(0, -n.phase))
}

func (n *nco) step() {
	n.phase = wrapPhase(n.phase + n.freq)
}

func (n *nco) reset() {
	n.freq = 0
	n.phase = 0
}

func wrapPhase(p float64) float64 {
	const twoPi = 2 * math.Pi
	p = math.Mod(p, twoPi)
	if p > math.Pi {
		p -= twoPi
	} else if p < -math.Pi {
		p += twoPi
	}
	return p
}
