package framesync

/*-------------------------------------------------------------
 *
 * Purpose:	Pilot synchronizer (part of C5): strips the 21 known pilot
 *		symbols out of the 630-symbol payload and uses them to track
 *		and remove residual carrier-phase drift left over after the
 *		NCO's coarse correction, handing the packet modem 600
 *		phase-corrected data symbols.
 *
 * Contract: constructed with (600 data, 21 pilots);
 *		FrameLen()==630; Execute(rx[630]) -> data[600].
 *
 * Placement:	pilots sit at payload index 30*i for i=0..20 — every 30th
 *		symbol, starting at index 0. That leaves 609 non-pilot
 *		positions, 9 more than the 600 data symbols the packet modem
 *		expects (see DESIGN.md, Open Question 3): the first 600
 *		non-pilot positions encountered, in index order, carry data;
 *		the trailing 9 non-pilot positions in the frame are unused
 *		guard symbols, consumed but not decoded.
 *
 *--------------------------------------------------------------*/

import "math/cmplx"

// pilotSpacing is the distance, in payload symbols, between consecutive
// pilots: PayloadSymbolsWithPilots/PilotCount == 30 exactly.
const pilotSpacing = PayloadSymbolsWithPilots / PilotCount

// pilotReference is the known symbol value transmitted at every pilot
// position. Any constant, known symbol works; this uses a real-valued
// 1/sqrt2 + j0, the same per-axis amplitude as qpskMap's constellation
// points (so half their energy).
var pilotReference = complex(1/sqrt2, 0)

const sqrt2 = 1.4142135623730951

// pilotSync strips pilots from a 630-symbol payload and linearly
// interpolates the phase error they reveal across the intervening data
// symbols, correcting each data symbol before it reaches the packet modem.
type pilotSync struct{}

func newPilotSync() *pilotSync {
	return &pilotSync{}
}

// FrameLen is the number of payload symbols (data + pilots) this
// synchronizer consumes per frame.
func (p *pilotSync) FrameLen() int {
	return PayloadSymbolsWithPilots
}

// Execute removes phase error from rx's 630 symbols using the 21 pilots at
// indices 30*i, and returns the 600 data symbols in payload order with pilot
// positions removed. The 609 non-pilot positions outnumber the 600 data
// symbols by 9 (see DESIGN.md, Open Question 3); the trailing 9 non-pilot
// positions are treated as guard symbols and dropped once out is full.
func (p *pilotSync) Execute(rx [PayloadSymbolsWithPilots]complex128) [DataSymbols]complex128 {
	var pilotPhase [PilotCount]float64
	for i := 0; i < PilotCount; i++ {
		idx := i * pilotSpacing
		pilotPhase[i] = phaseError(rx[idx], pilotReference)
	}

	var out [DataSymbols]complex128
	outIdx := 0
	for idx := 0; idx < PayloadSymbolsWithPilots && outIdx < DataSymbols; idx++ {
		if idx%pilotSpacing == 0 {
			continue // pilot position, not a data symbol
		}
		phi := interpolatedPhase(pilotPhase, idx)
		out[outIdx] = rx[idx] * cmplx.Exp(complex(0, -phi))
		outIdx++
	}
	return out
}

// phaseError returns the angle by which got is rotated away from want.
func phaseError(got, want complex128) float64 {
	return cmplx.Phase(got * cmplx.Conj(want))
}

// interpolatedPhase linearly interpolates the phase-error estimate at
// payload index idx between its two bracketing pilots (or extrapolates
// flatly from the nearest pilot past either end of the payload).
func interpolatedPhase(pilotPhase [PilotCount]float64, idx int) float64 {
	lo := idx / pilotSpacing
	if lo >= PilotCount-1 {
		return pilotPhase[PilotCount-1]
	}
	loIdx := lo * pilotSpacing
	hiIdx := (lo + 1) * pilotSpacing
	frac := float64(idx-loIdx) / float64(hiIdx-loIdx)
	return pilotPhase[lo] + frac*(pilotPhase[lo+1]-pilotPhase[lo])
}
