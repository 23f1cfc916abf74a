package framesync

/*-------------------------------------------------------------
 *
 * Purpose:	Root-raised-cosine prototype filter design, decomposed
 *		into Npfb polyphase sub-filters for the matched-filter
 *		bank (C3).
 *
 * Description:	Standard closed-form RRC impulse response, sampled at
 *		Npfb times the receiver's sample rate (i.e. Npfb*k samples
 *		per symbol) so that selecting sub-filter phase p is
 *		equivalent to evaluating the filter at a p/Npfb-sample
 *		fractional delay. Each decimated polyphase branch has
 *		2*m*k+1 taps.
 *
 *--------------------------------------------------------------*/

import "math"

// rrcTapsPerBranch is the number of taps in each of the Npfb polyphase
// sub-filters: a symmetric FIR spanning 2*m symbols at k samples/symbol,
// plus a center tap.
const rrcTapsPerBranch = 2*MFDelaySymbols*SamplesPerSymbol + 1

// designPolyphaseRRC returns PolyphaseBranches sub-filters, each
// rrcTapsPerBranch taps long, decimated from a single dense RRC prototype
// sampled at PolyphaseBranches*SamplesPerSymbol samples/symbol.
func designPolyphaseRRC() [PolyphaseBranches][rrcTapsPerBranch]float64 {
	dense := denseRRCPrototype(PolyphaseBranches * SamplesPerSymbol)

	var bank [PolyphaseBranches][rrcTapsPerBranch]float64
	for phase := 0; phase < PolyphaseBranches; phase++ {
		for tap := 0; tap < rrcTapsPerBranch; tap++ {
			idx := tap*PolyphaseBranches + phase
			if idx < len(dense) {
				bank[phase][tap] = dense[idx]
			}
		}
	}
	return bank
}

// txRRCFilter returns the root-raised-cosine transmit pulse sampled at
// SamplesPerSymbol samples/symbol, spanning 2*m symbols: the matched
// partner to the polyphase bank's phase-0 branch (designPolyphaseRRC with
// Npfb samples decimated back down to k samples/symbol has the same shape,
// scaled by about 1/sqrt(Npfb) because the dense prototype is normalized to
// unit energy over all of its taps), so that TX pulse shaping followed by RX matched
// filtering at pfb_index 0 yields the classic RRC*RRC Nyquist pair.
func txRRCFilter() []float64 {
	return denseRRCPrototype(SamplesPerSymbol)
}

// denseRRCPrototype samples the continuous-time root-raised-cosine impulse
// response at spsDense samples/symbol, spanning 2*m symbols, normalized to
// unit energy.
func denseRRCPrototype(spsDense int) []float64 {
	const beta = ExcessBandwidth
	span := 2 * MFDelaySymbols * spsDense
	n := span + 1
	taps := make([]float64, n)

	center := float64(span) / 2
	var energy float64

	for i := 0; i < n; i++ {
		t := (float64(i) - center) / float64(spsDense) // in symbol periods

		var h float64
		switch {
		case t == 0:
			h = 1 - beta + 4*beta/math.Pi
		case beta != 0 && math.Abs(math.Abs(4*beta*t)-1) < 1e-8:
			h = (beta / math.Sqrt2) * ((1+2/math.Pi)*math.Sin(math.Pi/(4*beta)) + (1-2/math.Pi)*math.Cos(math.Pi/(4*beta)))
		default:
			num := math.Sin(math.Pi*t*(1-beta)) + 4*beta*t*math.Cos(math.Pi*t*(1+beta))
			den := math.Pi * t * (1 - (4*beta*t)*(4*beta*t))
			h = num / den
		}
		taps[i] = h
		energy += h * h
	}

	norm := math.Sqrt(energy)
	if norm > 0 {
		for i := range taps {
			taps[i] /= norm
		}
	}
	return taps
}
