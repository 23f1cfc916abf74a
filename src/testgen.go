package framesync

/*------------------------------------------------------------------
 *
 * Purpose:   	Reference modulator for test-vector generation and
 *		round-trip tests: the transmitter side the receiver's
 *		specification treats as an external collaborator, built
 *		here only so the receiver can be exercised end to end.
 *
 * Description:	Encodes a packet through the same packet modem the
 *		receiver decodes with, inserts pilots at the same fixed
 *		spacing the pilot synchronizer expects, prepends the p/n
 *		preamble, and pulse-shapes the whole symbol sequence with
 *		the transmit-side half of the matched RRC pair (see
 *		txRRCFilter in rrc.go).
 *
 *--------------------------------------------------------------*/

// ModulateTestFrame returns the complex baseband samples, at
// SamplesPerSymbol samples/symbol, of one full frame (preamble + pilot-
// interleaved payload) carrying packet.
func ModulateTestFrame(packet [PacketBytes]byte) []complex128 {
	modem := newPacketModem()
	dataSyms := modem.Encode(packet)

	payload := insertPilots(dataSyms)

	pn := pnSequence()
	symbols := make([]complex128, 0, PreambleSymbols+len(payload))
	for _, chip := range pn {
		symbols = append(symbols, complex(chip, 0))
	}
	symbols = append(symbols, payload[:]...)

	return pulseShape(symbols)
}

// insertPilots is the inverse of pilotSync.Execute: it places the known
// pilot reference symbol at payload index 30*i for i=0..20 and fills the
// first 600 remaining indices with data symbols in order. dataSyms must
// have length DataSymbols (600); the trailing 9 non-pilot positions (see
// DESIGN.md, Open Question 3) are unused guard symbols, left at zero.
func insertPilots(dataSyms []complex128) [PayloadSymbolsWithPilots]complex128 {
	var out [PayloadSymbolsWithPilots]complex128
	dataIdx := 0
	for idx := 0; idx < PayloadSymbolsWithPilots; idx++ {
		if idx%pilotSpacing == 0 {
			out[idx] = pilotReference
			continue
		}
		if dataIdx < len(dataSyms) {
			out[idx] = dataSyms[dataIdx]
			dataIdx++
		}
		// else: trailing guard position, left at its zero value.
	}
	return out
}

// pulseShape upsamples symbols by SamplesPerSymbol (zero-stuffing) and
// convolves with the transmit RRC pulse.
func pulseShape(symbols []complex128) []complex128 {
	taps := txRRCFilter()

	upsampled := make([]complex128, len(symbols)*SamplesPerSymbol)
	for i, s := range symbols {
		upsampled[i*SamplesPerSymbol] = s
	}

	out := make([]complex128, len(upsampled))
	half := len(taps) / 2
	for n := range upsampled {
		var acc complex128
		for k, tap := range taps {
			srcIdx := n - (k - half)
			if srcIdx >= 0 && srcIdx < len(upsampled) {
				acc += upsampled[srcIdx] * complex(tap, 0)
			}
		}
		out[n] = acc
	}
	return out
}
