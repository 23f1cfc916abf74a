package framesync

/*-------------------------------------------------------------
 *
 * Purpose:	Frame statistics and callback surface (C7). Populated once
 *		per frame, immediately before the user callback fires.
 *
 *--------------------------------------------------------------*/

import "math"

// FrameStats is handed to the user callback alongside the decoded packet.
// EVM is reserved at zero: treat this as a reserved field for forward
// compatibility rather than guessing a formula.
type FrameStats struct {
	EVM           float64
	RSSI          float64 // dB, 20*log10(gammaHat)
	CFO           float64 // radians/sample, current NCO frequency
	FrameSyms     []complex128
	NumFrameSyms  int
	ModScheme     string
	ModBPS        int
	Check         string
	FEC0          string
	FEC1          string
}

// newFrameStats builds the per-frame FrameStats from the channel gain
// estimate, the NCO's current frequency, and the 600 data symbols the
// pilot synchronizer produced.
func newFrameStats(gammaHat, cfo float64, dataSyms []complex128) FrameStats {
	return FrameStats{
		EVM:          0,
		RSSI:         20 * math.Log10(gammaHat),
		CFO:          cfo,
		FrameSyms:    dataSyms,
		NumFrameSyms: DataSymbols,
		ModScheme:    ModSchemeQPSK,
		ModBPS:       ModBitsPerSymbol,
		Check:        CheckCRC24,
		FEC0:         FECNone,
		FEC1:         FECGolay2412,
	}
}

// Callback is invoked exactly once per successfully accumulated frame.
// header and payload are borrowed slices into receiver-owned storage
// callers must not retain them past the call.
type Callback func(header []byte, headerValid bool, payload []byte, payloadLen int, payloadValid bool, stats FrameStats, userContext interface{})
