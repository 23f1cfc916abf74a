package framesync

// Fixed, non-configurable parameters of the waveform this receiver locks
// onto. None of these are meant to become runtime knobs — changing any one
// of them changes the waveform, which means changing the transmitter too.
const (
	SamplesPerSymbol = 2    // k
	MFDelaySymbols   = 3    // m, matched-filter group delay in symbols
	ExcessBandwidth  = 0.5  // β, root-raised-cosine excess bandwidth
	PolyphaseBranches = 32  // Npfb, sub-filter phases in the matched-filter bank
	PreambleSymbols  = 64   // p/n preamble length

	// PayloadSymbolsWithPilots, PilotCount and DataSymbols are independent
	// literals, not one derived from the others: 630 - 21 = 609, not 600.
	// The residual 9 symbols per frame are unused guard positions, not
	// data — see DESIGN.md, Open Question 3.
	PayloadSymbolsWithPilots = 630
	PilotCount               = 21
	DataSymbols              = 600

	PacketHeaderBytes  = 8
	PacketPayloadBytes = 64
	PacketBytes        = PacketHeaderBytes + PacketPayloadBytes // 72

	ModBitsPerSymbol = 2 // QPSK
)

// ModScheme and FEC/check identifiers, reported in FrameStats. These are
// fixed for this waveform; they exist as named constants
// rather than magic strings so FrameStats can be compared/logged cleanly.
const (
	ModSchemeQPSK = "QPSK"
	CheckCRC24    = "CRC-24"
	FECNone       = "none"
	FECGolay2412  = "Golay(24,12)"
)

// pnPolynomial and pnInitialState select the p/n reference sequence:
// a degree-6 maximal-length sequence, generator polynomial 0x43, initial
// LFSR state 1. See pnseq.go.
const (
	pnPolynomial    = 0x43
	pnInitialState  = 1
	pnDegree        = 6
)
