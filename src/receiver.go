package framesync

/*-------------------------------------------------------------
 *
 * Purpose:	Receiver state machine (C6, CORE). Drives the detector,
 *		NCO, matched-filter bank, pilot synchronizer and packet
 *		modem in sequence; owns per-frame buffers, counters, and
 *		the DETECT -> RX_PREAMBLE -> RX_PAYLOAD -> callback -> reset
 *		transition discipline.
 *
 * Description:	State is modeled as a tagged variant: each
 *		state carries only the data valid in that state, so an
 *		invalid counter-in-wrong-state is unrepresentable. DETECT
 *		carries nothing; RX_PREAMBLE carries its counter;
 *		RX_PAYLOAD carries its counter and the 630-symbol buffer.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"

	"github.com/charmbracelet/log"
)

type receiverState interface {
	isReceiverState()
}

type stateDetect struct{}

type statePreamble struct {
	counter int
}

type statePayload struct {
	counter int
	buf     [PayloadSymbolsWithPilots]complex128
}

func (stateDetect) isReceiverState()   {}
func (statePreamble) isReceiverState() {}
func (statePayload) isReceiverState()  {}

// Receiver is the top-level frame synchronizer. Created once per channel,
// reused across frames via Reset.
type Receiver struct {
	state receiverState

	detector  *frameDetector
	nco       *nco
	mf        *matchedFilterBank
	pilotSync *pilotSync
	modem     *packetModem
	debug     *debugTrace
	lock      *LockIndicator

	mfCounter int
	pfbIndex  int // always 0, by design

	gammaHat float64 // channel gain estimate, latched at detection time

	preambleBuf [PreambleSymbols]complex128

	callback    Callback
	userContext interface{}
}

// NewReceiver builds a Receiver with all sub-objects allocated once;
// initial state is DETECT. callback may be nil, in which case completed
// frames are discarded.
func NewReceiver(callback Callback, userContext interface{}) *Receiver {
	return &Receiver{
		state:       stateDetect{},
		detector:    newFrameDetector(),
		nco:         newNCO(),
		mf:          newMatchedFilterBank(),
		pilotSync:   newPilotSync(),
		modem:       newPacketModem(),
		debug:       newDebugTrace(),
		callback:    callback,
		userContext: userContext,
	}
}

// Execute consumes samples in order, dispatching each to the handler for
// the current state. It may invoke the callback zero or more times and
// never blocks on I/O.
func (r *Receiver) Execute(samples []complex128) {
	for _, sample := range samples {
		r.debug.push(sample)
		r.dispatch(sample)
	}
}

func (r *Receiver) dispatch(sample complex128) {
	switch st := r.state.(type) {
	case stateDetect:
		r.handleDetect(sample)
	case statePreamble:
		r.handlePreamble(sample, st)
	case statePayload:
		r.handlePayload(sample, st)
	default:
		panic(fmt.Sprintf("framesync: receiver dispatched in unknown state %T", r.state))
	}
}

// handleDetect feeds sample to the detector; on detection it latches the
// coarse estimates, configures the NCO and matched filter, transitions to
// RX_PREAMBLE, and replays any samples the detector buffered internally.
func (r *Receiver) handleDetect(sample complex128) {
	result := r.detector.execute(sample)
	if result == nil {
		return
	}

	tauHat := r.detector.getTauHat()
	gammaHat := r.detector.getGammaHat()
	dphiHat := r.detector.getDphiHat()
	phiHat := r.detector.getPhiHat()

	r.gammaHat = gammaHat
	r.mf.setScale(0.5 / gammaHat)
	r.pfbIndex = 0 // refinement for negative tauHat intentionally not implemented

	r.nco.setFrequency(dphiHat)
	r.nco.setPhase(phiHat)

	r.mfCounter = 0
	r.state = statePreamble{counter: 0}
	r.lock.Assert()

	log.Debug("frame detected", "gammaHat", gammaHat, "phiHat", phiHat, "dphiHat", dphiHat, "tauHat", tauHat, "replay", len(result.replay))

	// Re-entry is safe: state is RX_PREAMBLE, not DETECT, so this cannot
	// recurse again.
	r.Execute(result.replay)
}

// step performs the per-symbol mix-down/matched-filter/decimate sequence
// shared by RX_PREAMBLE and RX_PAYLOAD, returning the demodulated symbol
// and whether one became available on this sample.
func (r *Receiver) step(sample complex128) (symbol complex128, available bool) {
	v := r.nco.mixDown(sample)
	r.nco.step()

	r.mf.push(v)
	vPrime := r.mf.execute(r.pfbIndex)

	r.mfCounter++
	available = r.mfCounter == 1
	r.mfCounter = r.mfCounter % SamplesPerSymbol

	if available {
		return vPrime, true
	}
	return 0, false
}

func (r *Receiver) handlePreamble(sample complex128, st statePreamble) {
	symbol, available := r.step(sample)
	if !available {
		r.state = st
		return
	}

	settleLen := 2 * MFDelaySymbols
	if st.counter >= settleLen {
		r.preambleBuf[st.counter-settleLen] = symbol
	}
	st.counter++

	if st.counter == PreambleSymbols+settleLen {
		r.debug.recordPreamble(r.preambleBuf[:])
		r.state = statePayload{counter: 0}
		return
	}
	r.state = st
}

func (r *Receiver) handlePayload(sample complex128, st statePayload) {
	symbol, available := r.step(sample)
	if !available {
		r.state = st
		return
	}

	st.buf[st.counter] = symbol
	st.counter++

	if st.counter == PayloadSymbolsWithPilots {
		r.completeFrame(st.buf)
		return
	}
	r.state = st
}

// completeFrame runs the pilot synchronizer and packet modem over a
// completed 630-symbol payload, dispatches the callback exactly once, and
// resets the receiver back to DETECT.
func (r *Receiver) completeFrame(payload [PayloadSymbolsWithPilots]complex128) {
	dataSyms := r.pilotSync.Execute(payload)
	r.debug.recordDataSyms(dataSyms[:])

	packet, valid := r.modem.Decode(dataSyms[:])

	stats := newFrameStats(r.gammaHat, r.nco.getFrequency(), dataSyms[:])

	if r.callback != nil {
		header := packet[:PacketHeaderBytes]
		body := packet[PacketHeaderBytes:]
		r.callback(header, valid, body, PacketPayloadBytes, valid, stats, r.userContext)
	}

	r.Reset()
}

// Reset clears counters, resets all DSP sub-objects, and returns the
// state to DETECT without reallocation.
func (r *Receiver) Reset() {
	r.state = stateDetect{}
	r.mfCounter = 0
	r.pfbIndex = 0
	r.detector.reset()
	r.nco.reset()
	r.mf.reset()
	r.lock.Release()
	for i := range r.preambleBuf {
		r.preambleBuf[i] = 0
	}
}

// Print writes a one-line diagnostic summary of the receiver's current
// state to the structured logger.
func (r *Receiver) Print() {
	log.Info("receiver state", "state", fmt.Sprintf("%T", r.state))
}

func (r *Receiver) DebugEnable()  { r.debug.enable() }
func (r *Receiver) DebugDisable() { r.debug.disable() }

// SetLockIndicator wires a GPIO lock indicator that asserts while a frame
// is being tracked (RX_PREAMBLE/RX_PAYLOAD) and releases on reset.
func (r *Receiver) SetLockIndicator(l *LockIndicator) {
	r.lock = l
}

// DebugPrint writes a post-mortem trace to a file named by applying
// pattern (a strftime format string) against the current time.
func (r *Receiver) DebugPrint(pattern string) error {
	return r.debug.print(pattern)
}
