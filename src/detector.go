package framesync

/*-------------------------------------------------------------
 *
 * Purpose:	Frame detector (C2): cross-correlates incoming samples
 *		against the known p/n reference and, once a correlation
 *		peak crosses threshold, emits coarse estimates {τ̂, γ̂,
 *		Δφ̂, φ̂} plus the internally buffered samples that must be
 *		replayed through the receiver.
 *
 * Description:	A sliding complex correlator against the ±1 p/n sequence,
 *		oversampled at k samples/symbol. Each new sample is pushed
 *		into a ring the length of the oversampled reference; the
 *		correlation magnitude is tracked along with a short trailing
 *		history so that, once the magnitude crosses threshold and
 *		starts falling, the peak (and its immediate neighbors) can
 *		be used for the coarse estimates:
 *
 *		  γ̂  from the peak correlation magnitude, normalized by
 *		      reference energy.
 *		  φ̂  from the peak correlation's complex argument.
 *		  Δφ̂ from the asymmetry of the correlation magnitudes of
 *		      the samples before and after the peak (see
 *		      estimateFreqSlope); the correlation phase at those
 *		      neighbors is not used.
 *		  τ̂  from a parabolic interpolation of correlation
 *		      magnitude across the three samples centered on the
 *		      peak.
 *
 *--------------------------------------------------------------*/

import "math/cmplx"

// detectorRefLen is the p/n reference length in samples: PreambleSymbols
// BPSK chips at SamplesPerSymbol samples/symbol.
const detectorRefLen = PreambleSymbols * SamplesPerSymbol

// detectorThreshold is the minimum normalized correlation magnitude (as a
// fraction of the reference's own autocorrelation peak) that triggers a
// detection.
const detectorThreshold = 0.5

// frameDetector is the streaming p/n cross-correlator. It owns its own
// ring of recent samples (for the correlation) and a second ring that
// buffers every sample since correlation first crossed threshold, so that,
// once the true peak is found, those buffered samples can be replayed
// through the receiver's new state.
type frameDetector struct {
	refUp []complex128 // p/n reference, each chip repeated SamplesPerSymbol times

	ring    []complex128 // last len(refUp) samples, most recent last
	ringLen int

	armed   bool          // correlation has crossed threshold, watching for the peak
	peakMag float64       // best |correlation| seen since arming
	peakCor complex128    // correlation value at peakMag
	prevMag float64       // magnitude one sample before the current peak candidate
	nextMag float64       // magnitude one sample after (filled in on the sample after peak)
	armBuf  []complex128  // every sample seen since arming, for replay
	lastMag float64       // magnitude computed for the previous sample

	tauHat   float64
	phiHat   float64
	dphiHat  float64
	gammaHat float64
}

func newFrameDetector() *frameDetector {
	d := &frameDetector{
		refUp: upsampleRef(),
	}
	d.ring = make([]complex128, len(d.refUp))
	return d
}

func upsampleRef() []complex128 {
	pn := pnSequence()
	up := make([]complex128, 0, len(pn)*SamplesPerSymbol)
	for _, chip := range pn {
		for s := 0; s < SamplesPerSymbol; s++ {
			up = append(up, complex(chip, 0))
		}
	}
	return up
}

// detectorResult carries the samples the detector wants replayed, once a
// detection fires. A nil result means "no detection yet".
type detectorResult struct {
	replay []complex128
}

// execute pushes one sample through the correlator. It returns a non-nil
// *detectorResult exactly when a frame has been located; the coarse
// estimate getters are valid from that point until the next reset.
func (d *frameDetector) execute(sample complex128) *detectorResult {
	d.pushRing(sample)

	if d.armed {
		d.armBuf = append(d.armBuf, sample)
	}

	corr := d.correlate()
	mag := cmplx.Abs(corr)
	magBefore := d.lastMag
	d.lastMag = mag
	refEnergy := float64(len(d.refUp))
	normMag := mag / refEnergy

	if !d.armed {
		if normMag >= detectorThreshold {
			d.armed = true
			d.peakMag = mag
			d.peakCor = corr
			d.prevMag = magBefore
			d.armBuf = []complex128{sample}
		}
		return nil
	}

	if mag >= d.peakMag {
		d.peakMag = mag
		d.peakCor = corr
		d.prevMag = magBefore
		return nil
	}

	// mag has fallen below the running peak: the sample just processed is
	// the one immediately after the peak.
	d.nextMag = mag
	d.finalizeDetection(refEnergy)

	replay := d.armBuf
	d.armed = false
	d.armBuf = nil
	return &detectorResult{replay: replay}
}

func (d *frameDetector) pushRing(sample complex128) {
	if d.ringLen < len(d.ring) {
		d.ring[d.ringLen] = sample
		d.ringLen++
		return
	}
	copy(d.ring, d.ring[1:])
	d.ring[len(d.ring)-1] = sample
}

func (d *frameDetector) correlate() complex128 {
	var acc complex128
	n := len(d.ring)
	if d.ringLen < n {
		return 0
	}
	for i := 0; i < n; i++ {
		acc += d.ring[i] * d.refUp[i]
	}
	return acc
}

// finalizeDetection computes {τ̂, φ̂, Δφ̂, γ̂} from the peak correlation and
// its two neighbors.
func (d *frameDetector) finalizeDetection(refEnergy float64) {
	d.gammaHat = d.peakMag / refEnergy
	if d.gammaHat <= 0 {
		d.gammaHat = 1e-9
	}
	d.phiHat = cmplx.Phase(d.peakCor)
	d.dphiHat = estimateFreqSlope(d.prevMag, d.peakMag, d.nextMag)

	d.tauHat = parabolicOffset(d.prevMag, d.peakMag, d.nextMag)
}

// estimateFreqSlope derives a small coarse frequency estimate from the
// curvature of the correlation magnitude around its peak: a peak distorted
// by residual carrier offset broadens asymmetrically, and the asymmetry's
// sign and size give a first-order frequency correction.
func estimateFreqSlope(prev, peak, next float64) float64 {
	if peak == 0 {
		return 0
	}
	return (next - prev) / (4 * peak)
}

// parabolicOffset fits a parabola through three equally spaced correlation
// magnitudes centered on the peak and returns the fractional-sample offset
// of the true maximum from the center sample.
func parabolicOffset(prev, peak, next float64) float64 {
	denom := prev - 2*peak + next
	if denom == 0 {
		return 0
	}
	return 0.5 * (prev - next) / denom
}

func (d *frameDetector) getTauHat() float64   { return d.tauHat }
func (d *frameDetector) getPhiHat() float64   { return d.phiHat }
func (d *frameDetector) getDphiHat() float64  { return d.dphiHat }
func (d *frameDetector) getGammaHat() float64 { return d.gammaHat }

func (d *frameDetector) reset() {
	for i := range d.ring {
		d.ring[i] = 0
	}
	d.ringLen = 0
	d.armed = false
	d.armBuf = nil
	d.peakMag = 0
	d.prevMag = 0
	d.nextMag = 0
}
