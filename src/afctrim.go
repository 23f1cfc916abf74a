package framesync

/*------------------------------------------------------------------
 *
 * Purpose:   	Optional automatic frequency correction: when the
 *		detector's Δφ̂ exceeds a configurable threshold across
 *		consecutive frames, nudge the radio's tuned frequency via
 *		Hamlib to walk the hardware local oscillator back toward
 *		zero residual CFO, so the NCO doesn't have to carry a large
 *		steady offset indefinitely.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/xylo04/goHamlib"
)

// AFCTrimmer watches the NCO frequency offset reported in successive
// frames and, once it consistently exceeds thresholdHz for consecutiveFrames
// frames in a row, adjusts the rig's tuned frequency to absorb it.
type AFCTrimmer struct {
	rig goHamlib.Rig

	thresholdRadPerSample float64
	consecutiveNeeded     int
	consecutiveCount      int

	sampleRateHz float64
}

// OpenAFCTrimmer opens a Hamlib rig of the given model, and prepares an AFC trimmer watching for a CFO exceeding thresholdHz for
// consecutiveFrames frames in a row. sampleRateHz is the receiver's input
// sample rate, used to convert the NCO's radians/sample frequency into Hz.
// port appears only in the error message; it is not passed to the rig.
func OpenAFCTrimmer(model int, port string, thresholdHz float64, consecutiveFrames int, sampleRateHz float64) (*AFCTrimmer, error) {
	var rig goHamlib.Rig
	rig.SetModel(model)

	if err := rig.Open(); err != nil {
		return nil, fmt.Errorf("afctrim: opening rig model %d on %s: %w", model, port, err)
	}

	const twoPi = 2 * 3.141592653589793
	thresholdRad := thresholdHz * twoPi / sampleRateHz

	return &AFCTrimmer{
		rig:                   rig,
		thresholdRadPerSample: thresholdRad,
		consecutiveNeeded:     consecutiveFrames,
		sampleRateHz:          sampleRateHz,
	}, nil
}

// Observe reports one frame's CFO estimate (radians/sample); once it has
// exceeded the configured threshold for the configured number of
// consecutive frames, the rig's VFO frequency is nudged to compensate and
// the counter resets.
func (a *AFCTrimmer) Observe(cfoRadPerSample float64) {
	if absFloat(cfoRadPerSample) < a.thresholdRadPerSample {
		a.consecutiveCount = 0
		return
	}

	a.consecutiveCount++
	if a.consecutiveCount < a.consecutiveNeeded {
		return
	}
	a.consecutiveCount = 0

	cfoHz := cfoRadPerSample * a.sampleRateHz / (2 * 3.141592653589793)

	freq, err := a.rig.GetFreq(goHamlib.VFOCurrent)
	if err != nil {
		Logger.Warn("afctrim: reading rig frequency failed", "err", err)
		return
	}

	newFreq := freq - cfoHz
	if err := a.rig.SetFreq(goHamlib.VFOCurrent, newFreq); err != nil {
		Logger.Warn("afctrim: setting rig frequency failed", "err", err)
		return
	}

	Logger.Info("afctrim: nudged rig frequency", "delta_hz", -cfoHz, "new_freq", newFreq)
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Close releases the Hamlib rig handle.
func (a *AFCTrimmer) Close() error {
	return a.rig.Close()
}
