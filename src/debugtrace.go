package framesync

/*-------------------------------------------------------------
 *
 * Purpose:	Debug trace (C8, optional): ring-buffers the most recent
 *		1600 raw input samples and, on demand, writes a textual
 *		post-mortem script naming raw samples, the p/n reference,
 *		the received preamble, and the recovered payload symbols.
 *
 * Description:	Enabling is idempotent and permitted at any state. The
 *		output file name is built from a
 *		user-supplied strftime pattern, the same way the teacher's
 *		xmit.go times its channel prefixes.
 *
 *--------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

// debugRingLen is the number of most-recent raw input samples kept for
// post-mortem dumps.
const debugRingLen = 1600

type debugTrace struct {
	enabled bool

	ring    [debugRingLen]complex128
	ringPos int
	ringN   int // samples written so far, capped at debugRingLen

	preamble   []complex128
	dataSyms   []complex128
}

func newDebugTrace() *debugTrace {
	return &debugTrace{}
}

// enable turns on sample capture. Calling it again while already enabled
// is a no-op.
func (d *debugTrace) enable() {
	d.enabled = true
}

func (d *debugTrace) disable() {
	d.enabled = false
}

// push records one raw input sample if tracing is enabled.
func (d *debugTrace) push(sample complex128) {
	if !d.enabled {
		return
	}
	d.ring[d.ringPos] = sample
	d.ringPos = (d.ringPos + 1) % debugRingLen
	if d.ringN < debugRingLen {
		d.ringN++
	}
}

// recordPreamble captures the receiver's recovered preamble symbols for
// the next post-mortem print.
func (d *debugTrace) recordPreamble(symbols []complex128) {
	if !d.enabled {
		return
	}
	d.preamble = append([]complex128(nil), symbols...)
}

// recordDataSyms captures the receiver's recovered 600 data symbols for
// the next post-mortem print.
func (d *debugTrace) recordDataSyms(symbols []complex128) {
	if !d.enabled {
		return
	}
	d.dataSyms = append([]complex128(nil), symbols...)
}

// print writes a textual post-mortem script to a file named by applying
// pattern (a strftime format) against the current time. If tracing was
// never enabled, this is a documented no-op.
func (d *debugTrace) print(pattern string) error {
	if !d.enabled {
		log.Warn("debug trace print requested without prior enable")
		return nil
	}

	name, err := strftime.Format(pattern, time.Now())
	if err != nil {
		return fmt.Errorf("debugtrace: formatting filename: %w", err)
	}

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("debugtrace: creating %s: %w", name, err)
	}
	defer f.Close()

	fmt.Fprintln(f, "# auto-generated frame sync post-mortem trace")

	fmt.Fprintf(f, "raw = [\n")
	for i := 0; i < d.ringN; i++ {
		idx := (d.ringPos - d.ringN + i + debugRingLen) % debugRingLen
		s := d.ring[idx]
		fmt.Fprintf(f, "  %g%+gj,\n", real(s), imag(s))
	}
	fmt.Fprintln(f, "]")

	pn := pnSequence()
	fmt.Fprintf(f, "pn_reference = %v\n", pn)

	fmt.Fprintf(f, "preamble = [\n")
	for _, s := range d.preamble {
		fmt.Fprintf(f, "  %g%+gj,\n", real(s), imag(s))
	}
	fmt.Fprintln(f, "]")

	fmt.Fprintf(f, "payload = [\n")
	for _, s := range d.dataSyms {
		fmt.Fprintf(f, "  %g%+gj,\n", real(s), imag(s))
	}
	fmt.Fprintln(f, "]")

	fmt.Fprintln(f, "plot(raw, pn_reference, preamble, payload)")

	log.Info("debug trace written", "file", name)
	return nil
}
