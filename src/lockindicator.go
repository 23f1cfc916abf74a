package framesync

/*------------------------------------------------------------------
 *
 * Purpose:   	Assert a GPIO line for the duration of RX_PREAMBLE and
 *		RX_PAYLOAD, releasing it on reset or callback dispatch: a
 *		"frame lock" status output a host system can wire to an LED
 *		or a downstream sample-recorder's trigger input.
 *
 * Description:	The receive-side mirror of PTT: where a transmitter keys a
 *		GPIO line while sending, this keys one while a frame is
 *		locked and being demodulated.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// LockIndicator asserts a gpiocdev output line while a frame is locked.
type LockIndicator struct {
	line *gpiocdev.Line
}

// OpenLockIndicator requests lineNum as an output on chip (e.g. "gpiochip0"),
// initially deasserted.
func OpenLockIndicator(chip string, lineNum int) (*LockIndicator, error) {
	line, err := gpiocdev.RequestLine(chip, lineNum, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("lockindicator: requesting %s line %d: %w", chip, lineNum, err)
	}
	return &LockIndicator{line: line}, nil
}

// Assert raises the lock line, called when the receiver leaves DETECT.
func (l *LockIndicator) Assert() {
	if l == nil || l.line == nil {
		return
	}
	if err := l.line.SetValue(1); err != nil {
		Logger.Warn("lockindicator: set high failed", "err", err)
	}
}

// Release lowers the lock line, called on reset or after callback dispatch.
func (l *LockIndicator) Release() {
	if l == nil || l.line == nil {
		return
	}
	if err := l.line.SetValue(0); err != nil {
		Logger.Warn("lockindicator: set low failed", "err", err)
	}
}

// Close releases the GPIO line request.
func (l *LockIndicator) Close() error {
	if l == nil || l.line == nil {
		return nil
	}
	return l.line.Close()
}
