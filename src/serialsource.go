package framesync

/*------------------------------------------------------------------
 *
 * Purpose:   	Alternate sample source: read raw interleaved little-endian
 *		int16 I/Q pairs from a serial-attached front end (a USB CDC
 *		SDR dongle, or a remote TNC link) instead of a sound card,
 *		and feed them into a Receiver.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/term"
)

// SerialSource reads raw I/Q samples from a serial device and drives a
// Receiver with them from the goroutine that calls Run.
type SerialSource struct {
	fd *term.Term
}

// OpenSerialSource opens devicename (e.g. "/dev/ttyUSB0") at baud (0 to
// leave the current speed alone).
func OpenSerialSource(devicename string, baud int) (*SerialSource, error) {
	fd, err := term.Open(devicename, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("serialsource: opening %s: %w", devicename, err)
	}

	switch baud {
	case 0:
	case 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200:
		fd.SetSpeed(baud)
	default:
		Logger.Warn("serialsource: unsupported speed, using 4800", "requested", baud)
		fd.SetSpeed(4800)
	}

	return &SerialSource{fd: fd}, nil
}

// Run reads I/Q sample pairs from the serial device until it errors or
// EOFs, handing each to recv.Execute in chunks of chunkSymbols*SamplesPerSymbol
// samples.
func (s *SerialSource) Run(recv *Receiver, chunkSymbols int) error {
	chunkSamples := chunkSymbols * SamplesPerSymbol
	raw := make([]byte, chunkSamples*4) // 2 bytes I + 2 bytes Q per sample
	samples := make([]complex128, chunkSamples)

	for {
		n, err := s.readFull(raw)
		if err != nil {
			return err
		}

		count := n / 4
		for i := 0; i < count; i++ {
			iRaw := int16(binary.LittleEndian.Uint16(raw[i*4:]))
			qRaw := int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
			samples[i] = complex(float64(iRaw)/32768, float64(qRaw)/32768)
		}

		recv.Execute(samples[:count])
	}
}

func (s *SerialSource) readFull(buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		b, err := s.readByte()
		if err != nil {
			return total, err
		}
		buf[total] = b
		total++
	}
	return total, nil
}

func (s *SerialSource) readByte() (byte, error) {
	bytes := make([]byte, 1)
	n, err := s.fd.Read(bytes)
	if n != 1 {
		return 0, err
	}
	return bytes[0], nil
}

// Close releases the underlying serial device.
func (s *SerialSource) Close() {
	if s.fd == nil {
		return
	}
	s.fd.Close()
}
