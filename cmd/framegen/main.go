package main

/*------------------------------------------------------------------
 *
 * Purpose:   	Test-vector generator: modulate a packet (random or given
 *		as hex via --packet) with the p/n preamble and pilot-interleaved
 *		payload, optionally applying carrier offset, timing offset,
 *		and amplitude scale, and write the resulting complex samples
 *		to stdout as raw interleaved float32 I/Q pairs.
 *
 *---------------------------------------------------------------*/

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"math/cmplx"
	"os"

	framesync "github.com/kb9vic/framesync/src"
	"github.com/spf13/pflag"
)

func main() {
	packetHex := pflag.StringP("packet", "p", "", "72-byte packet as hex. If unset, a random packet is generated.")
	cfoHz := pflag.Float64P("cfo", "f", 0, "Carrier frequency offset to apply, in Hz.")
	tau := pflag.Float64P("tau", "t", 0, "Fractional sample timing offset to apply.")
	gamma := pflag.Float64P("gamma", "g", 1.0, "Amplitude scale to apply.")
	sampleRate := pflag.Float64P("sample-rate", "r", 9600 * 2 * 2, "Output sample rate in Hz, for --cfo conversion.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - emit raw I/Q test vectors for framesync.\n\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	packet, err := resolvePacket(*packetHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	samples := framesync.ModulateTestFrame(packet)
	samples = applyImpairments(samples, *cfoHz, *sampleRate, *tau, *gamma)

	if err := writeIQ(os.Stdout, samples); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolvePacket(packetHex string) ([framesync.PacketBytes]byte, error) {
	var packet [framesync.PacketBytes]byte
	if packetHex == "" {
		if _, err := rand.Read(packet[:]); err != nil {
			return packet, fmt.Errorf("generating random packet: %w", err)
		}
		return packet, nil
	}

	decoded, err := hex.DecodeString(packetHex)
	if err != nil {
		return packet, fmt.Errorf("decoding --packet hex: %w", err)
	}
	if len(decoded) != framesync.PacketBytes {
		return packet, fmt.Errorf("--packet must decode to exactly %d bytes, got %d", framesync.PacketBytes, len(decoded))
	}
	copy(packet[:], decoded)
	return packet, nil
}

func applyImpairments(samples []complex128, cfoHz, sampleRateHz, tau, gamma float64) []complex128 {
	out := make([]complex128, len(samples))

	cfoRadPerSample := 2 * math.Pi * cfoHz / sampleRateHz
	for i, s := range samples {
		rotated := s * cmplx.Exp(complex(0, cfoRadPerSample*float64(i)))
		out[i] = rotated * complex(gamma, 0)
	}

	if tau != 0 {
		out = fractionalDelay(out, tau)
	}
	return out
}

// fractionalDelay applies a simple linear-interpolation fractional delay,
// sufficient for exercising a receiver's timing-offset robustness without
// needing a full resampling filter.
func fractionalDelay(samples []complex128, tau float64) []complex128 {
	out := make([]complex128, len(samples))
	for i := range samples {
		srcPos := float64(i) - tau
		lo := int(math.Floor(srcPos))
		frac := srcPos - float64(lo)

		var a, b complex128
		if lo >= 0 && lo < len(samples) {
			a = samples[lo]
		}
		if lo+1 >= 0 && lo+1 < len(samples) {
			b = samples[lo+1]
		}
		out[i] = a*complex(1-frac, 0) + b*complex(frac, 0)
	}
	return out
}

func writeIQ(w *os.File, samples []complex128) error {
	buf := make([]byte, 8)
	for _, s := range samples {
		binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(real(s))))
		binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(imag(s))))
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}
