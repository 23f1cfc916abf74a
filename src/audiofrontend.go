package framesync

/*------------------------------------------------------------------
 *
 * Purpose:   	Live capture front end: read a stereo soundcard stream (I
 *		on the left channel, Q on the right) and feed baseband
 *		samples into a Receiver.
 *
 * Description:	Using a stereo sound card as an I/Q source is the same
 *		trick SDR hobbyists (and the teacher's own audio front end)
 *		use for soundcard-based modems; here, instead of a single
 *		real-valued FM/AFSK channel, the left/right pair is treated
 *		directly as the real/imaginary parts of a complex baseband
 *		sample.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// AudioFrontEnd captures stereo audio and feeds it to a Receiver as
// complex baseband samples from a dedicated reader goroutine.
type AudioFrontEnd struct {
	stream *portaudio.Stream
	recv   *Receiver
	stop   chan struct{}
}

// The receiver works at SamplesPerSymbol samples per symbol; callers
// choose the sound card's actual sample rate (e.g. 9600*SamplesPerSymbol
// Hz for a 9600 baud-equivalent symbol rate), so this front end does not
// hardcode a rate itself.

// OpenAudioFrontEnd opens deviceName (or the host default input device if
// deviceName is "") at sampleRate Hz, stereo, and wires its output into
// recv.
func OpenAudioFrontEnd(deviceName string, sampleRate float64, recv *Receiver) (*AudioFrontEnd, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audiofrontend: initializing portaudio: %w", err)
	}

	dev, err := resolveInputDevice(deviceName)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	a := &AudioFrontEnd{recv: recv, stop: make(chan struct{})}

	const framesPerBuffer = 256

	params := portaudio.StreamParameters{ //nolint:exhaustruct
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: 2,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      sampleRate,
		FramesPerBuffer: framesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, func(in []float32) {
		a.onBuffer(in)
	})
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audiofrontend: opening stream: %w", err)
	}
	a.stream = stream

	if err := stream.Start(); err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audiofrontend: starting stream: %w", err)
	}

	Logger.Info("audio front end started", "device", dev.Name, "sampleRate", sampleRate)
	return a, nil
}

func (a *AudioFrontEnd) onBuffer(in []float32) {
	n := len(in) / 2
	samples := make([]complex128, n)
	for i := 0; i < n; i++ {
		samples[i] = complex(float64(in[2*i]), float64(in[2*i+1]))
	}
	a.recv.Execute(samples)
}

func resolveInputDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		return portaudio.DefaultInputDevice()
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("audiofrontend: enumerating devices: %w", err)
	}
	for _, d := range devices {
		if d.Name == name && d.MaxInputChannels >= 2 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("audiofrontend: no stereo input device named %q", name)
}

// Close stops capture and releases portaudio resources.
func (a *AudioFrontEnd) Close() error {
	close(a.stop)
	if a.stream == nil {
		return nil
	}
	err := a.stream.Stop()
	if closeErr := a.stream.Close(); err == nil {
		err = closeErr
	}
	portaudio.Terminate()
	return err
}
