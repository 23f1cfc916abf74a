package main

/*------------------------------------------------------------------
 *
 * Purpose:   	Command-line frame receiver: wires a sample source (audio
 *		front end or serial) into a framesync.Receiver and reports
 *		decoded frames to stdout and/or the network relay.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/hex"
	"fmt"
	"os"

	framesync "github.com/kb9vic/framesync/src"
	"github.com/spf13/pflag"
)

func main() {
	configFile := pflag.StringP("config-file", "c", "", "YAML configuration file. If unset, built-in defaults are used.")
	audioDevice := pflag.StringP("audio-device", "a", "", "Stereo audio input device name. Empty uses the host default.")
	sampleRate := pflag.Float64P("sample-rate", "r", 9600*2*2, "Audio sample rate in Hz (SamplesPerSymbol * symbol rate).")
	serialDevice := pflag.StringP("serial-device", "s", "", "Serial device for raw I/Q input, instead of audio.")
	serialBaud := pflag.IntP("serial-baud", "b", 0, "Serial baud rate. 0 leaves the current speed alone.")
	relayAddr := pflag.StringP("relay-addr", "l", ":7654", "Listen address for the decoded-packet TCP relay.")
	relayAnnounce := pflag.BoolP("relay-announce", "m", false, "Announce the relay via mDNS/DNS-SD.")
	debugTrace := pflag.BoolP("debug-trace", "d", false, "Enable the post-mortem debug tracer.")
	logLevel := pflag.StringP("log-level", "v", "info", "Log level: debug, info, warn, error.")
	help := pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - a p/n-preamble QPSK frame receiver.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: framerecv [options]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	cfg := framesync.DefaultConfig()
	if *configFile != "" {
		loaded, err := framesync.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := framesync.SetLogLevel(cfg.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, "invalid log level:", err)
		os.Exit(1)
	}

	relay, err := framesync.NewPacketRelay(*relayAddr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer relay.Close()

	if *relayAnnounce || cfg.RelayAnnounce {
		if err := framesync.Announce(cfg.RelayName, relayPort(*relayAddr)); err != nil {
			framesync.Logger.Warn("could not announce relay via DNS-SD", "err", err)
		}
	}

	callback := func(header []byte, headerValid bool, payload []byte, payloadLen int, payloadValid bool, stats framesync.FrameStats, userContext interface{}) {
		fmt.Printf("frame: valid=%v header=%s payload=%s rssi=%.1fdB cfo=%.5f\n",
			payloadValid, hex.EncodeToString(header), hex.EncodeToString(payload), stats.RSSI, stats.CFO)
		relay.Publish(header, headerValid, payload, payloadValid, stats)
	}

	recv := framesync.NewReceiver(callback, nil)
	if *debugTrace || cfg.DebugTrace {
		recv.DebugEnable()
	}

	if *serialDevice != "" {
		src, err := framesync.OpenSerialSource(*serialDevice, *serialBaud)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer src.Close()

		if err := src.Run(recv, framesync.PayloadSymbolsWithPilots); err != nil {
			fmt.Fprintln(os.Stderr, "serial source stopped:", err)
			os.Exit(1)
		}
		return
	}

	front, err := framesync.OpenAudioFrontEnd(*audioDevice, *sampleRate, recv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer front.Close()

	select {}
}

func relayPort(addr string) int {
	var port int
	if _, err := fmt.Sscanf(addr, ":%d", &port); err != nil {
		return 0
	}
	return port
}
