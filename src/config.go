package framesync

/*------------------------------------------------------------------
 *
 * Purpose:   	Runtime tuning configuration, loaded from a YAML file.
 *		The teacher's own config.go parses a custom line-oriented
 *		format for a much larger channel/modem matrix; this
 *		receiver's configurable surface is small enough to express
 *		directly as YAML, a format the teacher already depends on
 *		for other exported structures.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the receiver's runtime-tunable knobs: nothing here changes
// the waveform itself (see constants.go for those fixed parameters) — only
// how the process wires samples in and decoded frames out.
type Config struct {
	// AudioDevice names the portaudio input device to capture from, or
	// "" to use the host default.
	AudioDevice string `yaml:"audio_device"`

	// SerialDevice, if non-empty, reads raw I/Q samples from this serial
	// device instead of a sound card.
	SerialDevice string `yaml:"serial_device"`
	SerialBaud   int    `yaml:"serial_baud"`

	// RelayAddr is the listen address for the decoded-packet TCP relay,
	// e.g. ":7654".
	RelayAddr string `yaml:"relay_addr"`
	// RelayAnnounce controls whether the relay advertises itself via
	// mDNS/DNS-SD.
	RelayAnnounce bool   `yaml:"relay_announce"`
	RelayName     string `yaml:"relay_name"`

	// LockGPIOLine, if >= 0, is asserted for the duration of
	// RX_PREAMBLE/RX_PAYLOAD as a frame-lock status output.
	LockGPIOChip string `yaml:"lock_gpio_chip"`
	LockGPIOLine int    `yaml:"lock_gpio_line"`

	// AFC enables automatic frequency correction via Hamlib once the
	// detector's frequency offset estimate exceeds AFCThresholdHz across
	// AFCConsecutiveFrames consecutive frames.
	AFC                   bool    `yaml:"afc"`
	AFCRigModel           int     `yaml:"afc_rig_model"`
	AFCRigPort            string  `yaml:"afc_rig_port"`
	AFCThresholdHz        float64 `yaml:"afc_threshold_hz"`
	AFCConsecutiveFrames  int     `yaml:"afc_consecutive_frames"`

	// DebugTrace enables the C8 ring-buffer post-mortem tracer at startup.
	DebugTrace        bool   `yaml:"debug_trace"`
	DebugTracePattern string `yaml:"debug_trace_pattern"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sane, inert defaults: no AFC, no
// GPIO lock indicator, no serial source, relay listening on :7654 without
// mDNS announcement.
func DefaultConfig() Config {
	return Config{
		RelayAddr:            ":7654",
		RelayAnnounce:        false,
		RelayName:            "",
		LockGPIOLine:         -1,
		AFC:                  false,
		AFCThresholdHz:       0.01,
		AFCConsecutiveFrames: 5,
		DebugTracePattern:    "framesync-%Y%m%d-%H%M%S.txt",
		LogLevel:             "info",
	}
}

// LoadConfig reads and parses a YAML config file, starting from
// DefaultConfig so unset fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}
