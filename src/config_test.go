package framesync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigIsInert(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ":7654", cfg.RelayAddr)
	assert.False(t, cfg.RelayAnnounce)
	assert.False(t, cfg.AFC)
	assert.Equal(t, -1, cfg.LockGPIOLine)
	assert.Empty(t, cfg.SerialDevice)
}

func TestLoadConfigOverridesDefaultsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "audio_device: hw:1,0\nrelay_addr: \":9000\"\nafc: true\nafc_threshold_hz: 5\n"
	assert.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "hw:1,0", cfg.AudioDevice)
	assert.Equal(t, ":9000", cfg.RelayAddr)
	assert.True(t, cfg.AFC)
	assert.Equal(t, 5.0, cfg.AFCThresholdHz)

	// Fields untouched by the YAML keep their DefaultConfig values.
	assert.Equal(t, 5, cfg.AFCConsecutiveFrames)
}

func TestLoadConfigMissingFileReturnsError(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}
