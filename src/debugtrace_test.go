package framesync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugTraceEnableIsIdempotent(t *testing.T) {
	d := newDebugTrace()
	d.enable()
	d.enable()
	assert.True(t, d.enabled)

	d.disable()
	assert.False(t, d.enabled)
}

func TestDebugTracePushOnlyRecordsWhenEnabled(t *testing.T) {
	d := newDebugTrace()
	d.push(complex(1, 1))
	assert.Equal(t, 0, d.ringN)

	d.enable()
	d.push(complex(1, 1))
	assert.Equal(t, 1, d.ringN)
}

func TestDebugTraceRingWrapsAtCapacity(t *testing.T) {
	d := newDebugTrace()
	d.enable()
	for i := 0; i < debugRingLen+10; i++ {
		d.push(complex(float64(i), 0))
	}
	assert.Equal(t, debugRingLen, d.ringN)
}

func TestDebugTracePrintWithoutEnableIsNoOp(t *testing.T) {
	d := newDebugTrace()
	err := d.print(filepath.Join(t.TempDir(), "trace-%Y.txt"))
	assert.NoError(t, err)
}

func TestDebugTracePrintWritesFile(t *testing.T) {
	d := newDebugTrace()
	d.enable()
	d.push(complex(0.5, -0.5))
	d.recordPreamble([]complex128{1, -1})
	d.recordDataSyms([]complex128{complex(0.1, 0.2)})

	out := filepath.Join(t.TempDir(), "trace-fixed.txt")
	err := d.print(out)
	assert.NoError(t, err)

	contents, err := os.ReadFile(out)
	assert.NoError(t, err)
	assert.Contains(t, string(contents), "pn_reference")
	assert.Contains(t, string(contents), "plot(raw, pn_reference, preamble, payload)")
}
