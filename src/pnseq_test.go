package framesync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPNSequenceLengthAndValues(t *testing.T) {
	pn := pnSequence()
	assert.Len(t, pn, PreambleSymbols)
	for i, v := range pn {
		assert.Truef(t, v == 1 || v == -1, "pn[%d] = %v, want +-1", i, v)
	}
}

func TestPNSequencePeriod63Wraps(t *testing.T) {
	pn := pnSequence()
	period := 63
	assert.Equal(t, pn[0], pn[period], "symbol 64 should repeat symbol 0 after the 63-period wrap")
}

func TestPNSequenceIsDeterministic(t *testing.T) {
	assert.Equal(t, pnSequence(), pnSequence())
}
