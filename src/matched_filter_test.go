package framesync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchedFilterBankResetClearsHistory(t *testing.T) {
	mf := newMatchedFilterBank()
	for i := 0; i < rrcTapsPerBranch; i++ {
		mf.push(complex(1, 1))
	}
	assert.NotEqual(t, complex128(0), mf.execute(0))

	mf.reset()
	assert.Equal(t, complex128(0), mf.execute(0))
}

func TestMatchedFilterBankSetScale(t *testing.T) {
	mf := newMatchedFilterBank()
	for i := 0; i < rrcTapsPerBranch; i++ {
		mf.push(complex(1, 0))
	}
	unscaled := mf.execute(0)

	mf.setScale(2)
	scaled := mf.execute(0)

	assert.InDelta(t, real(unscaled)*2, real(scaled), 1e-9)
}

func TestDesignPolyphaseRRCBranchesAreFinite(t *testing.T) {
	bank := designPolyphaseRRC()
	for phase := 0; phase < PolyphaseBranches; phase++ {
		for _, tap := range bank[phase] {
			assert.False(t, isNaNOrInf(tap), "phase %d has a non-finite tap", phase)
		}
	}
}

func isNaNOrInf(x float64) bool {
	return x != x || x > 1e300 || x < -1e300
}
