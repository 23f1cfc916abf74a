package framesync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestReceiverNoiselessLoopbackDecodesFrame(t *testing.T) {
	var packet [PacketBytes]byte
	for i := range packet {
		packet[i] = byte(i * 3)
	}
	samples := ModulateTestFrame(packet)

	var gotHeader, gotBody []byte
	var gotValid bool
	callCount := 0
	cb := func(header []byte, headerValid bool, body []byte, bodyLen int, bodyValid bool, stats FrameStats, ctx interface{}) {
		callCount++
		gotHeader = append([]byte(nil), header...)
		gotBody = append([]byte(nil), body...)
		gotValid = headerValid && bodyValid
	}

	r := NewReceiver(cb, nil)
	r.Execute(samples)

	assert.Equal(t, 1, callCount, "expected exactly one callback per frame")
	assert.True(t, gotValid)
	assert.Equal(t, packet[:PacketHeaderBytes], gotHeader)
	assert.Equal(t, packet[PacketHeaderBytes:], gotBody)
}

func TestReceiverReturnsToDetectAfterFrame(t *testing.T) {
	var packet [PacketBytes]byte
	samples := ModulateTestFrame(packet)

	r := NewReceiver(nil, nil)
	r.Execute(samples)

	_, ok := r.state.(stateDetect)
	assert.True(t, ok, "receiver should return to DETECT after completing a frame")
}

func TestReceiverStateProgressesThroughPreambleAndPayload(t *testing.T) {
	var packet [PacketBytes]byte
	samples := ModulateTestFrame(packet)

	r := NewReceiver(nil, nil)

	preambleSeen, payloadSeen := false, false
	for i := range samples {
		r.Execute(samples[i : i+1])
		switch r.state.(type) {
		case statePreamble:
			preambleSeen = true
		case statePayload:
			payloadSeen = true
		}
	}

	assert.True(t, preambleSeen, "receiver should pass through RX_PREAMBLE")
	assert.True(t, payloadSeen, "receiver should pass through RX_PAYLOAD")
}

func TestReceiverHandlesBackToBackFrames(t *testing.T) {
	var packetA, packetB [PacketBytes]byte
	for i := range packetB {
		packetB[i] = byte(i + 1)
	}

	samples := append(ModulateTestFrame(packetA), ModulateTestFrame(packetB)...)

	var decoded [][]byte
	cb := func(header []byte, headerValid bool, body []byte, bodyLen int, bodyValid bool, stats FrameStats, ctx interface{}) {
		full := append(append([]byte(nil), header...), body...)
		decoded = append(decoded, full)
	}

	r := NewReceiver(cb, nil)
	r.Execute(samples)

	assert.Len(t, decoded, 2, "expected both back-to-back frames to decode")
}

func TestReceiverSplitExecuteCallsAreEquivalentToOneCall(t *testing.T) {
	var packet [PacketBytes]byte
	for i := range packet {
		packet[i] = byte(255 - i)
	}
	samples := ModulateTestFrame(packet)

	countOneShot := 0
	r1 := NewReceiver(func(h []byte, hv bool, b []byte, bl int, bv bool, s FrameStats, c interface{}) {
		countOneShot++
	}, nil)
	r1.Execute(samples)

	countSplit := 0
	r2 := NewReceiver(func(h []byte, hv bool, b []byte, bl int, bv bool, s FrameStats, c interface{}) {
		countSplit++
	}, nil)
	for _, s := range samples {
		r2.Execute([]complex128{s})
	}

	assert.Equal(t, countOneShot, countSplit)
	assert.Equal(t, 1, countSplit)
}

func TestReceiverNoiseOnlyInputNeverCallsBack(t *testing.T) {
	callCount := 0
	cb := func(h []byte, hv bool, b []byte, bl int, bv bool, s FrameStats, c interface{}) {
		callCount++
	}
	r := NewReceiver(cb, nil)

	noise := make([]complex128, detectorRefLen*4)
	r.Execute(noise)

	assert.Equal(t, 0, callCount)
	_, ok := r.state.(stateDetect)
	assert.True(t, ok)
}

func TestReceiverResetMidFrameReturnsToDetect(t *testing.T) {
	var packet [PacketBytes]byte
	samples := ModulateTestFrame(packet)

	r := NewReceiver(nil, nil)
	half := len(samples) / 2
	r.Execute(samples[:half])

	r.Reset()

	_, ok := r.state.(stateDetect)
	assert.True(t, ok)
	assert.Equal(t, 0, r.mfCounter)
}

func TestReceiverGarbledPayloadReportsInvalid(t *testing.T) {
	var packet [PacketBytes]byte
	for i := range packet {
		packet[i] = byte(i)
	}
	samples := ModulateTestFrame(packet)

	// Corrupt a block of samples deep inside the payload region, well past
	// the preamble and filter settle length, to push the CRC check over
	// the edge without touching detection.
	corruptFrom := len(samples) * 3 / 4
	for i := corruptFrom; i < corruptFrom+SamplesPerSymbol*20 && i < len(samples); i++ {
		samples[i] = -samples[i]
	}

	var gotValid bool
	called := false
	cb := func(h []byte, hv bool, b []byte, bl int, bv bool, s FrameStats, c interface{}) {
		called = true
		gotValid = hv && bv
	}

	r := NewReceiver(cb, nil)
	r.Execute(samples)

	assert.True(t, called)
	assert.False(t, gotValid)
}

func TestReceiverStateIsAlwaysOneOfTheThreeVariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(t, "n")
		samples := make([]complex128, n)
		for i := range samples {
			re := rapid.Float64Range(-2, 2).Draw(t, "re")
			im := rapid.Float64Range(-2, 2).Draw(t, "im")
			samples[i] = complex(re, im)
		}

		r := NewReceiver(nil, nil)
		r.Execute(samples)

		switch r.state.(type) {
		case stateDetect, statePreamble, statePayload:
		default:
			t.Fatalf("receiver in unrepresentable state %T", r.state)
		}
	})
}
