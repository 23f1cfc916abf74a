package framesync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCRC24RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOfN(rapid.Byte(), PacketBytes, PacketBytes).Draw(t, "data")
		framed := appendCRC24(append([]byte(nil), data...))
		assert.True(t, checkCRC24(framed))
	})
}

func TestCRC24DetectsSingleBitFlip(t *testing.T) {
	data := make([]byte, PacketBytes)
	for i := range data {
		data[i] = byte(i * 7)
	}
	framed := appendCRC24(data)

	for bit := 0; bit < len(framed)*8; bit++ {
		corrupted := append([]byte(nil), framed...)
		corrupted[bit/8] ^= 1 << uint(bit%8)
		assert.False(t, checkCRC24(corrupted), "undetected single-bit error at bit %d", bit)
	}
}
