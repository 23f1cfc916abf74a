package framesync

import "time"

func sleepMS(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func sleepSec(s int) {
	sleepMS(s * 1000)
}

// ifThenElse exists because it's sometimes genuinely convenient to have
// C's ternary ?: in Go.
func ifThenElse[T any](x bool, a T, b T) T { //nolint:ireturn
	if x {
		return a
	}
	return b
}

// maxRelayClients bounds the number of simultaneous TCP clients the
// packet relay will serve.
const maxRelayClients = 8
