package hal

import "time"

// SpinDelay is a counted busy-wait. One unit is LoopsPerUnit iterations of an empty loop, so the
// real duration depends on the core clock and the compiler.
type SpinDelay struct {
	LoopsPerUnit uint32
}

// spinSink keeps the counting loop from being optimized away.
var spinSink uint32

func (d SpinDelay) Wait(units uint32) {
	n := d.LoopsPerUnit
	if n == 0 {
		n = 1
	}
	for u := uint32(0); u < units; u++ {
		for i := uint32(0); i < n; i++ {
			spinSink++
		}
	}
}

// SleepDelay waits Unit per unit using the runtime timer.
type SleepDelay struct {
	Unit time.Duration
}

func (d SleepDelay) Wait(units uint32) {
	if units == 0 || d.Unit <= 0 {
		return
	}
	time.Sleep(time.Duration(units) * d.Unit)
}
