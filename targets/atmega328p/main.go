//go:build atmega328p

package main

import (
	"runtime/interrupt"

	"micros/core"
)

// timerConfig picks the compare-match interval from core's menu. The
// finest row (1us) costs most of the CPU in the ISR; pick a coarser
// preset when the echo loop needs headroom.
var timerConfig = core.Interval1us

func main() {
	// The runtime may have set the I bit during init. Keep it clear until
	// Setup has armed the timer and enables it itself.
	interrupt.Disable()

	fw := core.Setup(board{}, timerConfig)
	fw.Run()
}
