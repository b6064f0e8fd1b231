//go:build !tinygo

package core

import "sync"

// State is a placeholder for interrupt state on regular Go
type State uintptr

// interruptMask stands in for the global interrupt flag on regular Go.
// Holding it is the equivalent of running with interrupts disabled, so the
// simulated timer callback and normal code exclude each other the same way
// the ISR and the main loop do on hardware. Sections must not nest.
var interruptMask sync.Mutex

// disableInterrupts enters a critical section
func disableInterrupts() State {
	interruptMask.Lock()
	return 0
}

// restoreInterrupts leaves the critical section entered by disableInterrupts
func restoreInterrupts(state State) {
	interruptMask.Unlock()
}
