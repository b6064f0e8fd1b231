package sim

import (
	"io"
	"sync/atomic"

	"micros/core"
)

// Board is a software Arduino Uno: TC0, USART0 and the global interrupt
// flag, enough to run the firmware on a workstation.
type Board struct {
	Timer0 *Timer0
	USART0 *UART

	sreg atomic.Bool
}

// NewBoard creates a board whose serial port reads in and writes out
func NewBoard(in io.Reader, out io.Writer) *Board {
	b := &Board{USART0: NewUART(in, out)}
	b.Timer0 = newTimer0(&b.sreg)
	return b
}

// Timer returns TC0
func (b *Board) Timer() core.TimerHardware {
	return b.Timer0
}

// Serial returns USART0
func (b *Board) Serial() core.SerialPort {
	return b.USART0
}

// EnableInterrupts sets the I bit
func (b *Board) EnableInterrupts() {
	b.sreg.Store(true)
}

// InterruptsEnabled reports the I bit
func (b *Board) InterruptsEnabled() bool {
	return b.sreg.Load()
}
