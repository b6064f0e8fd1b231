package core

import "errors"

// ErrPeripheralsTaken is returned when the peripherals are taken twice
var ErrPeripheralsTaken = errors.New("peripherals already taken")

// Board is implemented by target code and hands out the raw peripherals
type Board interface {
	// Timer returns the timer/counter the clock runs on
	Timer() TimerHardware

	// Serial returns the echo UART
	Serial() SerialPort

	// EnableInterrupts sets the global interrupt enable flag
	EnableInterrupts()
}

// Peripherals is the sole owner of the board's hardware
type Peripherals struct {
	Timer  TimerHardware
	Serial SerialPort

	board Board
}

var peripheralsTaken bool

// TakePeripherals hands out the board's peripherals. It succeeds once per
// process; later calls return ErrPeripheralsTaken.
func TakePeripherals(b Board) (*Peripherals, error) {
	state := disableInterrupts()
	taken := peripheralsTaken
	peripheralsTaken = true
	restoreInterrupts(state)

	if taken {
		return nil, ErrPeripheralsTaken
	}
	return &Peripherals{
		Timer:  b.Timer(),
		Serial: b.Serial(),
		board:  b,
	}, nil
}

// MustTakePeripherals returns the peripherals or panics if already taken
func MustTakePeripherals(b Board) *Peripherals {
	p, err := TakePeripherals(b)
	if err != nil {
		panic("micros: " + err.Error())
	}
	return p
}

// EnableInterrupts enables interrupts globally. From here on the
// compare-match handler may preempt normal code.
func (p *Peripherals) EnableInterrupts() {
	p.board.EnableInterrupts()
}
