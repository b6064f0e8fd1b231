package core

import "tinygo.org/x/drivers"

// SerialBaud is the fixed line rate of the echo port
const SerialBaud = 57600

// SerialPort is a UART that still has to be configured. Read must not
// block when Buffered reports data; *machine.UART satisfies the embedded
// drivers.UART part.
type SerialPort interface {
	drivers.UART

	// Open configures the port for baud and routes its pins
	Open(baud uint32) error
}
