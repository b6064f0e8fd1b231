package core

import (
	"io"

	"tinygo.org/x/drivers"
)

// TimeSource is anything that reports elapsed microseconds
type TimeSource interface {
	Micros() uint32
}

// Echo waits for bytes on a UART and answers each one with the byte value
// and the elapsed time at which it was received.
type Echo struct {
	port  drivers.UART
	clock TimeSource

	// Idle runs while no input is buffered. nil spins.
	Idle func()

	in  [1]byte
	out [ReportMaxLen]byte
}

// NewEcho creates an echo loop on port reading time from clock
func NewEcho(port drivers.UART, clock TimeSource) *Echo {
	return &Echo{port: port, clock: clock}
}

// ReadByte blocks until one byte has been received
func (e *Echo) ReadByte() (byte, error) {
	for {
		if e.port.Buffered() == 0 {
			if e.Idle != nil {
				e.Idle()
			}
			continue
		}
		n, err := e.port.Read(e.in[:])
		if err != nil {
			return 0, err
		}
		if n == 1 {
			return e.in[0], nil
		}
	}
}

// Step handles exactly one received byte
func (e *Echo) Step() error {
	b, err := e.ReadByte()
	if err != nil {
		return err
	}
	line := AppendReport(e.out[:0], b, e.clock.Micros())
	n, err := e.port.Write(line)
	if err != nil {
		return err
	}
	if n != len(line) {
		return io.ErrShortWrite
	}
	return nil
}

// Serve answers bytes until the port fails. It only returns with an error.
func (e *Echo) Serve() error {
	for {
		if err := e.Step(); err != nil {
			return err
		}
	}
}
