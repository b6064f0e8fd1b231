package sim

import (
	"errors"
	"io"
	"sync"
)

// ErrBaud is returned when the USART is opened without a line rate
var ErrBaud = errors.New("baud rate must be positive")

// UART models USART0 on top of a host reader and writer. Received bytes
// are moved into a FIFO by a background pump, so Buffered and Read never
// block, like the ring buffer behind machine.UART.
type UART struct {
	in  io.Reader
	out io.Writer

	mu   sync.Mutex
	rx   chan byte
	err  error
	baud uint32
}

// NewUART creates a USART reading from in and writing to out
func NewUART(in io.Reader, out io.Writer) *UART {
	return &UART{in: in, out: out}
}

// Open sets the line rate and starts receiving
func (u *UART) Open(baud uint32) error {
	if baud == 0 {
		return ErrBaud
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.baud = baud
	if u.rx == nil {
		u.rx = make(chan byte, 64)
		go u.pump(u.rx)
	}
	return nil
}

// Baud returns the configured line rate
func (u *UART) Baud() uint32 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.baud
}

func (u *UART) pump(rx chan byte) {
	var buf [64]byte
	for {
		n, err := u.in.Read(buf[:])
		for _, b := range buf[:n] {
			rx <- b
		}
		if err != nil {
			u.mu.Lock()
			u.err = err
			close(rx)
			u.mu.Unlock()
			return
		}
	}
}

func (u *UART) fifo() (chan byte, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rx, u.err
}

// Buffered returns the number of bytes ready to read. Once the input has
// failed it reports one so that Read can surface the error.
func (u *UART) Buffered() int {
	rx, err := u.fifo()
	n := len(rx)
	if n == 0 && err != nil {
		return 1
	}
	return n
}

// Read takes buffered bytes without blocking
func (u *UART) Read(p []byte) (int, error) {
	rx, _ := u.fifo()
	n := 0
	for n < len(p) {
		select {
		case b, ok := <-rx:
			if !ok {
				if n > 0 {
					return n, nil
				}
				_, err := u.fifo()
				return 0, err
			}
			p[n] = b
			n++
		default:
			return n, nil
		}
	}
	return n, nil
}

// Write transmits p
func (u *UART) Write(p []byte) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.out.Write(p)
}
