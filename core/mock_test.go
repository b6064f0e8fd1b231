package core

import (
	"errors"
	"io"
)

// mockTimer records register writes made through TimerHardware
type mockTimer struct {
	ctc       bool
	compare   uint8
	cs        ClockSelect
	handler   func()
	calls     []string
	armedOnce int
}

func (m *mockTimer) SetWaveformCTC() {
	m.ctc = true
	m.calls = append(m.calls, "ctc")
}

func (m *mockTimer) SetCompare(value uint8) {
	m.compare = value
	m.calls = append(m.calls, "compare")
}

func (m *mockTimer) SetClockSelect(cs ClockSelect) {
	m.cs = cs
	m.calls = append(m.calls, "clock")
}

func (m *mockTimer) EnableCompareInterrupt(handler func()) {
	m.handler = handler
	m.armedOnce++
	m.calls = append(m.calls, "irq")
}

// fire simulates n compare matches
func (m *mockTimer) fire(n int) {
	for i := 0; i < n; i++ {
		m.handler()
	}
}

// mockUART is an in-memory UART. Once the input is drained, Buffered
// keeps reporting one byte so Read can return io.EOF.
type mockUART struct {
	in       []byte
	out      []byte
	baud     uint32
	openErr  error
	writeErr error
	short    bool
}

func (u *mockUART) Open(baud uint32) error {
	u.baud = baud
	return u.openErr
}

func (u *mockUART) Buffered() int {
	if len(u.in) == 0 {
		return 1
	}
	return len(u.in)
}

func (u *mockUART) Read(p []byte) (int, error) {
	if len(u.in) == 0 {
		return 0, io.EOF
	}
	n := copy(p, u.in)
	u.in = u.in[n:]
	return n, nil
}

func (u *mockUART) Write(p []byte) (int, error) {
	if u.writeErr != nil {
		return 0, u.writeErr
	}
	if u.short {
		p = p[:len(p)/2]
	}
	u.out = append(u.out, p...)
	return len(p), nil
}

// mockBoard hands out a mock timer and UART
type mockBoard struct {
	timer      *mockTimer
	uart       *mockUART
	interrupts bool
}

func newMockBoard(input string) *mockBoard {
	return &mockBoard{
		timer: &mockTimer{},
		uart:  &mockUART{in: []byte(input)},
	}
}

func (b *mockBoard) Timer() TimerHardware { return b.timer }
func (b *mockBoard) Serial() SerialPort   { return b.uart }
func (b *mockBoard) EnableInterrupts()    { b.interrupts = true }

// fixedClock is a TimeSource that always reports the same time
type fixedClock uint32

func (c fixedClock) Micros() uint32 { return uint32(c) }

var errWire = errors.New("wire fault")

// releasePeripherals undoes TakePeripherals between tests
func releasePeripherals() {
	peripheralsTaken = false
}
