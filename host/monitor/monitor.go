// Package monitor drives a running micros board from the host: it sends
// single bytes, reads back the report lines and tracks how much board
// time passed between replies.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"micros/core"
)

// ErrMismatch is returned when a reply names a different byte than the one sent
var ErrMismatch = errors.New("reply does not match sent byte")

// Sample is one reply together with the board time since the previous one
type Sample struct {
	core.Report

	// Delta is the elapsed board time since the previous sample
	Delta uint32

	// HasDelta is false for the first sample of a session
	HasDelta bool
}

func (s Sample) String() string {
	if !s.HasDelta {
		return s.Report.String()
	}
	return fmt.Sprintf("%s  (+%d us)", s.Report.String(), s.Delta)
}

// Monitor talks to the board over a serial connection
type Monitor struct {
	port io.ReadWriter
	r    *bufio.Reader

	last    uint32
	hasLast bool
}

// New creates a monitor on port
func New(port io.ReadWriter) *Monitor {
	return &Monitor{
		port: port,
		r:    bufio.NewReaderSize(port, 256),
	}
}

// Send transmits b and waits for its report
func (m *Monitor) Send(b byte) (Sample, error) {
	if _, err := m.port.Write([]byte{b}); err != nil {
		return Sample{}, fmt.Errorf("failed to send byte %d: %w", b, err)
	}

	line, err := m.r.ReadString('\n')
	if err != nil {
		return Sample{}, fmt.Errorf("failed to read reply to byte %d: %w", b, err)
	}
	report, err := core.ParseReport(line)
	if err != nil {
		return Sample{}, err
	}
	if report.Byte != b {
		return Sample{}, fmt.Errorf("%w: sent %d, got %d", ErrMismatch, b, report.Byte)
	}

	s := Sample{Report: report}
	if m.hasLast {
		s.Delta = core.Elapsed(m.last, report.Micros)
		s.HasDelta = true
	}
	m.last, m.hasLast = report.Micros, true
	return s, nil
}

// SendAll sends data one byte at a time, waiting for each reply
func (m *Monitor) SendAll(data []byte) ([]Sample, error) {
	samples := make([]Sample, 0, len(data))
	for _, b := range data {
		s, err := m.Send(b)
		if err != nil {
			return samples, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// Reset forgets the previous reading, e.g. after the board was restarted
func (m *Monitor) Reset() {
	m.hasLast = false
	m.r.Reset(m.port)
}
