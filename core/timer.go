package core

import "errors"

// ClockMHz is the nominal CPU clock the timer prescaler divides (16MHz Uno).
const ClockMHz = 16

// Prescaler is a timer clock divider. Only the constants below are
// supported by the timer's clock-select field.
type Prescaler uint16

const (
	Prescale8    Prescaler = 8
	Prescale64   Prescaler = 64
	Prescale256  Prescaler = 256
	Prescale1024 Prescaler = 1024
)

// ClockSelect is the raw value of the CS0[2:0] field in TCCR0B
type ClockSelect uint8

const (
	ClockStopped ClockSelect = 0b000
	ClockDiv1    ClockSelect = 0b001
	ClockDiv8    ClockSelect = 0b010
	ClockDiv64   ClockSelect = 0b011
	ClockDiv256  ClockSelect = 0b100
	ClockDiv1024 ClockSelect = 0b101
)

var (
	ErrPrescaler = errors.New("unsupported prescaler (want 8, 64, 256 or 1024)")
	ErrCounts    = errors.New("timer counts out of range (want 1..256)")
	ErrInexact   = errors.New("prescaler*counts is not a whole number of microseconds")
)

// ClockSelect maps the divider onto its clock-select bits
func (p Prescaler) ClockSelect() (ClockSelect, error) {
	switch p {
	case Prescale8:
		return ClockDiv8, nil
	case Prescale64:
		return ClockDiv64, nil
	case Prescale256:
		return ClockDiv256, nil
	case Prescale1024:
		return ClockDiv1024, nil
	}
	return ClockStopped, ErrPrescaler
}

// Divisor returns the divider for a clock-select value, 0 when the
// timer is stopped or the value is not a plain divider.
func (cs ClockSelect) Divisor() uint32 {
	switch cs {
	case ClockDiv1:
		return 1
	case ClockDiv8:
		return 8
	case ClockDiv64:
		return 64
	case ClockDiv256:
		return 256
	case ClockDiv1024:
		return 1024
	}
	return 0
}

// TimerConfig is one row of the interval menu:
//
//	PRESCALER  COUNTS  INTERVAL
//	        8       2      1 us
//	       64     250      1 ms
//	      256     125      2 ms
//	      256     250      4 ms
//	     1024     125      8 ms
//	     1024     250     16 ms
//
// COUNTS is the period in prescaled ticks; OCR0A is written with COUNTS-1.
type TimerConfig struct {
	Prescaler Prescaler
	// Counts is the number of prescaled ticks per compare match
	Counts uint16
}

var (
	Interval1us  = TimerConfig{Prescaler: Prescale8, Counts: 2}
	Interval1ms  = TimerConfig{Prescaler: Prescale64, Counts: 250}
	Interval2ms  = TimerConfig{Prescaler: Prescale256, Counts: 125}
	Interval4ms  = TimerConfig{Prescaler: Prescale256, Counts: 250}
	Interval8ms  = TimerConfig{Prescaler: Prescale1024, Counts: 125}
	Interval16ms = TimerConfig{Prescaler: Prescale1024, Counts: 250}
)

// Presets lists the interval menu by name
var Presets = map[string]TimerConfig{
	"1us":  Interval1us,
	"1ms":  Interval1ms,
	"2ms":  Interval2ms,
	"4ms":  Interval4ms,
	"8ms":  Interval8ms,
	"16ms": Interval16ms,
}

// Validate checks that the configuration can be programmed and yields a
// whole number of microseconds per compare match.
func (cfg TimerConfig) Validate() error {
	if _, err := cfg.Prescaler.ClockSelect(); err != nil {
		return err
	}
	if cfg.Counts < 1 || cfg.Counts > 256 {
		return ErrCounts
	}
	if (uint32(cfg.Prescaler)*uint32(cfg.Counts))%ClockMHz != 0 {
		return ErrInexact
	}
	return nil
}

// Increment returns the microseconds added per compare match
func (cfg TimerConfig) Increment() uint32 {
	return uint32(cfg.Prescaler) * uint32(cfg.Counts) / ClockMHz
}

// Compare returns the OCR0A value. In CTC mode the counter runs 0..OCR0A,
// so one period is OCR0A+1 prescaled ticks.
func (cfg TimerConfig) Compare() uint8 {
	return uint8(cfg.Counts - 1)
}
