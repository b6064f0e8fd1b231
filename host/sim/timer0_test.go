package sim

import (
	"context"
	"testing"
	"time"

	"micros/core"
)

func TestTimer0Registers(t *testing.T) {
	board := NewBoard(nil, nil)
	clock := core.NewClock(core.Interval1ms)
	clock.Init(board.Timer0)

	if got := board.Timer0.Read(TCCR0A); got != WGM01 {
		t.Errorf("TCCR0A: expected 0x%02X, got 0x%02X", WGM01, got)
	}
	if got := board.Timer0.Read(TCCR0B); got != uint8(core.ClockDiv64) {
		t.Errorf("TCCR0B: expected 0x%02X, got 0x%02X", core.ClockDiv64, got)
	}
	if got := board.Timer0.Read(OCR0A); got != 249 {
		t.Errorf("OCR0A: expected 249, got %d", got)
	}
	if got := board.Timer0.Read(TIMSK0); got != OCIE0A {
		t.Errorf("TIMSK0: expected 0x%02X, got 0x%02X", OCIE0A, got)
	}
	if !board.Timer0.CTC() {
		t.Error("Timer not in CTC mode")
	}
}

func TestTimer0InitClearsOtherInterrupts(t *testing.T) {
	board := NewBoard(nil, nil)
	// left behind by whoever used TC0 before
	board.Timer0.Write(TIMSK0, TOIE0)

	core.NewClock(core.Interval1ms).Init(board.Timer0)

	if got := board.Timer0.Read(TIMSK0); got != OCIE0A {
		t.Errorf("TIMSK0: expected only OCIE0A (0x%02X), got 0x%02X", OCIE0A, got)
	}
}

func TestTimer0Period(t *testing.T) {
	for name, cfg := range core.Presets {
		board := NewBoard(nil, nil)
		core.NewClock(cfg).Init(board.Timer0)

		period, ok := board.Timer0.Period()
		if !ok {
			t.Fatalf("%s: timer not running", name)
		}
		expected := time.Duration(cfg.Increment()) * time.Microsecond
		if period != expected {
			t.Errorf("%s: expected period %v, got %v", name, expected, period)
		}
	}

	board := NewBoard(nil, nil)
	if _, ok := board.Timer0.Period(); ok {
		t.Error("Unconfigured timer should have no period")
	}
}

func TestTimer0StepNeedsGlobalInterrupts(t *testing.T) {
	board := NewBoard(nil, nil)
	clock := core.NewClock(core.Interval1us)
	clock.Init(board.Timer0)

	if n := board.Timer0.Step(10); n != 0 {
		t.Errorf("Expected no matches with interrupts disabled, got %d", n)
	}
	if clock.Micros() != 0 {
		t.Errorf("Clock advanced with interrupts disabled: %d", clock.Micros())
	}

	board.EnableInterrupts()
	if n := board.Timer0.Step(1000); n != 1000 {
		t.Errorf("Expected 1000 matches, got %d", n)
	}
	if clock.Micros() != 1000 {
		t.Errorf("Expected 1000us, got %d", clock.Micros())
	}
	if board.Timer0.Matches() != 1000 {
		t.Errorf("Expected 1000 matches counted, got %d", board.Timer0.Matches())
	}
}

func TestTimer0Run(t *testing.T) {
	board := NewBoard(nil, nil)
	clock := core.NewClock(core.Interval1ms)
	clock.Init(board.Timer0)
	board.EnableInterrupts()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := board.Timer0.Run(ctx, time.Millisecond); err != context.DeadlineExceeded {
		t.Fatalf("Expected DeadlineExceeded, got %v", err)
	}

	us := clock.Micros()
	if us == 0 {
		t.Fatal("Clock did not advance")
	}
	if us > 100000 {
		t.Errorf("Clock ran ahead of wall time: %dus", us)
	}
	if us%1000 != 0 {
		t.Errorf("Expected whole milliseconds, got %dus", us)
	}
}
