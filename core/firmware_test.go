package core

import (
	"errors"
	"io"
	"testing"
)

func TestTakePeripheralsOnce(t *testing.T) {
	releasePeripherals()
	defer releasePeripherals()

	board := newMockBoard("")
	p, err := TakePeripherals(board)
	if err != nil {
		t.Fatalf("First take failed: %v", err)
	}
	if p.Timer != board.timer || p.Serial != board.uart {
		t.Error("Peripherals do not come from the board")
	}

	if _, err := TakePeripherals(board); !errors.Is(err, ErrPeripheralsTaken) {
		t.Errorf("Expected ErrPeripheralsTaken, got %v", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected MustTakePeripherals to panic")
		}
	}()
	MustTakePeripherals(board)
}

func TestSetup(t *testing.T) {
	releasePeripherals()
	defer releasePeripherals()

	board := newMockBoard("A")
	fw := Setup(board, Interval1us)

	if board.uart.baud != 57600 {
		t.Errorf("Expected 57600 baud, got %d", board.uart.baud)
	}
	if !board.interrupts {
		t.Error("Interrupts not enabled")
	}
	if board.timer.handler == nil {
		t.Fatal("Timer not armed")
	}

	board.timer.fire(12345)
	if err := fw.Echo.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if got := string(board.uart.out); got != "Got 65 after 12345 us!\r\n" {
		t.Errorf("Unexpected output %q", got)
	}
}

func TestSetupFailures(t *testing.T) {
	testCases := []struct {
		name  string
		board func() *mockBoard
		cfg   TimerConfig
	}{
		{"serial", func() *mockBoard {
			b := newMockBoard("")
			b.uart.openErr = errWire
			return b
		}, Interval1ms},
		{"prescaler", func() *mockBoard { return newMockBoard("") }, TimerConfig{Prescaler: 100, Counts: 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			releasePeripherals()
			defer releasePeripherals()

			board := tc.board()
			defer func() {
				if r := recover(); r == nil {
					t.Error("Expected Setup to panic")
				}
				if board.interrupts {
					t.Error("Interrupts enabled after failed setup")
				}
			}()
			Setup(board, tc.cfg)
		})
	}
}

func TestRunHaltsOnSerialFailure(t *testing.T) {
	releasePeripherals()
	defer releasePeripherals()

	board := newMockBoard("")
	fw := Setup(board, Interval1ms)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected Run to panic")
		}
		if msg, _ := r.(string); msg != "micros: serial: "+io.EOF.Error() {
			t.Errorf("Unexpected panic %v", r)
		}
	}()
	fw.Run()
}
