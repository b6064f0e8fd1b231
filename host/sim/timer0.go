package sim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"micros/core"
)

// ATmega328P data-space addresses of the TC0 registers
const (
	TCCR0A = 0x44
	TCCR0B = 0x45
	TCNT0  = 0x46
	OCR0A  = 0x47
	TIMSK0 = 0x6E
)

// TC0 register bits
const (
	WGM00   = 1 << 0 // TCCR0A
	WGM01   = 1 << 1 // TCCR0A
	WGM02   = 1 << 3 // TCCR0B
	CS0Mask = 0x07   // TCCR0B
	TOIE0   = 1 << 0 // TIMSK0
	OCIE0A  = 1 << 1 // TIMSK0
)

// maxBurst caps the compare matches delivered in one catch-up. The real
// unit latches a single pending flag, so matches beyond that are lost.
const maxBurst = 1 << 16

// Timer0 models the 8-bit timer/counter 0. Compare matches are delivered
// to the attached handler either on demand (Step) or from Run, which
// stands in for the hardware's own clock.
type Timer0 struct {
	mu      sync.Mutex
	tccr0a  uint8
	tccr0b  uint8
	ocr0a   uint8
	timsk0  uint8
	handler func()

	// global interrupt enable (SREG I bit) owned by the board
	sreg *atomic.Bool

	matches atomic.Uint64
}

func newTimer0(sreg *atomic.Bool) *Timer0 {
	return &Timer0{sreg: sreg}
}

// Read returns the value of a TC0 register
func (t *Timer0) Read(addr uint16) uint8 {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch addr {
	case TCCR0A:
		return t.tccr0a
	case TCCR0B:
		return t.tccr0b
	case OCR0A:
		return t.ocr0a
	case TIMSK0:
		return t.timsk0
	}
	return 0
}

// Write stores a TC0 register
func (t *Timer0) Write(addr uint16, value uint8) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch addr {
	case TCCR0A:
		t.tccr0a = value
	case TCCR0B:
		t.tccr0b = value
	case OCR0A:
		t.ocr0a = value
	case TIMSK0:
		t.timsk0 = value
	}
}

// SetWaveformCTC selects mode 2 (WGM0 = 010)
func (t *Timer0) SetWaveformCTC() {
	t.Write(TCCR0A, t.Read(TCCR0A)&^(WGM00|WGM01)|WGM01)
	t.Write(TCCR0B, t.Read(TCCR0B)&^WGM02)
}

// SetCompare writes OCR0A
func (t *Timer0) SetCompare(value uint8) {
	t.Write(OCR0A, value)
}

// SetClockSelect writes CS0[2:0]
func (t *Timer0) SetClockSelect(cs core.ClockSelect) {
	t.Write(TCCR0B, t.Read(TCCR0B)&^CS0Mask|uint8(cs)&CS0Mask)
}

// EnableCompareInterrupt attaches the TIMER0_COMPA vector. OCIE0A becomes
// the only enabled TC0 interrupt.
func (t *Timer0) EnableCompareInterrupt(handler func()) {
	t.mu.Lock()
	t.handler = handler
	t.timsk0 = OCIE0A
	t.mu.Unlock()
}

// CTC reports whether the unit is in clear-timer-on-compare mode
func (t *Timer0) CTC() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wgm := t.tccr0a&(WGM00|WGM01) | (t.tccr0b&WGM02)>>1
	return wgm == WGM01
}

// Period returns the time between compare matches. ok is false while
// the clock is stopped or the unit is not in CTC mode.
func (t *Timer0) Period() (period time.Duration, ok bool) {
	if !t.CTC() {
		return 0, false
	}
	t.mu.Lock()
	divisor := core.ClockSelect(t.tccr0b & CS0Mask).Divisor()
	ticks := uint64(t.ocr0a) + 1
	t.mu.Unlock()

	if divisor == 0 {
		return 0, false
	}
	ns := ticks * uint64(divisor) * 1000 / core.ClockMHz
	return time.Duration(ns), true
}

// Armed reports whether a compare match would reach the handler
func (t *Timer0) Armed() bool {
	if _, ok := t.Period(); !ok {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.handler != nil && t.timsk0&OCIE0A != 0 && t.sreg.Load()
}

// Matches returns the number of compare matches delivered so far
func (t *Timer0) Matches() uint64 {
	return t.matches.Load()
}

// Step delivers n compare matches immediately and returns how many
// reached the handler (zero when the unit is not armed).
func (t *Timer0) Step(n int) int {
	if n <= 0 || !t.Armed() {
		return 0
	}
	t.mu.Lock()
	handler := t.handler
	t.mu.Unlock()

	for i := 0; i < n; i++ {
		handler()
	}
	t.matches.Add(uint64(n))
	return n
}

// Run delivers compare matches in real time until ctx is done, checking
// the wall clock every resolution and catching up on the matches due.
func (t *Timer0) Run(ctx context.Context, resolution time.Duration) error {
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()

	var (
		start      = time.Now()
		fired      uint64
		lastPeriod time.Duration
	)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			period, ok := t.Period()
			if !ok || !t.Armed() || period != lastPeriod {
				start, fired, lastPeriod = now, 0, period
				continue
			}

			due := uint64(now.Sub(start) / period)
			if due <= fired {
				continue
			}
			n := due - fired
			if n > maxBurst {
				n = maxBurst
			}
			t.Step(int(n))
			fired = due
		}
	}
}
