//go:build atmega328p

package main

import (
	"device/avr"
	"runtime/interrupt"

	"micros/core"
)

// TC0 register bits (ATmega328P datasheet, section 14.9)
const (
	tccr0aWGM01  = 1 << 1
	tccr0bCSMask = 0x07
	timsk0OCIE0A = 1 << 1
)

// compareHandler is called from the TIMER0_COMPA vector
var compareHandler func()

// timer0 drives the 8-bit timer/counter 0
type timer0 struct{}

// SetWaveformCTC selects mode 2: WGM01 in TCCR0A, WGM02 clear in TCCR0B
func (timer0) SetWaveformCTC() {
	avr.TCCR0A.Set(tccr0aWGM01)
}

func (timer0) SetCompare(value uint8) {
	avr.OCR0A.Set(value)
}

// SetClockSelect writes CS0[2:0]; this starts the counter
func (timer0) SetClockSelect(cs core.ClockSelect) {
	avr.TCCR0B.Set(uint8(cs) & tccr0bCSMask)
}

func (timer0) EnableCompareInterrupt(handler func()) {
	compareHandler = handler
	interrupt.New(avr.IRQ_TIMER0_COMPA, func(interrupt.Interrupt) {
		compareHandler()
	})
	avr.TIMSK0.Set(timsk0OCIE0A)
}
