package core

// TimerHardware is the 8-bit timer/counter unit the clock is built on.
// Platform-specific implementations write the actual registers.
type TimerHardware interface {
	// SetWaveformCTC selects clear-timer-on-compare-match mode
	SetWaveformCTC()

	// SetCompare writes the compare-match threshold (OCR0A)
	SetCompare(value uint8)

	// SetClockSelect writes the prescaler field, which starts the counter
	SetClockSelect(cs ClockSelect)

	// EnableCompareInterrupt attaches handler to the compare-match vector
	// and sets the match interrupt enable bit. The handler runs in
	// interrupt context.
	EnableCompareInterrupt(handler func())
}
