package core

// Firmware is the running micros() demo: a clock and an echo loop on top
// of the board's peripherals
type Firmware struct {
	Peripherals *Peripherals
	Clock       *Clock
	Echo        *Echo
}

// Setup brings the board up: take the peripherals, open the serial port
// at SerialBaud, arm the timer for cfg and enable interrupts globally.
// Every failure here is fatal.
func Setup(b Board, cfg TimerConfig) *Firmware {
	p := MustTakePeripherals(b)

	if err := p.Serial.Open(SerialBaud); err != nil {
		panic("micros: serial: " + err.Error())
	}

	clock := NewClock(cfg)
	clock.Init(p.Timer)

	p.EnableInterrupts()
	DebugPrintln("[MICROS] interrupts enabled")

	return &Firmware{
		Peripherals: p,
		Clock:       clock,
		Echo:        NewEcho(p.Serial, clock),
	}
}

// Run serves the echo port forever. A serial failure halts the device.
func (f *Firmware) Run() {
	err := f.Echo.Serve()
	panic("micros: serial: " + err.Error())
}
