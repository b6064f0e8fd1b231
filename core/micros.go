package core

// Counter holds the microseconds elapsed since the clock was initialised.
// It is shared between the compare-match interrupt and normal execution;
// every access runs with interrupts disabled. Overflow wraps modulo 2^32.
type Counter struct {
	value uint32
}

// Reset sets the counter back to zero
func (c *Counter) Reset() {
	c.Store(0)
}

// Store overwrites the counter
func (c *Counter) Store(v uint32) {
	state := disableInterrupts()
	c.value = v
	restoreInterrupts(state)
}

// Add advances the counter by delta
func (c *Counter) Add(delta uint32) {
	state := disableInterrupts()
	c.value += delta
	restoreInterrupts(state)
}

// Load returns the current value
func (c *Counter) Load() uint32 {
	state := disableInterrupts()
	v := c.value
	restoreInterrupts(state)
	return v
}

// Clock is a micros() style elapsed-time source driven by a timer in CTC
// mode. Each compare match adds Increment() microseconds.
type Clock struct {
	cfg       TimerConfig
	increment uint32
	counter   Counter
}

// NewClock creates a clock for cfg. Nothing is touched until Init.
func NewClock(cfg TimerConfig) *Clock {
	return &Clock{
		cfg:       cfg,
		increment: cfg.Increment(),
	}
}

// Config returns the interval configuration
func (c *Clock) Config() TimerConfig {
	return c.cfg
}

// Increment returns the microseconds added per compare match
func (c *Clock) Increment() uint32 {
	return c.increment
}

// Init programs hw for the configured interval, arms the compare-match
// interrupt and resets the counter to zero. It must run before interrupts
// are enabled globally. An invalid configuration is fatal.
func (c *Clock) Init(hw TimerHardware) {
	if err := c.cfg.Validate(); err != nil {
		panic("micros: " + err.Error())
	}
	cs, _ := c.cfg.Prescaler.ClockSelect()

	hw.SetWaveformCTC()
	hw.SetCompare(c.cfg.Compare())
	hw.SetClockSelect(cs)
	hw.EnableCompareInterrupt(c.Tick)

	c.counter.Reset()

	DebugPrintln("[MICROS] timer armed, increment=" + utoa(c.increment) + "us")
}

// Tick is the compare-match handler. It runs in interrupt context and
// must stay short: one critical-section add.
func (c *Clock) Tick() {
	c.counter.Add(c.increment)
}

// Micros returns the elapsed microseconds. Safe to call from normal
// context at any time after Init.
func (c *Clock) Micros() uint32 {
	return c.counter.Load()
}

// SetMicros overwrites the elapsed time (for testing/hardware integration)
func (c *Clock) SetMicros(us uint32) {
	c.counter.Store(us)
}
