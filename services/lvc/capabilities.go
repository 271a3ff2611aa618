package lvc

import "lvc-go/services/lvc/timebase"

// Sample is one analog reading in the sampler's native resolution.
type Sample uint16

// Sampler triggers one conversion and returns the result. No averaging.
type Sampler interface {
	Sample() Sample
}

// Clock exposes the time base's read accessor only.
type Clock interface {
	Elapsed() timebase.Ticks
}

// DigitalOutput is a hardware-backed logical output.
type DigitalOutput interface {
	Set(on bool)
}

// PowerController enters the unrecoverable low-power state. On hardware the
// call does not return.
type PowerController interface {
	EnterTerminalSleep()
}

// disabler is feature-detected on Sampler and Clock so shutdown can power
// their peripherals down.
type disabler interface {
	Disable()
}

// LoadSwitch connects and disconnects the downstream load. Both operations are
// idempotent.
type LoadSwitch struct {
	out       DigitalOutput
	connected bool
}

func NewLoadSwitch(out DigitalOutput) *LoadSwitch { return &LoadSwitch{out: out} }

func (l *LoadSwitch) Connect() {
	l.out.Set(true)
	l.connected = true
}

func (l *LoadSwitch) Disconnect() {
	l.out.Set(false)
	l.connected = false
}

func (l *LoadSwitch) Connected() bool { return l.connected }
