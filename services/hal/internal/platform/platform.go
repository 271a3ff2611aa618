// Package platform binds the HAL to a target: TinyGo machine peripherals on
// RP2 parts, in-memory fakes everywhere else.
package platform

import (
	"io"

	"lvc-go/services/lvc/timebase"

	"tinygo.org/x/drivers"
)

// GPIO is a push-pull output pin.
type GPIO interface {
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// AnalogIn is one ADC channel. Get returns a left-justified 16-bit result, the
// way machine.ADC does.
type AnalogIn interface {
	Get() uint16
	Disable()
}

type PinFactory interface {
	ByNumber(n int) (GPIO, bool)
}

type ADCFactory interface {
	ByNumber(n int) (AnalogIn, bool)
}

type I2CBusFactory interface {
	ByID(id string) (drivers.I2C, bool)
}

// Platform is the set of factories and primitives the board is opened with.
type Platform struct {
	Pins PinFactory
	ADCs ADCFactory
	I2C  I2CBusFactory

	// UART configures a serial port for output.
	UART func(id string, tx, rx int, baud uint32) (io.Writer, error)
	// Gate returns the tick interrupt's delivery gate.
	Gate func() timebase.Gate
	// Halt stops the core for good. It returns only on hosts.
	Halt func()
}
