// services/hal/internal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"device/arm"
	"device/rp"
	"errors"
	"io"
	"machine"
	"runtime/interrupt"

	"lvc-go/services/lvc/timebase"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"
)

// Default configures the RP2 peripherals used by the board descriptors.
func Default() Platform {
	return Platform{
		Pins: rp2PinFactory{},
		ADCs: &rp2ADCFactory{},
		I2C:  defaultI2CFactory(),
		UART: configureUART,
		Gate: func() timebase.Gate { return irqGate{} },
		Halt: halt,
	}
}

// ---- I²C ----

// defaultI2CFactory configures i2c0 and i2c1 with board-default pins at 400 kHz.
func defaultI2CFactory() I2CBusFactory {
	f := &rp2I2CFactory{buses: make(map[string]drivers.I2C)}

	b0 := machine.I2C0
	_ = b0.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	})
	f.buses["i2c0"] = b0

	b1 := machine.I2C1
	_ = b1.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C1_SDA_PIN,
		SCL:       machine.I2C1_SCL_PIN,
	})
	f.buses["i2c1"] = b1

	return f
}

type rp2I2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *rp2I2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// ---- GPIO ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (GPIO, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP28).
	if n < 0 || n > 28 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// ---- ADC ----

type rp2ADCFactory struct{ inited bool }

// ByNumber accepts the ADC-capable pins GP26..GP29.
func (f *rp2ADCFactory) ByNumber(n int) (AnalogIn, bool) {
	if n < 26 || n > 29 {
		return nil, false
	}
	if !f.inited {
		machine.InitADC()
		f.inited = true
	}
	a := machine.ADC{Pin: machine.Pin(n)}
	a.Configure(machine.ADCConfig{})
	return rp2ADC{a: a}, true
}

type rp2ADC struct{ a machine.ADC }

func (r rp2ADC) Get() uint16 { return r.a.Get() }

// Disable powers the converter down. All channels share it.
func (rp2ADC) Disable() { rp.ADC.CS.ClearBits(rp.ADC_CS_EN) }

// ---- UART ----

func configureUART(id string, tx, rx int, baud uint32) (io.Writer, error) {
	var hw *uartx.UART
	switch id {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, errors.New("unknown uart: " + id)
	}
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(tx),
		RX:       machine.Pin(rx),
	}); err != nil {
		return nil, err
	}
	return hw, nil
}

// ---- interrupt gate and halt ----

type irqGate struct{}

func (irqGate) Disable() timebase.Mask  { return timebase.Mask(interrupt.Disable()) }
func (irqGate) Restore(m timebase.Mask) { interrupt.Restore(interrupt.State(m)) }

// halt parks the core with interrupts masked. The loop guards against
// spurious wakes.
func halt() {
	interrupt.Disable()
	for {
		arm.Asm("wfi")
	}
}
