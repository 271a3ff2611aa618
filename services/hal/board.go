package hal

import (
	"io"
	"time"

	"lvc-go/drivers/mcp3221"
	"lvc-go/errcode"
	"lvc-go/services/hal/internal/platform"
	"lvc-go/services/hal/internal/platform/boards"
	"lvc-go/services/lvc"
	"lvc-go/services/lvc/timebase"
)

// Options carries profile settings that shape the hardware.
type Options struct {
	SampleBits   uint8  // native sample resolution; 0 means 16
	TickMs       uint32 // overrides the board tick period when non-zero
	Subdivisions uint8  // tick source wakes per counted tick
	OnSubtick    func(whole bool)
}

// Board is an opened board: every collaborator the controller and the
// auxiliary services need.
type Board struct {
	Desc boards.Descriptor

	Sampler lvc.Sampler
	Clock   *TimeBase
	Load    *Output
	Green   *Output // nil when not fitted
	Red     *Output // nil when not fitted
	Power   *PowerManager

	// Telemetry is the serial writer for status frames; nil when disabled.
	Telemetry io.Writer

	regulator *Output
}

// Open configures the selected board on the default platform.
func Open(opt Options) (*Board, error) {
	return OpenWith(boards.Selected, platform.Default(), opt)
}

// OpenWith configures d on p. The load starts disconnected and the regulator,
// if fitted, enabled.
func OpenWith(d boards.Descriptor, p platform.Platform, opt Options) (*Board, error) {
	b := &Board{Desc: d}

	out := func(what string, spec boards.PinSpec, required bool) (*Output, error) {
		if !spec.Present() {
			if required {
				return nil, errcode.New(errcode.UnknownPin, "hal.Open", what+" pin required")
			}
			return nil, nil
		}
		pin, ok := p.Pins.ByNumber(spec.N)
		if !ok {
			return nil, errcode.New(errcode.UnknownPin, "hal.Open", what)
		}
		return newOutput(pin, spec.ActiveLow)
	}
	var err error
	if b.regulator, err = out("regulator", d.Regulator, false); err != nil {
		return nil, err
	}
	b.regulator.Set(true)
	if b.Load, err = out("load", d.Load, true); err != nil {
		return nil, err
	}
	if b.Green, err = out("green", d.Green, false); err != nil {
		return nil, err
	}
	if b.Red, err = out("red", d.Red, false); err != nil {
		return nil, err
	}

	var periph []interface{ Disable() }
	switch d.Sampler {
	case boards.SamplerADC:
		in, ok := p.ADCs.ByNumber(d.ADCPin)
		if !ok {
			return nil, errcode.New(errcode.UnknownPin, "hal.Open", "adc")
		}
		s := NewADCSampler(in, opt.SampleBits)
		b.Sampler = s
		periph = append(periph, s)
	case boards.SamplerMCP3221:
		i2c, ok := p.I2C.ByID(d.I2CBus)
		if !ok {
			return nil, errcode.New(errcode.UnknownBus, "hal.Open", d.I2CBus)
		}
		dev := mcp3221.New(i2c)
		if d.I2CAddr != 0 {
			dev.Address = d.I2CAddr
		}
		s := NewI2CSampler(dev, opt.SampleBits)
		b.Sampler = s
		periph = append(periph, s)
	default:
		return nil, errcode.New(errcode.UnknownSampler, "hal.Open", d.Sampler)
	}

	tickMs := d.TickMs
	if opt.TickMs != 0 {
		tickMs = opt.TickMs
	}
	if tickMs == 0 {
		return nil, errcode.New(errcode.InvalidTimeout, "hal.Open", "tick period unset")
	}
	subs := opt.Subdivisions
	if subs == 0 {
		subs = 1
	}
	period := time.Duration(tickMs) * time.Millisecond / time.Duration(subs)
	b.Clock = NewTimeBase(p.Gate(), period, timebase.Options{
		Subdivisions: subs,
		OnSubtick:    opt.OnSubtick,
	})
	periph = append(periph, b.Clock)

	if d.UART != "" {
		w, err := p.UART(d.UART, d.UARTTx, d.UARTRx, d.UARTBaud)
		if err != nil {
			println("[hal] telemetry uart unavailable:", err.Error())
		} else {
			b.Telemetry = w
		}
	}

	b.Power = &PowerManager{
		load:      b.Load,
		regulator: b.regulator,
		leds:      []*Output{b.Green, b.Red},
		periph:    periph,
		halt:      p.Halt,
	}
	return b, nil
}

// Hardware returns the controller's view of the board.
func (b *Board) Hardware() lvc.Hardware {
	return lvc.Hardware{
		Sampler: b.Sampler,
		Clock:   b.Clock,
		Load:    b.Load,
		Power:   b.Power,
	}
}
