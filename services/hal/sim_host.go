//go:build !rp2040 && !rp2350

package hal

import (
	"lvc-go/services/hal/internal/platform"
	"lvc-go/services/hal/internal/platform/boards"
	"lvc-go/services/lvc"
	"lvc-go/services/lvc/timebase"
)

// Sim is a host board whose inputs are driven by hand.
type Sim struct {
	*Board
	host *platform.Host
	bits uint8
	subs int
}

// OpenSim opens the host simulation board.
func OpenSim(opt Options) (*Sim, error) {
	h := platform.NewHost()
	b, err := OpenWith(boards.HostSim, h.Platform(), opt)
	if err != nil {
		return nil, err
	}
	subs := int(opt.Subdivisions)
	if subs == 0 {
		subs = 1
	}
	return &Sim{Board: b, host: h, bits: clampBits(opt.SampleBits), subs: subs}, nil
}

// SetSample makes the next conversions read s in native units.
func (s *Sim) SetSample(v lvc.Sample) {
	s.host.ADCs.Get(s.Desc.ADCPin).SetRaw(uint16(v) << (16 - s.bits))
}

// Tick advances the count by n ticks, running the handler once per
// subdivision as the timer interrupt would.
func (s *Sim) Tick(n int) {
	for i := 0; i < n*s.subs; i++ {
		timebase.Deliver(s.Clock.gate, s.Clock.counter.Tick)
	}
}

// Halted reports whether terminal sleep reached the halt step.
func (s *Sim) Halted() bool { return s.host.Halts() > 0 }

// Regulator reports the regulator enable output.
func (s *Sim) Regulator() bool { return s.regulator.On() }

// TelemetryBytes returns everything written to the telemetry port.
func (s *Sim) TelemetryBytes() []byte { return s.host.UARTs[s.Desc.UART].Bytes() }
