package hal

import (
	"lvc-go/drivers/mcp3221"
	"lvc-go/services/hal/internal/platform"
	"lvc-go/services/lvc"
)

// ADCSampler reads the on-chip converter and reduces the 16-bit left-justified
// result to bits of native resolution.
type ADCSampler struct {
	in       platform.AnalogIn
	shift    uint8
	disabled bool
}

func NewADCSampler(in platform.AnalogIn, bits uint8) *ADCSampler {
	return &ADCSampler{in: in, shift: 16 - clampBits(bits)}
}

// Sample runs one conversion. No averaging.
func (s *ADCSampler) Sample() lvc.Sample {
	if s.disabled {
		return 0
	}
	return lvc.Sample(s.in.Get() >> s.shift)
}

func (s *ADCSampler) Disable() {
	s.disabled = true
	s.in.Disable()
}

// I2CSampler reads an external MCP3221. A failed read returns 0, which the
// controller treats as a depleted battery.
type I2CSampler struct {
	dev      mcp3221.Device
	bits     uint8
	errs     uint32
	disabled bool
}

func NewI2CSampler(dev mcp3221.Device, bits uint8) *I2CSampler {
	return &I2CSampler{dev: dev, bits: clampBits(bits)}
}

func (s *I2CSampler) Sample() lvc.Sample {
	if s.disabled {
		return 0
	}
	v, err := s.dev.ReadScaled(s.bits)
	if err != nil {
		s.errs++
		println("[hal] mcp3221 read failed:", err.Error(), "count:", s.errs)
		return 0
	}
	return lvc.Sample(v)
}

// Errors counts failed reads.
func (s *I2CSampler) Errors() uint32 { return s.errs }

// Disable stops further reads. The MCP3221 only converts on request.
func (s *I2CSampler) Disable() { s.disabled = true }

func clampBits(b uint8) uint8 {
	switch {
	case b == 0 || b > 16:
		return 16
	default:
		return b
	}
}
