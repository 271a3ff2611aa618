package lvc

import (
	"time"

	"lvc-go/errcode"
	"lvc-go/services/lvc/timebase"
	"lvc-go/types"
	"lvc-go/x/mathx"
	"lvc-go/x/timex"
)

// Thresholds is the hysteresis pair. NoLoad must be strictly above Load.
type Thresholds struct {
	Load   Sample // trip point while the load is connected
	NoLoad Sample // recovery point while the load is disconnected
}

// Tripped reports a reading below the under-load trip point.
func (t Thresholds) Tripped(s Sample) bool { return s < t.Load }

// Recovered reports a reading at or above the no-load recovery point.
func (t Thresholds) Recovered(s Sample) bool { return s >= t.NoLoad }

// Config is the controller's fixed operating point.
type Config struct {
	Thresholds Thresholds
	Timeout    timebase.Ticks // dwell bound in CutoffPending
	MaxCycles  uint32         // cutoffs tolerated before a recovery is refused

	// SettleDelay follows every state change so transients decay before the
	// next decision. PollInterval paces cycles that change nothing.
	SettleDelay  time.Duration
	PollInterval time.Duration
}

// DefaultConfig is the single-board tiny5 operating point: 8-bit samples,
// five-tick dwell, ten cutoffs.
func DefaultConfig() Config {
	return Config{
		Thresholds:   Thresholds{Load: 166, NoLoad: 174},
		Timeout:      5,
		MaxCycles:    10,
		SettleDelay:  3 * time.Second,
		PollInterval: 100 * time.Millisecond,
	}
}

// Validate checks the invariants the state machine relies on.
func (c Config) Validate() error {
	if c.Thresholds.NoLoad <= c.Thresholds.Load {
		return errcode.New(errcode.ThresholdOrder, "lvc.Config", "no_load_threshold must exceed load_threshold")
	}
	if c.Timeout == 0 {
		return errcode.New(errcode.InvalidTimeout, "lvc.Config", "timeout must be at least one tick")
	}
	if c.MaxCycles == 0 {
		return errcode.New(errcode.InvalidMaxCycles, "lvc.Config", "max_cycles must be at least one")
	}
	if c.SettleDelay < 0 || c.PollInterval < 0 {
		return errcode.New(errcode.InvalidConfig, "lvc.Config", "negative delay")
	}
	return nil
}

// ConfigFrom converts a decoded profile into a validated Config.
//
// Thresholds given for ReferenceCells are scaled to Cells with floor division
// and clamped to the SampleBits range. The timeout is TimeoutTicks, or
// TimeoutMs/TickMs rounded up.
func ConfigFrom(p types.LVCConfig) (Config, error) {
	bits := p.SampleBits
	if bits == 0 {
		bits = 16
	}
	if !mathx.Between(bits, 1, 16) {
		return Config{}, errcode.New(errcode.InvalidConfig, "lvc.ConfigFrom", "sample_bits must be 1..16")
	}
	if p.Cells < 0 || p.ReferenceCells < 0 {
		return Config{}, errcode.New(errcode.InvalidConfig, "lvc.ConfigFrom", "negative cell count")
	}
	cells, ref := p.Cells, p.ReferenceCells
	if cells == 0 {
		cells = mathx.Max(ref, 1)
	}
	if ref == 0 {
		ref = cells
	}

	full := mathx.FullScale(bits)
	if uint64(p.LoadThreshold) > full || uint64(p.NoLoadThresh) > full {
		return Config{}, errcode.New(errcode.ThresholdRange, "lvc.ConfigFrom", "threshold exceeds sample range")
	}
	scale := func(v uint16) Sample {
		s := mathx.MulDivFloor(uint32(v), uint32(cells), uint32(ref))
		return Sample(mathx.Clamp(s, 0, full))
	}

	timeout := p.TimeoutTicks
	if timeout == 0 && p.TimeoutMs != 0 {
		if p.TickMs == 0 {
			return Config{}, errcode.New(errcode.InvalidTimeout, "lvc.ConfigFrom", "timeout_ms needs tick_ms")
		}
		timeout = mathx.CeilDiv(p.TimeoutMs, p.TickMs)
	}

	c := Config{
		Thresholds: Thresholds{
			Load:   scale(p.LoadThreshold),
			NoLoad: scale(p.NoLoadThresh),
		},
		Timeout:      timebase.Ticks(timeout),
		MaxCycles:    p.MaxCycles,
		SettleDelay:  timex.Ms(p.SettleMs),
		PollInterval: timex.Ms(p.PollMs),
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
