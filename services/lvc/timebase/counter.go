// Package timebase provides the free-running tick counter shared between the
// periodic interrupt and the control loop.
//
// The counter is stored as two 16-bit words, the way a narrow core holds a
// multi-byte count. The interrupt side only increments; the loop side reads a
// snapshot with delivery suspended:
//
//	m := gate.Disable()
//	v := copy of both words
//	gate.Restore(m)
//
// so a tick can never land between the two halves of a read.
package timebase

// Ticks is a wrapping tick count. Compare ticks only through Since.
type Ticks uint32

// Since returns the ticks elapsed from start to t, modulo the counter width.
// It is correct across a wrap as long as the real interval is below 2^32 ticks.
func (t Ticks) Since(start Ticks) Ticks { return t - start }

// Options tunes the counter. All fields are optional.
type Options struct {
	// Subdivisions is the number of handler invocations per counted tick,
	// e.g. 4 for a 250 ms watchdog wake counting seconds. 0 or 1 counts every call.
	Subdivisions uint8
	// OnSubtick runs inside the handler after each invocation; whole reports
	// whether this invocation advanced the count. Keep it to a pin toggle.
	OnSubtick func(whole bool)
}

// Counter is the tick counter. Tick is the interrupt handler body; Elapsed is
// the only accessor offered to the controller.
type Counter struct {
	gate Gate

	lo, hi uint16
	frac   uint8
	div    uint8
	halted bool

	onSub func(whole bool)

	// between runs after the low word is copied and before the high word is.
	// Tests use it to raise an interrupt mid-read.
	between func()
}

// NewCounter returns a counter guarded by g.
func NewCounter(g Gate, opt Options) *Counter {
	div := opt.Subdivisions
	if div == 0 {
		div = 1
	}
	return &Counter{gate: g, div: div, onSub: opt.OnSubtick}
}

// Tick is the handler body. It must run with delivery masked: from the real
// interrupt on hardware, or through Deliver on hosts.
func (c *Counter) Tick() {
	if c.halted {
		return
	}
	c.frac++
	whole := c.frac >= c.div
	if whole {
		c.frac = 0
		c.lo++
		if c.lo == 0 {
			c.hi++
		}
	}
	if c.onSub != nil {
		c.onSub(whole)
	}
}

// Elapsed returns a consistent snapshot of the count.
func (c *Counter) Elapsed() Ticks {
	m := c.gate.Disable()
	v := c.load()
	c.gate.Restore(m)
	return v
}

func (c *Counter) load() Ticks {
	lo := c.lo
	if c.between != nil {
		c.between()
	}
	hi := c.hi
	return Ticks(hi)<<16 | Ticks(lo)
}

// Disable stops counting for good. Later Tick calls are no-ops.
func (c *Counter) Disable() {
	m := c.gate.Disable()
	c.halted = true
	c.onSub = nil
	c.gate.Restore(m)
}

// Halted reports whether Disable has been called.
func (c *Counter) Halted() bool {
	m := c.gate.Disable()
	h := c.halted
	c.gate.Restore(m)
	return h
}

// set preloads the count; tests use it to start next to a carry or a wrap.
func (c *Counter) set(v Ticks) {
	m := c.gate.Disable()
	c.lo, c.hi = uint16(v), uint16(v>>16)
	c.gate.Restore(m)
}
