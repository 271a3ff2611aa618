package timebase

import "sync"

// Mask is the opaque interrupt-delivery state returned by Gate.Disable.
type Mask uintptr

// Gate suspends and resumes delivery of the tick interrupt.
//
// Disable returns the prior delivery state; Restore puts it back. An interrupt
// raised while delivery is disabled stays pending and runs on Restore. It is
// never lost.
type Gate interface {
	Disable() Mask
	Restore(Mask)
}

// MutexGate is the host rendition of a Gate. The tick source holds it while
// running the handler, so the handler and a masked reader never interleave.
type MutexGate struct {
	mu sync.Mutex
}

func (g *MutexGate) Disable() Mask { g.mu.Lock(); return 0 }
func (g *MutexGate) Restore(Mask)  { g.mu.Unlock() }

// Deliver runs an interrupt handler with delivery masked.
func Deliver(g Gate, handler func()) {
	m := g.Disable()
	handler()
	g.Restore(m)
}
