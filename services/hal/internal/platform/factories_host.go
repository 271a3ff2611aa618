// services/hal/internal/platform/factories_host.go
//go:build !rp2040 && !rp2350

package platform

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"lvc-go/services/lvc/timebase"

	"tinygo.org/x/drivers"
)

// ----------------------------- I²C (host) ------------------------------------

// HostI2C implements tinygo drivers.I2C for host-side tests. Reads are served
// from Reply; Err, when set, fails every transaction.
type HostI2C struct {
	mu     sync.Mutex
	Reply  []byte
	Err    error
	LastTx struct {
		Addr uint16
		W    []byte
		Rn   int
	}
}

func (h *HostI2C) Tx(addr uint16, w, r []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.LastTx.Addr = addr
	h.LastTx.W = append([]byte(nil), w...)
	h.LastTx.Rn = len(r)
	if h.Err != nil {
		return h.Err
	}
	copy(r, h.Reply)
	return nil
}

// Respond sets the bytes returned by subsequent reads.
func (h *HostI2C) Respond(b ...byte) {
	h.mu.Lock()
	h.Reply = append([]byte(nil), b...)
	h.Err = nil
	h.mu.Unlock()
}

// Fail makes subsequent transactions return err.
func (h *HostI2C) Fail(err error) {
	h.mu.Lock()
	h.Err = err
	h.mu.Unlock()
}

type hostI2CFactory struct {
	buses map[string]drivers.I2C
}

func (f *hostI2CFactory) ByID(id string) (drivers.I2C, bool) {
	b, ok := f.buses[id]
	return b, ok
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin records output configuration and level.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	writes  int
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.writes++
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Writes counts Set calls since configuration.
func (p *FakePin) Writes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.writes
}

func (p *FakePin) Number() int { return p.number }

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (GPIO, bool) {
	if n < 0 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// Get exposes the underlying *FakePin for tests.
func (f *HostPinFactory) Get(n int) (*FakePin, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	return p, ok
}

// ----------------------------- ADC (host) ------------------------------------

// FakeADC holds a settable left-justified 16-bit reading.
type FakeADC struct {
	value    atomic.Uint32
	reads    atomic.Uint32
	disabled atomic.Bool
}

func (a *FakeADC) Get() uint16 {
	a.reads.Add(1)
	return uint16(a.value.Load())
}

func (a *FakeADC) Disable() { a.disabled.Store(true) }

// SetRaw sets the left-justified reading.
func (a *FakeADC) SetRaw(v uint16) { a.value.Store(uint32(v)) }

func (a *FakeADC) Reads() int     { return int(a.reads.Load()) }
func (a *FakeADC) Disabled() bool { return a.disabled.Load() }

// HostADCFactory returns stable *FakeADC instances per pin.
type HostADCFactory struct {
	mu   sync.Mutex
	adcs map[int]*FakeADC
}

func (f *HostADCFactory) ByNumber(n int) (AnalogIn, bool) {
	return f.Get(n), n >= 0
}

// Get returns the channel for pin n, creating it on first use.
func (f *HostADCFactory) Get(n int) *FakeADC {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.adcs == nil {
		f.adcs = make(map[int]*FakeADC)
	}
	a, ok := f.adcs[n]
	if !ok {
		a = &FakeADC{}
		f.adcs[n] = a
	}
	return a
}

// ----------------------------- UART (host) -----------------------------------

// HostUART captures written bytes.
type HostUART struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (u *HostUART) Write(b []byte) (int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.buf.Write(b)
}

// Bytes returns a copy of everything written so far.
func (u *HostUART) Bytes() []byte {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]byte(nil), u.buf.Bytes()...)
}

// ----------------------------- Host platform ---------------------------------

// Host is the in-memory platform with its fakes exposed for tests.
type Host struct {
	Pins  *HostPinFactory
	ADCs  *HostADCFactory
	I2C0  *HostI2C
	I2C1  *HostI2C
	UARTs map[string]*HostUART

	halts atomic.Uint32
}

func NewHost() *Host {
	return &Host{
		Pins:  &HostPinFactory{},
		ADCs:  &HostADCFactory{},
		I2C0:  &HostI2C{},
		I2C1:  &HostI2C{},
		UARTs: map[string]*HostUART{"uart0": {}, "uart1": {}},
	}
}

// Halts counts Halt calls.
func (h *Host) Halts() int { return int(h.halts.Load()) }

func (h *Host) Platform() Platform {
	return Platform{
		Pins: h.Pins,
		ADCs: h.ADCs,
		I2C: &hostI2CFactory{buses: map[string]drivers.I2C{
			"i2c0": h.I2C0,
			"i2c1": h.I2C1,
		}},
		UART: func(id string, _, _ int, _ uint32) (io.Writer, error) {
			u, ok := h.UARTs[id]
			if !ok {
				return nil, errors.New("unknown uart: " + id)
			}
			return u, nil
		},
		Gate: func() timebase.Gate { return &timebase.MutexGate{} },
		Halt: func() { h.halts.Add(1) },
	}
}

// Default returns a fresh host platform.
func Default() Platform { return NewHost().Platform() }
