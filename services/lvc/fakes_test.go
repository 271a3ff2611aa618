package lvc

import (
	"sync"
	"time"

	"lvc-go/services/lvc/timebase"
)

// scriptSampler replays readings; the last one repeats once the script runs out.
type scriptSampler struct {
	mu       sync.Mutex
	script   []Sample
	pos      int
	calls    int
	disabled bool
}

func (s *scriptSampler) Sample() Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	v := s.script[s.pos]
	if s.pos < len(s.script)-1 {
		s.pos++
	}
	return v
}

func (s *scriptSampler) Disable() {
	s.mu.Lock()
	s.disabled = true
	s.mu.Unlock()
}

// push replaces the unread part of the script.
func (s *scriptSampler) push(v ...Sample) {
	s.mu.Lock()
	s.script = append([]Sample(nil), v...)
	s.pos = 0
	s.mu.Unlock()
}

func (s *scriptSampler) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// fakeClock returns now and then advances it by step.
type fakeClock struct {
	mu       sync.Mutex
	now      timebase.Ticks
	step     timebase.Ticks
	disabled bool
}

func (c *fakeClock) Elapsed() timebase.Ticks {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.now
	c.now += c.step
	return v
}

func (c *fakeClock) Disable() {
	c.mu.Lock()
	c.disabled = true
	c.mu.Unlock()
}

func (c *fakeClock) set(v timebase.Ticks) {
	c.mu.Lock()
	c.now = v
	c.mu.Unlock()
}

func (c *fakeClock) advance(d timebase.Ticks) {
	c.mu.Lock()
	c.now += d
	c.mu.Unlock()
}

// fakeOutput records every write.
type fakeOutput struct {
	mu     sync.Mutex
	level  bool
	writes []bool
}

func (o *fakeOutput) Set(on bool) {
	o.mu.Lock()
	o.level = on
	o.writes = append(o.writes, on)
	o.mu.Unlock()
}

func (o *fakeOutput) Level() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.level
}

func (o *fakeOutput) Writes() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.writes)
}

// fakePower counts terminal sleep requests and returns, as a host must.
type fakePower struct {
	mu      sync.Mutex
	entered int
	onEnter func()
}

func (p *fakePower) EnterTerminalSleep() {
	p.mu.Lock()
	p.entered++
	fn := p.onEnter
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (p *fakePower) Entered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entered
}

type rig struct {
	sampler *scriptSampler
	clock   *fakeClock
	load    *fakeOutput
	power   *fakePower
}

func newRig(samples ...Sample) *rig {
	return &rig{
		sampler: &scriptSampler{script: samples},
		clock:   &fakeClock{},
		load:    &fakeOutput{},
		power:   &fakePower{},
	}
}

func (r *rig) hardware() Hardware {
	return Hardware{Sampler: r.sampler, Clock: r.clock, Load: r.load, Power: r.power}
}

// testConfig is the tiny5 operating point without delays.
func testConfig() Config {
	c := DefaultConfig()
	c.SettleDelay = 0
	c.PollInterval = 0
	return c
}

// noSleep records requested delays without waiting.
type noSleep struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (n *noSleep) Sleep(d time.Duration) {
	n.mu.Lock()
	n.delays = append(n.delays, d)
	n.mu.Unlock()
}

func (n *noSleep) Delays() []time.Duration {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]time.Duration(nil), n.delays...)
}
