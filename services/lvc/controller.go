// Package lvc implements the low-voltage cutoff controller: a three-state
// machine that disconnects a battery's load on a low reading, reconnects it
// when the drop proves transient, and commits to an unrecoverable low-power
// shutdown when the battery stays depleted or keeps oscillating.
//
// Hardware is reached only through Sampler, Clock, DigitalOutput and
// PowerController, so the machine runs unchanged against host substitutes.
package lvc

import (
	"time"

	"lvc-go/services/lvc/timebase"
)

// Hardware bundles the controller's collaborators.
type Hardware struct {
	Sampler Sampler
	Clock   Clock
	Load    DigitalOutput
	Power   PowerController
}

// Options are optional controller hooks.
type Options struct {
	// OnTransition observes every Step that changes state.
	OnTransition func(Transition)
	// Sleep implements settle and poll delays. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Controller owns ControllerState and CutoffCycleCount. It is driven from a
// single loop; no method is safe for concurrent use.
type Controller struct {
	cfg     Config
	sampler Sampler
	clock   Clock
	load    *LoadSwitch
	power   PowerController

	state  State
	start  timebase.Ticks // CutoffPending entry time
	cycles uint32

	onTransition func(Transition)
	sleep        func(time.Duration)
}

// New validates cfg and returns a controller in StateActive with the load
// connected.
func New(cfg Config, hw Hardware, opt Options) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		cfg:          cfg,
		sampler:      hw.Sampler,
		clock:        hw.Clock,
		load:         NewLoadSwitch(hw.Load),
		power:        hw.Power,
		state:        StateActive,
		onTransition: opt.OnTransition,
		sleep:        opt.Sleep,
	}
	if c.sleep == nil {
		c.sleep = time.Sleep
	}
	c.load.Connect()
	return c, nil
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Status() Status {
	return Status{
		State:         c.state,
		Cycles:        c.cycles,
		CutoffStart:   c.start,
		LoadConnected: c.load.Connected(),
	}
}

// Step runs one control cycle: the current state's handler samples, decides
// and performs any transition.
func (c *Controller) Step() Transition {
	var tr Transition
	switch c.state {
	case StateActive:
		tr = c.stepActive()
	case StateCutoffPending:
		tr = c.stepPending()
	default:
		// Shutdown is absorbing: touch nothing.
		tr = Transition{From: StateShutdown, To: StateShutdown}
	}
	tr.Cycles = c.cycles
	if !tr.Changed() {
		return tr
	}
	if c.onTransition != nil {
		c.onTransition(tr)
	}
	if tr.To == StateShutdown {
		// Does not return on hardware.
		c.power.EnterTerminalSleep()
	}
	return tr
}

func (c *Controller) stepActive() Transition {
	s := c.sampler.Sample()
	tr := Transition{From: StateActive, To: StateActive, Sample: s, Sampled: true}
	if !c.cfg.Thresholds.Tripped(s) {
		return tr
	}
	c.load.Disconnect()
	if c.cycles != ^uint32(0) {
		c.cycles++
	}
	c.start = c.clock.Elapsed()
	c.state = StateCutoffPending
	tr.To, tr.Reason = StateCutoffPending, ReasonTripped
	return tr
}

func (c *Controller) stepPending() Transition {
	dwell := c.clock.Elapsed().Since(c.start)
	tr := Transition{From: StateCutoffPending, To: StateCutoffPending, Dwell: dwell}
	if dwell >= c.cfg.Timeout {
		c.shutdown()
		tr.To, tr.Reason = StateShutdown, ReasonTimeout
		return tr
	}

	s := c.sampler.Sample()
	tr.Sample, tr.Sampled = s, true
	if !c.cfg.Thresholds.Recovered(s) {
		return tr
	}
	if c.cycles < c.cfg.MaxCycles {
		c.load.Connect()
		c.state = StateActive
		tr.To, tr.Reason = StateActive, ReasonRecovered
		return tr
	}
	// Repeated oscillation marks the battery as unreliable even though this
	// reading alone looks healthy.
	c.shutdown()
	tr.To, tr.Reason = StateShutdown, ReasonCycleLimit
	return tr
}

// shutdown disconnects the load and powers down the sampler and time base.
// Step then hands over to the power controller.
func (c *Controller) shutdown() {
	c.state = StateShutdown
	c.load.Disconnect()
	if d, ok := c.sampler.(disabler); ok {
		d.Disable()
	}
	if d, ok := c.clock.(disabler); ok {
		d.Disable()
	}
}
