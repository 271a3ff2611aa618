package heartbeat

import (
	"context"
	"sync"
	"testing"
	"time"

	"lvc-go/bus"
	"lvc-go/types"
)

type fakeLED struct {
	mu  sync.Mutex
	on  bool
	lit int // off->on edges
}

func (l *fakeLED) Set(on bool) {
	l.mu.Lock()
	if on && !l.on {
		l.lit++
	}
	l.on = on
	l.mu.Unlock()
}

func (l *fakeLED) state() (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on, l.lit
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %s", what)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func publishState(c *bus.Connection, st types.LVCState) {
	c.Publish(c.NewMessage(topicLVCState, types.LVCStatus{State: st}, true))
}

func TestSteady_FollowsControllerState(t *testing.T) {
	b := bus.NewBus(8)
	ctl := b.NewConnection("lvc")
	green, red := &fakeLED{}, &fakeLED{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() { New(green, red).Run(ctx, b.NewConnection("heartbeat")); close(done) }()

	publishState(ctl, types.LVCActive)
	waitFor(t, "green on", func() bool { on, _ := green.state(); return on })
	if on, _ := red.state(); on {
		t.Fatal("red must be off while active")
	}

	publishState(ctl, types.LVCCutoffPending)
	waitFor(t, "red on", func() bool { on, _ := red.state(); return on })
	if on, _ := green.state(); on {
		t.Fatal("green must be off while pending")
	}

	publishState(ctl, types.LVCShutdown)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("service must stop after shutdown")
	}
	if g, _ := green.state(); g {
		t.Fatal("green left on")
	}
	if r, _ := red.state(); r {
		t.Fatal("red left on")
	}
}

func TestBlink_PulsesStateLED(t *testing.T) {
	b := bus.NewBus(8)
	ctl := b.NewConnection("lvc")
	ctl.Publish(ctl.NewMessage(topicConfigHeartbeat, types.HeartbeatConfig{Blink: true, OnMs: 3, PeriodMs: 10}, true))
	green, red := &fakeLED{}, &fakeLED{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	New(green, red).Start(ctx, b.NewConnection("heartbeat"))

	publishState(ctl, types.LVCCutoffPending)
	waitFor(t, "two red pulses", func() bool { _, n := red.state(); return n >= 2 })
	waitFor(t, "red off between pulses", func() bool { on, _ := red.state(); return !on })
	if _, n := green.state(); n != 0 {
		t.Fatalf("green pulsed %d times while pending", n)
	}
}
