// Package heartbeat drives the status LEDs from the controller's retained
// state: green while the load is connected, red while a cutoff is pending,
// dark once the controller has shut down.
package heartbeat

import (
	"context"
	"time"

	"lvc-go/bus"
	"lvc-go/types"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicLVCState        = bus.T("lvc", "state")
)

// LED is a logical on/off output. A nil LED is not allowed; pass a *hal.Output,
// which ignores writes when the board has no such LED.
type LED interface {
	Set(on bool)
}

type Service struct {
	green, red LED

	cfg   types.HeartbeatConfig
	state types.LVCState
}

func New(green, red LED) *Service {
	return &Service{green: green, red: red}
}

// Run blocks until ctx is done or the controller reports shutdown.
func (s *Service) Run(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)
	stSub := conn.Subscribe(topicLVCState)
	defer conn.Unsubscribe(stSub)

	s.allOff()

	tick := time.NewTicker(s.period())
	defer tick.Stop()
	off := time.NewTimer(time.Hour)
	off.Stop()

	for {
		select {
		case <-ctx.Done():
			println("[heartbeat] stopping")
			return
		case msg := <-cfgSub.Channel():
			c, ok := msg.Payload.(types.HeartbeatConfig)
			if !ok {
				println("[heartbeat] ignoring config payload")
				continue
			}
			s.cfg = c
			tick.Reset(s.period())
			s.apply()
		case msg := <-stSub.Channel():
			st, ok := msg.Payload.(types.LVCStatus)
			if !ok {
				continue
			}
			s.state = st.State
			s.apply()
			if s.state == types.LVCShutdown {
				println("[heartbeat] controller shut down, LEDs off")
				return
			}
		case <-tick.C:
			if !s.cfg.Blink {
				continue
			}
			if led := s.stateLED(); led != nil {
				led.Set(true)
				resetTimer(off, s.onTime())
			}
		case <-off.C:
			s.allOff()
		}
	}
}

// Start runs the service in a goroutine.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go s.Run(ctx, conn)
}

// apply shows the current state. Blinking leaves both LEDs dark until the
// next tick.
func (s *Service) apply() {
	s.allOff()
	if s.cfg.Blink {
		return
	}
	if led := s.stateLED(); led != nil {
		led.Set(true)
	}
}

func (s *Service) stateLED() LED {
	switch s.state {
	case types.LVCActive:
		return s.green
	case types.LVCCutoffPending:
		return s.red
	default:
		return nil
	}
}

func (s *Service) allOff() {
	s.green.Set(false)
	s.red.Set(false)
}

func (s *Service) period() time.Duration {
	if s.cfg.PeriodMs == 0 {
		return time.Second
	}
	return time.Duration(s.cfg.PeriodMs) * time.Millisecond
}

func (s *Service) onTime() time.Duration {
	if s.cfg.OnMs == 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(s.cfg.OnMs) * time.Millisecond
}
