package lvc

import (
	"context"
	"time"

	"lvc-go/bus"
	"lvc-go/errcode"
	"lvc-go/types"
	"lvc-go/x/timex"

	"github.com/google/uuid"
)

var (
	topicConfigLVC  = bus.T("config", "lvc")
	TopicState      = bus.T("lvc", "state")
	TopicTransition = bus.T("lvc", "transition")
)

// Service runs a Controller on the calling goroutine and reports it on the bus.
// It reads its configuration once, from the retained "config/lvc" message.
type Service struct {
	conn   *bus.Connection
	hw     Hardware
	bootID string
	sleep  func(time.Duration)

	ctl *Controller
}

// NewService returns a service bound to conn. Every service instance gets a
// fresh boot id; controller state never outlives a reset.
func NewService(conn *bus.Connection, hw Hardware) *Service {
	return &Service{conn: conn, hw: hw, bootID: uuid.NewString()}
}

// WithSleep replaces time.Sleep for settle and poll delays.
func (s *Service) WithSleep(fn func(time.Duration)) *Service {
	s.sleep = fn
	return s
}

func (s *Service) BootID() string { return s.bootID }

// Run blocks until ctx is done. It returns ErrShutdown once terminal shutdown
// has been entered on a host.
func (s *Service) Run(ctx context.Context) error {
	cfg, err := s.awaitConfig(ctx)
	if err != nil {
		return err
	}
	ctl, err := New(cfg, s.hw, Options{OnTransition: s.report, Sleep: s.sleep})
	if err != nil {
		return err
	}
	s.ctl = ctl
	println("[lvc] running: load", int(cfg.Thresholds.Load), "no-load", int(cfg.Thresholds.NoLoad),
		"timeout", uint32(cfg.Timeout), "max_cycles", cfg.MaxCycles)
	s.publishStatus()
	return ctl.Run(ctx)
}

func (s *Service) awaitConfig(ctx context.Context) (Config, error) {
	sub := s.conn.Subscribe(topicConfigLVC)
	defer s.conn.Unsubscribe(sub)
	for {
		select {
		case <-ctx.Done():
			return Config{}, ctx.Err()
		case msg, ok := <-sub.Channel():
			if !ok {
				return Config{}, errcode.New(errcode.InvalidConfig, "lvc.Service", "config subscription closed")
			}
			cfg, err := decodeConfig(msg.Payload)
			if err != nil {
				println("[lvc] config rejected:", err.Error())
				continue
			}
			return cfg, nil
		}
	}
}

func decodeConfig(v any) (Config, error) {
	switch p := v.(type) {
	case Config:
		return p, p.Validate()
	case types.LVCConfig:
		return ConfigFrom(p)
	case *types.LVCConfig:
		if p == nil {
			break
		}
		return ConfigFrom(*p)
	}
	return Config{}, errcode.InvalidConfig
}

func (s *Service) report(tr Transition) {
	println("[lvc]", tr.From.String(), "->", tr.To.String(), "reason:", string(tr.Reason),
		"sample:", int(tr.Sample), "dwell:", uint32(tr.Dwell), "cycles:", tr.Cycles)
	s.conn.Publish(s.conn.NewMessage(TopicTransition, types.LVCTransition{
		From:   tr.From.Wire(),
		To:     tr.To.Wire(),
		Reason: string(tr.Reason),
		Sample: uint16(tr.Sample),
		Dwell:  uint32(tr.Dwell),
		Cycles: tr.Cycles,
		TSms:   timex.NowMs(),
	}, false))
	s.publishStatus()
}

func (s *Service) publishStatus() {
	st := s.ctl.Status()
	s.conn.Publish(s.conn.NewMessage(TopicState, types.LVCStatus{
		BootID:        s.bootID,
		State:         st.State.Wire(),
		LoadConnected: st.LoadConnected,
		Cycles:        st.Cycles,
		TSms:          timex.NowMs(),
	}, true))
}
