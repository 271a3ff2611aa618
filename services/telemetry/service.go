// Package telemetry forwards controller status from the bus to a serial port
// as length-prefixed CBOR records.
package telemetry

import (
	"context"
	"io"
	"strings"

	"lvc-go/bus"
	"lvc-go/types"
)

var topicConfigTelemetry = bus.T("config", "telemetry")

type Service struct {
	fw     *FrameWriter
	seq    uint32
	errors uint32
}

func New(w io.Writer) *Service {
	return &Service{fw: NewFrameWriter(w)}
}

// Run waits for config/telemetry, then forwards the configured topics until
// ctx is done. A disabled config ends the service.
func (s *Service) Run(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigTelemetry)
	var cfg types.TelemetryConfig
	select {
	case <-ctx.Done():
		conn.Unsubscribe(cfgSub)
		return
	case msg := <-cfgSub.Channel():
		cfg, _ = msg.Payload.(types.TelemetryConfig)
	}
	conn.Unsubscribe(cfgSub)
	if !cfg.Enabled {
		println("[telemetry] disabled")
		return
	}

	patterns := cfg.Topics
	if len(patterns) == 0 {
		patterns = []string{"lvc/#"}
	}
	// Subscriptions share one channel so records leave in bus order.
	in := make(chan *bus.Message, 8)
	for _, p := range patterns {
		sub := conn.Subscribe(parseTopic(p))
		defer conn.Unsubscribe(sub)
		go func(sub *bus.Subscription) {
			for m := range sub.Channel() {
				select {
				case in <- m:
				case <-ctx.Done():
					return
				}
			}
		}(sub)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case m := <-in:
			s.forward(m)
		}
	}
}

func (s *Service) Start(ctx context.Context, conn *bus.Connection) {
	go s.Run(ctx, conn)
}

func (s *Service) forward(m *bus.Message) {
	s.seq++
	err := s.fw.WriteRecord(Record{
		Seq:      s.seq,
		Topic:    m.Topic.String(),
		Retained: m.Retained,
		Payload:  m.Payload,
	})
	if err != nil {
		s.errors++
		println("[telemetry] write failed:", err.Error(), "count:", s.errors)
	}
}

// parseTopic splits "a/b/+" into bus tokens.
func parseTopic(s string) bus.Topic {
	parts := strings.Split(s, "/")
	t := make(bus.Topic, len(parts))
	for i, p := range parts {
		t[i] = p
	}
	return t
}
