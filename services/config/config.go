package config

import (
	"bytes"
	"context"

	"lvc-go/bus"
	"lvc-go/errcode"
	"lvc-go/services/lvc"
	"lvc-go/types"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// String constants (live in flash, not RAM)
// -----------------------------------------------------------------------------

const (
	serviceName   = "config"
	configPrefix  = "config"
	CtxProfileKey = "profile" // context key used for the profile name
)

// EmbeddedConfigLookup allows overriding how profiles are resolved.
var EmbeddedConfigLookup = func(profile string) ([]byte, bool) {
	b, ok := embeddedConfigs[profile]
	return b, ok
}

// Profile is one embedded configuration document. Each section is published
// retained on config/<section>.
type Profile struct {
	LVC       types.LVCConfig       `yaml:"lvc"`
	Heartbeat types.HeartbeatConfig `yaml:"heartbeat"`
	Telemetry types.TelemetryConfig `yaml:"telemetry"`
}

// Load resolves, decodes and validates a profile. Unknown keys are rejected.
func Load(profile string) (Profile, error) {
	raw, ok := EmbeddedConfigLookup(profile)
	if !ok || len(raw) == 0 {
		return Profile{}, errcode.New(errcode.UnknownProfile, "config.Load", profile)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var p Profile
	if err := dec.Decode(&p); err != nil {
		return Profile{}, errcode.Wrap(errcode.InvalidConfig, "config.Load", err)
	}
	if _, err := lvc.ConfigFrom(p.LVC); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// Publish sends every section of p as a retained message.
func Publish(conn *bus.Connection, p Profile) {
	conn.Publish(conn.NewMessage(bus.T(configPrefix, "lvc"), p.LVC, true))
	conn.Publish(conn.NewMessage(bus.T(configPrefix, "heartbeat"), p.Heartbeat, true))
	conn.Publish(conn.NewMessage(bus.T(configPrefix, "telemetry"), p.Telemetry, true))
}

// publishConfig loads the profile named in ctx (or the build's default) and
// publishes it.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	name, _ := ctx.Value(CtxProfileKey).(string)
	if name == "" {
		name = DefaultProfile
	}
	p, err := Load(name)
	if err != nil {
		return err
	}
	Publish(conn, p)
	println("[config] published profile", name)
	return nil
}

// Start publishes the configuration. Errors are logged; consumers keep waiting
// on their retained topics.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			println("[config] publish failed:", err.Error())
		}
	}()
}
