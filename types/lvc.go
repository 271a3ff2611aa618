package types

// ------------------------
// Controller configuration (topic "config/lvc")
// ------------------------

// LVCConfig is the decoded controller profile. Thresholds are raw sampler
// units for ReferenceCells cells; they are scaled to Cells when applied.
type LVCConfig struct {
	Cells          int    `json:"cells" yaml:"cells"`
	ReferenceCells int    `json:"reference_cells,omitempty" yaml:"reference_cells,omitempty"`
	SampleBits     int    `json:"sample_bits" yaml:"sample_bits"`
	LoadThreshold  uint16 `json:"load_threshold" yaml:"load_threshold"`
	NoLoadThresh   uint16 `json:"no_load_threshold" yaml:"no_load_threshold"`

	// Dwell bound. TimeoutTicks wins when set; otherwise TimeoutMs/TickMs
	// rounded up.
	TimeoutTicks uint32 `json:"timeout_ticks,omitempty" yaml:"timeout_ticks,omitempty"`
	TimeoutMs    uint32 `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
	TickMs       uint32 `json:"tick_ms" yaml:"tick_ms"`
	Subdivisions uint8  `json:"subdivisions,omitempty" yaml:"subdivisions,omitempty"`

	MaxCycles uint32 `json:"max_cycles" yaml:"max_cycles"`
	SettleMs  uint32 `json:"settle_ms" yaml:"settle_ms"`
	PollMs    uint32 `json:"poll_ms" yaml:"poll_ms"`
}

// ------------------------
// Auxiliary services (topics "config/heartbeat", "config/telemetry")
// ------------------------

// HeartbeatConfig selects the status LED pattern. Steady by default; Blink
// lights the state LED for OnMs once per period to save power.
type HeartbeatConfig struct {
	Blink    bool   `json:"blink,omitempty" yaml:"blink,omitempty"`
	OnMs     uint32 `json:"on_ms,omitempty" yaml:"on_ms,omitempty"`
	PeriodMs uint32 `json:"period_ms,omitempty" yaml:"period_ms,omitempty"`
}

// TelemetryConfig enables status frames on the board's serial port.
type TelemetryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Topics narrows the forwarded messages; empty forwards lvc/#.
	Topics []string `json:"topics,omitempty" yaml:"topics,omitempty"`
}

// ------------------------
// Controller status (topics "lvc/state", "lvc/transition")
// ------------------------

type LVCState string

const (
	LVCActive        LVCState = "active"
	LVCCutoffPending LVCState = "cutoff_pending"
	LVCShutdown      LVCState = "shutdown"
)

// LVCStatus is published retained on every transition.
type LVCStatus struct {
	BootID        string   `json:"boot_id" cbor:"boot_id"`
	State         LVCState `json:"state" cbor:"state"`
	LoadConnected bool     `json:"load_connected" cbor:"load_connected"`
	Cycles        uint32   `json:"cycles" cbor:"cycles"`
	TSms          int64    `json:"ts_ms" cbor:"ts_ms"`
}

// LVCTransition is published (non-retained) for each state change.
type LVCTransition struct {
	From   LVCState `json:"from" cbor:"from"`
	To     LVCState `json:"to" cbor:"to"`
	Reason string   `json:"reason" cbor:"reason"`
	Sample uint16   `json:"sample" cbor:"sample"`
	Dwell  uint32   `json:"dwell_ticks" cbor:"dwell_ticks"`
	Cycles uint32   `json:"cycles" cbor:"cycles"`
	TSms   int64    `json:"ts_ms" cbor:"ts_ms"`
}
