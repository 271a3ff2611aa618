package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: profile name (same value placed in ctx under CtxProfileKey)
// Val: raw YAML for that profile
//
// Lithium profiles carry the 3-cell thresholds on a 10-bit, 5 V referenced
// divider and scale them to the fitted cell count.
// -----------------------------------------------------------------------------

const cfgLipo2s = `
lvc:
  cells: 2
  reference_cells: 3
  sample_bits: 10
  load_threshold: 675
  no_load_threshold: 715
  timeout_ticks: 5000
  tick_ms: 1000
  max_cycles: 10
  settle_ms: 3000
  poll_ms: 1000
heartbeat:
  blink: false
telemetry:
  enabled: true
`

const cfgLipo3s = `
lvc:
  cells: 3
  reference_cells: 3
  sample_bits: 10
  load_threshold: 675
  no_load_threshold: 715
  timeout_ticks: 5000
  tick_ms: 1000
  max_cycles: 10
  settle_ms: 3000
  poll_ms: 1000
heartbeat:
  blink: false
telemetry:
  enabled: true
`

// tiny5: 8-bit samples, quarter-second watchdog wakes counted in seconds.
const cfgTiny5 = `
lvc:
  sample_bits: 8
  load_threshold: 166
  no_load_threshold: 174
  timeout_ticks: 5
  tick_ms: 1000
  subdivisions: 4
  max_cycles: 10
  settle_ms: 3000
  poll_ms: 250
heartbeat:
  blink: true
  on_ms: 250
  period_ms: 1000
telemetry:
  enabled: false
`

var embeddedConfigs = map[string][]byte{
	"lipo-2s": []byte(cfgLipo2s),
	"lipo-3s": []byte(cfgLipo3s),
	"tiny5":   []byte(cfgTiny5),
}
