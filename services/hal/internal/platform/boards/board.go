package boards

// PinSpec names one GPIO. N < 0 means the board has no such pin.
type PinSpec struct {
	N         int
	ActiveLow bool
}

// None marks an absent pin.
var None = PinSpec{N: -1}

func (p PinSpec) Present() bool { return p.N >= 0 }

// Sampler kinds.
const (
	SamplerADC     = "adc"
	SamplerMCP3221 = "mcp3221"
)

// Descriptor is a board's wiring for the cutoff controller. It holds pins and
// bus identities only; thresholds and timing come from the config profile.
type Descriptor struct {
	Name string

	Sampler string // SamplerADC or SamplerMCP3221
	ADCPin  int    // on-chip ADC input (SamplerADC)
	I2CBus  string // "i2c0" / "i2c1" (SamplerMCP3221)
	I2CAddr uint16 // 0 selects the driver default

	Load      PinSpec
	Regulator PinSpec // self power-down enable, held on while running
	Green     PinSpec
	Red       PinSpec

	UART     string // telemetry port; "" disables telemetry
	UARTTx   int
	UARTRx   int
	UARTBaud uint32

	TickMs uint32 // tick source period
}

// PicoDefault: divider on GP26/ADC0, high-side load switch on GP15, LEDs on
// GP16/GP17, telemetry on UART0.
var PicoDefault = Descriptor{
	Name:      "pico_default",
	Sampler:   SamplerADC,
	ADCPin:    26,
	Load:      PinSpec{N: 15},
	Regulator: None,
	Green:     PinSpec{N: 16},
	Red:       PinSpec{N: 17},
	UART:      "uart0",
	UARTTx:    0,
	UARTRx:    1,
	UARTBaud:  115200,
	TickMs:    1000,
}

// PicoMCP3221 reads an external MCP3221 on i2c0 and drives a P-FET load switch
// (active low) plus a regulator enable.
var PicoMCP3221 = Descriptor{
	Name:      "pico_mcp3221",
	Sampler:   SamplerMCP3221,
	ADCPin:    -1,
	I2CBus:    "i2c0",
	Load:      PinSpec{N: 15, ActiveLow: true},
	Regulator: PinSpec{N: 14},
	Green:     PinSpec{N: 16},
	Red:       PinSpec{N: 17},
	UART:      "uart0",
	UARTTx:    0,
	UARTRx:    1,
	UARTBaud:  115200,
	TickMs:    1000,
}

// HostSim mirrors PicoDefault on in-memory fakes.
var HostSim = Descriptor{
	Name:      "host_sim",
	Sampler:   SamplerADC,
	ADCPin:    26,
	Load:      PinSpec{N: 15},
	Regulator: PinSpec{N: 14},
	Green:     PinSpec{N: 16},
	Red:       PinSpec{N: 17},
	UART:      "uart0",
	UARTBaud:  115200,
	TickMs:    1000,
}
