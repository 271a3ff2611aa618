package hal

import (
	"context"
	"errors"
	"testing"
	"time"

	"lvc-go/errcode"
	"lvc-go/services/hal/internal/platform"
	"lvc-go/services/hal/internal/platform/boards"
	"lvc-go/services/lvc"
)

func openHost(t *testing.T, d boards.Descriptor, opt Options) (*Board, *platform.Host) {
	t.Helper()
	h := platform.NewHost()
	b, err := OpenWith(d, h.Platform(), opt)
	if err != nil {
		t.Fatalf("OpenWith(%s): %v", d.Name, err)
	}
	return b, h
}

func pin(t *testing.T, h *platform.Host, n int) *platform.FakePin {
	t.Helper()
	p, ok := h.Pins.Get(n)
	if !ok {
		t.Fatalf("pin %d was never claimed", n)
	}
	return p
}

func TestOpen_InitialLevels(t *testing.T) {
	b, h := openHost(t, boards.HostSim, Options{SampleBits: 8})

	load := pin(t, h, boards.HostSim.Load.N)
	if !load.IsOutput() || load.Get() {
		t.Fatalf("load must start as a low output")
	}
	if !pin(t, h, boards.HostSim.Regulator.N).Get() {
		t.Fatalf("regulator must be enabled at open")
	}
	if b.Green.On() || b.Red.On() {
		t.Fatalf("LEDs must start off")
	}
	if b.Telemetry == nil {
		t.Fatalf("telemetry writer missing")
	}
}

func TestOutput_ActiveLowInverts(t *testing.T) {
	h := platform.NewHost()
	h.I2C0.Respond(0x0A, 0x60)
	b, err := OpenWith(boards.PicoMCP3221, h.Platform(), Options{SampleBits: 12})
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	p := pin(t, h, boards.PicoMCP3221.Load.N)
	if !p.Get() {
		t.Fatalf("active-low load must idle high")
	}
	b.Load.Set(true)
	if p.Get() || !b.Load.On() {
		t.Fatalf("Set(true) must drive the pin low")
	}
	b.Load.Toggle()
	if !p.Get() || b.Load.On() {
		t.Fatalf("Toggle must restore the idle level")
	}
}

func TestADCSampler_ReducesResolution(t *testing.T) {
	b, h := openHost(t, boards.HostSim, Options{SampleBits: 8})
	adc := h.ADCs.Get(boards.HostSim.ADCPin)

	adc.SetRaw(0xA6F0)
	if got := b.Sampler.Sample(); got != 0xA6 {
		t.Fatalf("got %d want 166", got)
	}
	if adc.Reads() != 1 {
		t.Fatalf("one Sample must trigger one conversion, got %d", adc.Reads())
	}
}

func TestI2CSampler_ReadAndFailSafe(t *testing.T) {
	h := platform.NewHost()
	h.I2C0.Respond(0x0A, 0x60)
	b, err := OpenWith(boards.PicoMCP3221, h.Platform(), Options{SampleBits: 12})
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}
	if got := b.Sampler.Sample(); got != 0xA60 {
		t.Fatalf("got %#x want 0xa60", got)
	}
	if h.I2C0.LastTx.Addr != 0x4D {
		t.Fatalf("unexpected address %#x", h.I2C0.LastTx.Addr)
	}

	h.I2C0.Fail(errors.New("nack"))
	if got := b.Sampler.Sample(); got != 0 {
		t.Fatalf("failed read must yield 0, got %d", got)
	}
	if n := b.Sampler.(*I2CSampler).Errors(); n != 1 {
		t.Fatalf("error count %d want 1", n)
	}
}

func TestPowerManager_TerminalSleep(t *testing.T) {
	b, h := openHost(t, boards.HostSim, Options{SampleBits: 8})
	b.Load.Set(true)
	b.Green.Set(true)

	b.Power.EnterTerminalSleep()

	if b.Load.On() || b.Green.On() || b.Red.On() {
		t.Fatalf("outputs must be off after terminal sleep")
	}
	if pin(t, h, boards.HostSim.Regulator.N).Get() {
		t.Fatalf("regulator must be released")
	}
	if !h.ADCs.Get(boards.HostSim.ADCPin).Disabled() {
		t.Fatalf("adc must be powered down")
	}
	if h.Halts() != 1 {
		t.Fatalf("halt calls %d want 1", h.Halts())
	}
	if got := b.Sampler.Sample(); got != 0 {
		t.Fatalf("disabled sampler returned %d", got)
	}
}

func TestTimeBase_CountsAndStops(t *testing.T) {
	b, _ := openHost(t, boards.HostSim, Options{TickMs: 4})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	b.Clock.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for b.Clock.Elapsed() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("tick source stalled at %d", b.Clock.Elapsed())
		}
		time.Sleep(2 * time.Millisecond)
	}

	b.Clock.Disable()
	v := b.Clock.Elapsed()
	time.Sleep(30 * time.Millisecond)
	if got := b.Clock.Elapsed(); got != v {
		t.Fatalf("counter moved after Disable: %d -> %d", v, got)
	}
}

func TestTimeBase_Subdivisions(t *testing.T) {
	var subs, wholes int
	b, _ := openHost(t, boards.HostSim, Options{TickMs: 1000, Subdivisions: 4, OnSubtick: func(whole bool) {
		subs++
		if whole {
			wholes++
		}
	}})
	if b.Clock.Period() != 250*time.Millisecond {
		t.Fatalf("period %v want 250ms", b.Clock.Period())
	}
	for i := 0; i < 8; i++ {
		b.Clock.counter.Tick()
	}
	if b.Clock.Elapsed() != 2 || subs != 8 || wholes != 2 {
		t.Fatalf("elapsed=%d subs=%d wholes=%d", b.Clock.Elapsed(), subs, wholes)
	}
}

func TestOpen_Errors(t *testing.T) {
	noLoad := boards.HostSim
	noLoad.Load = boards.None
	badSampler := boards.HostSim
	badSampler.Sampler = "thermocouple"
	badBus := boards.PicoMCP3221
	badBus.I2CBus = "i2c7"

	cases := []struct {
		name string
		d    boards.Descriptor
		want errcode.Code
	}{
		{"MissingLoad", noLoad, errcode.UnknownPin},
		{"UnknownSampler", badSampler, errcode.UnknownSampler},
		{"UnknownBus", badBus, errcode.UnknownBus},
	}
	for _, tc := range cases {
		_, err := OpenWith(tc.d, platform.NewHost().Platform(), Options{})
		if got := errcode.Of(err); got != tc.want {
			t.Fatalf("%s: got %v want %s", tc.name, err, tc.want)
		}
	}
}

func TestBoard_DrivesController(t *testing.T) {
	b, h := openHost(t, boards.HostSim, Options{SampleBits: 8})
	h.ADCs.Get(boards.HostSim.ADCPin).SetRaw(150 << 8)

	cfg := lvc.DefaultConfig()
	c, err := lvc.New(cfg, b.Hardware(), lvc.Options{})
	if err != nil {
		t.Fatalf("lvc.New: %v", err)
	}
	if !b.Load.On() {
		t.Fatalf("controller must connect the load")
	}
	if tr := c.Step(); tr.To != lvc.StateCutoffPending {
		t.Fatalf("got %s want CUTOFF_PENDING", tr.To)
	}
	if b.Load.On() {
		t.Fatalf("load must be off after the trip")
	}
	for i := 0; i < int(cfg.Timeout); i++ {
		b.Clock.counter.Tick()
	}
	if tr := c.Step(); tr.To != lvc.StateShutdown {
		t.Fatalf("got %s want SHUTDOWN", tr.To)
	}
	if h.Halts() != 1 {
		t.Fatalf("halt calls %d want 1", h.Halts())
	}
}
