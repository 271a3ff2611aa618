package hal

// PowerManager drives the board into its terminal low-power state.
type PowerManager struct {
	load      *Output
	regulator *Output
	leds      []*Output
	periph    []interface{ Disable() }
	halt      func()
}

// EnterTerminalSleep switches every output off, powers peripherals down and
// halts. Dropping the regulator enable cuts the board's own supply where one
// is fitted; otherwise the core parks in wfi. Returns only on hosts.
func (p *PowerManager) EnterTerminalSleep() {
	println("[hal] entering terminal sleep")
	p.load.Set(false)
	for _, l := range p.leds {
		l.Set(false)
	}
	for _, d := range p.periph {
		d.Disable()
	}
	p.regulator.Set(false)
	p.halt()
}
