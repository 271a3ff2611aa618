package hal

import "lvc-go/services/hal/internal/platform"

// Output is a logical digital output. ActiveLow inverts the pin level, so
// Set(true) always means "on". A nil Output ignores writes.
type Output struct {
	pin       platform.GPIO
	activeLow bool
}

// newOutput configures pin as an output in the logical off state.
func newOutput(pin platform.GPIO, activeLow bool) (*Output, error) {
	o := &Output{pin: pin, activeLow: activeLow}
	if err := pin.ConfigureOutput(o.level(false)); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Output) level(on bool) bool {
	if o.activeLow {
		return !on
	}
	return on
}

func (o *Output) Set(on bool) {
	if o == nil {
		return
	}
	o.pin.Set(o.level(on))
}

// On reads back the logical state.
func (o *Output) On() bool {
	if o == nil {
		return false
	}
	return o.level(o.pin.Get())
}

func (o *Output) Toggle() {
	if o == nil {
		return
	}
	o.Set(!o.On())
}

func (o *Output) Pin() int {
	if o == nil {
		return -1
	}
	return o.pin.Number()
}
