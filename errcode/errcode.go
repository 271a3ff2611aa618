package errcode

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Configuration
	InvalidConfig    Code = "invalid_config"
	ThresholdOrder   Code = "threshold_order"
	ThresholdRange   Code = "threshold_range"
	InvalidTimeout   Code = "invalid_timeout"
	InvalidMaxCycles Code = "invalid_max_cycles"
	UnknownProfile   Code = "unknown_profile"

	// Board bring-up
	UnknownSampler Code = "unknown_sampler"
	UnknownPin     Code = "unknown_pin"
	UnknownBus     Code = "unknown_bus"
	Timeout        Code = "timeout"

	Error Code = "error" // generic fallback
)

// E keeps an operation, context and a cause alongside the Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is lets errors.Is(err, errcode.X) match a wrapped E by its code.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.C
}

// New builds an *E.
func New(c Code, op, msg string) *E { return &E{C: c, Op: op, Msg: msg} }

// Wrap builds an *E carrying a cause. A nil cause still yields an error.
func Wrap(c Code, op string, err error) *E {
	e := &E{C: c, Op: op, Err: err}
	if err != nil {
		e.Msg = err.Error()
	}
	return e
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		if inner := u.Unwrap(); inner != nil {
			return Of(inner)
		}
	}
	return Error
}
