package hal

import (
	"context"
	"sync"
	"time"

	"lvc-go/services/lvc/timebase"
)

// TimeBase is the periodic tick source behind the controller's clock. A
// goroutine stands in for the timer interrupt and runs the counter's handler
// through the platform gate.
type TimeBase struct {
	counter *timebase.Counter
	gate    timebase.Gate
	period  time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewTimeBase returns a stopped tick source firing every period.
func NewTimeBase(g timebase.Gate, period time.Duration, opt timebase.Options) *TimeBase {
	return &TimeBase{
		counter: timebase.NewCounter(g, opt),
		gate:    g,
		period:  period,
		stop:    make(chan struct{}),
	}
}

// Start launches the tick source.
func (t *TimeBase) Start(ctx context.Context) {
	go func() {
		tk := time.NewTicker(t.period)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.stop:
				return
			case <-tk.C:
				timebase.Deliver(t.gate, t.counter.Tick)
			}
		}
	}()
}

func (t *TimeBase) Elapsed() timebase.Ticks { return t.counter.Elapsed() }

// Disable halts counting and stops the tick source.
func (t *TimeBase) Disable() {
	t.counter.Disable()
	t.stopOnce.Do(func() { close(t.stop) })
}

func (t *TimeBase) Period() time.Duration { return t.period }
