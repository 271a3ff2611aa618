package lvc

import (
	"context"
	"errors"
	"time"
)

// ErrShutdown is returned by Run once the controller has entered terminal
// shutdown and the power controller returned (host substitutes only).
var ErrShutdown = errors.New("lvc: terminal shutdown")

// Run drives Step until shutdown or ctx is done. A state change is followed by
// SettleDelay, any other cycle by PollInterval.
//
// After shutdown Run parks until ctx is done; nothing but a reset leaves the
// terminal state.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if c.state == StateShutdown {
			<-ctx.Done()
			return ErrShutdown
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		tr := c.Step()
		if tr.To == StateShutdown {
			continue
		}
		if tr.Changed() {
			c.wait(c.cfg.SettleDelay)
		} else {
			c.wait(c.cfg.PollInterval)
		}
	}
}

func (c *Controller) wait(d time.Duration) {
	if d > 0 {
		c.sleep(d)
	}
}
