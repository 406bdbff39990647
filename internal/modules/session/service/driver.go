package service

import (
	"context"
	"time"

	"github.com/hashicorp/go-hclog"

	sessionout "cronos/internal/modules/session/port/out"
)

const DefaultPollInterval = 200 * time.Millisecond

// Driver polls the runner while a session is running and holds the wake lock for exactly
// that span. With no session, or a paused one, no ticker exists.
type Driver struct {
	runner   *Runner
	lock     sessionout.WakeLock
	interval time.Duration
	logger   hclog.Logger

	ticker     *time.Ticker
	handle     sessionout.WakeLockHandle
	lockFailed bool
}

func NewDriver(runner *Runner, lock sessionout.WakeLock, interval time.Duration, logger hclog.Logger) *Driver {
	if interval <= 0 || interval > time.Second {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Driver{runner: runner, lock: lock, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	defer d.idle()
	d.sync(ctx)
	for {
		var tick <-chan time.Time
		if d.ticker != nil {
			tick = d.ticker.C
		}
		select {
		case <-ctx.Done():
			return nil
		case <-d.runner.Changes():
			d.sync(ctx)
		case <-tick:
			d.runner.Tick(ctx)
			d.sync(ctx)
		}
	}
}

func (d *Driver) sync(ctx context.Context) {
	if !d.runner.Polling() {
		d.idle()
		return
	}
	if d.ticker == nil {
		d.ticker = time.NewTicker(d.interval)
		d.logger.Debug("polling started", "interval", d.interval)
	}
	if d.handle == nil && !d.lockFailed && d.lock != nil {
		handle, err := d.lock.Acquire(ctx)
		if err != nil {
			d.lockFailed = true
			d.logger.Debug("wake lock unavailable", "error", err)
			return
		}
		d.handle = handle
	}
}

func (d *Driver) idle() {
	if d.ticker != nil {
		d.ticker.Stop()
		d.ticker = nil
		d.logger.Debug("polling stopped")
	}
	if d.handle != nil {
		if err := d.handle.Release(); err != nil {
			d.logger.Debug("wake lock release failed", "error", err)
		}
		d.handle = nil
	}
	d.lockFailed = false
}
