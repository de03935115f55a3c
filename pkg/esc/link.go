// Package esc layers frame-rate policy on top of the dshot codec:
// a DShot ESC disarms when its line goes quiet, so the link resends
// the current throttle at a steady cadence between explicit commands.
package esc

import (
	"context"
	"errors"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/dshot.go/pkg/dshot"
	"github.com/robotalks/dshot.go/pkg/esc/msgs"
)

// DefaultInterval is the default frame cadence.
const DefaultInterval = time.Millisecond

// Link drives one DShot controller at a steady frame cadence. All
// access to the controller is serialized onto the link goroutine, which
// keeps the single-writer contract of the underlying line.
type Link struct {
	Interval time.Duration

	ctl   *dshot.Controller
	speed dshot.Speed
	reqCh chan linkRequest

	frames    uint64
	pinErrors uint64
}

type linkRequest struct {
	apply func() error
	done  chan error
}

// NewLink creates a Link over a controller. speed is reported in status
// only; the controller's writer owns the actual timing.
func NewLink(ctl *dshot.Controller, speed dshot.Speed) *Link {
	return &Link{
		Interval: DefaultInterval,
		ctl:      ctl,
		speed:    speed,
		reqCh:    make(chan linkRequest),
	}
}

// Run implements Runnable. It refreshes the ESC every Interval and
// applies requests in between. On exit it commands the motor to stop.
func (l *Link) Run(ctx context.Context) error {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := l.ctl.SendCommand(dshot.CmdMotorStop); err != nil {
				glog.Errorf("motor stop on shutdown: %v", err)
			}
			return ctx.Err()
		case <-ticker.C:
			l.count(l.ctl.Refresh())
		case req := <-l.reqCh:
			req.done <- req.apply()
		}
	}
}

func (l *Link) count(err error) error {
	if err == nil {
		l.frames++
		return nil
	}
	var pinErr *dshot.PinError
	if errors.As(err, &pinErr) {
		l.pinErrors++
		// a partially sent frame is dropped on the floor; the next
		// refresh cycle is the resend
		glog.V(1).Infof("frame aborted: %v", err)
	}
	return err
}

func (l *Link) do(ctx context.Context, apply func() error) error {
	req := linkRequest{apply: apply, done: make(chan error, 1)}
	select {
	case l.reqCh <- req:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetThrottle sends a new throttle value on the link goroutine.
func (l *Link) SetThrottle(ctx context.Context, throttle uint16) error {
	return l.do(ctx, func() error {
		return l.count(l.ctl.SetThrottle(throttle))
	})
}

// SetTelemetry toggles telemetry requests, resending the current
// throttle so the ESC picks up the change.
func (l *Link) SetTelemetry(ctx context.Context, enabled bool) error {
	return l.do(ctx, func() error {
		if enabled {
			return l.count(l.ctl.EnableTelemetry())
		}
		return l.count(l.ctl.DisableTelemetry())
	})
}

// SendCommand transmits a special command, including the repeated sends
// some commands require.
func (l *Link) SendCommand(ctx context.Context, cmd dshot.Command) error {
	return l.do(ctx, func() error {
		return l.count(l.ctl.SendCommand(cmd))
	})
}

// Status snapshots the link state.
func (l *Link) Status(ctx context.Context) (*msgs.Status, error) {
	var status *msgs.Status
	err := l.do(ctx, func() error {
		status = &msgs.Status{
			Throttle:  l.ctl.Throttle(),
			Telemetry: l.ctl.TelemetryEnabled(),
			Speed:     l.speed.String(),
			Frames:    l.frames,
			PinErrors: l.pinErrors,
		}
		return nil
	})
	return status, err
}
