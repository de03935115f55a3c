package dshot

// Controller drives one ESC over a single output line. It remembers the
// last throttle sent so that toggling telemetry re-announces it instead
// of dropping the motor to zero.
//
// A Controller owns its line exclusively. It performs no locking and is
// not safe for concurrent use; one control loop per Controller.
type Controller struct {
	writer    FrameWriter
	delay     Delay
	throttle  uint16
	telemetry bool
}

// NewController creates a Controller bit-banging a digital output pin.
// Throttle starts at zero, telemetry off.
func NewController(pin Pin, delay Delay, speed Speed) *Controller {
	return NewControllerWith(&PulseWriter{Pin: pin, Delay: delay, Speed: speed}, delay)
}

// NewControllerWith creates a Controller over an arbitrary FrameWriter.
// delay paces repeated command sends and may be nil when the writer owns
// its own pacing (e.g. DMA playback).
func NewControllerWith(w FrameWriter, delay Delay) *Controller {
	return &Controller{writer: w, delay: delay}
}

// Throttle returns the last throttle sent.
func (c *Controller) Throttle() uint16 {
	return c.throttle
}

// TelemetryEnabled reports whether frames request telemetry.
func (c *Controller) TelemetryEnabled() bool {
	return c.telemetry
}

// SetThrottle sends the throttle over the wire and records it for later
// resends. Values of MaxThrottle and above fail with ErrThrottleRange
// and leave the recorded throttle unchanged.
func (c *Controller) SetThrottle(throttle uint16) error {
	if err := c.send(throttle); err != nil {
		return err
	}
	c.throttle = throttle
	return nil
}

// Refresh resends the last throttle. ESCs cut motor power when the line
// goes quiet for more than a few milliseconds, so a link layer calls
// this at a steady cadence.
func (c *Controller) Refresh() error {
	return c.send(c.throttle)
}

// EnableTelemetry turns on telemetry requests and resends the current
// throttle to actually let the ESC know.
func (c *Controller) EnableTelemetry() error {
	c.telemetry = true
	return c.send(c.throttle)
}

// DisableTelemetry turns off telemetry requests and resends the current
// throttle to actually let the ESC know.
func (c *Controller) DisableTelemetry() error {
	c.telemetry = false
	return c.send(c.throttle)
}

// SendCommand transmits a special command frame. Commands flagged
// RequiresRepeat are sent CommandRepeat times consecutively with the
// inter-frame pause in between, as the ESC expects.
func (c *Controller) SendCommand(cmd Command) error {
	f := NewCommandFrame(cmd, c.telemetry)
	n := 1
	if cmd.RequiresRepeat() {
		n = CommandRepeat
	}
	for i := 0; i < n; i++ {
		if i > 0 && c.delay != nil {
			c.delay.DelayNs(uint32(InterFramePause))
		}
		if err := c.writer.WriteFrame(f); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) send(throttle uint16) error {
	f, err := NewThrottleFrame(throttle, c.telemetry)
	if err != nil {
		return err
	}
	return c.writer.WriteFrame(f)
}
