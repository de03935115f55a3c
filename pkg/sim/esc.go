package sim

import (
	"github.com/robotalks/dshot.go/pkg/dshot"
)

// ESC models the receiving side of a link: it tracks throttle,
// telemetry requests, and honors repeated-send commands only after
// the required number of consecutive receptions.
type ESC struct {
	throttle  uint16
	telemetry bool

	lastCmd  dshot.Command
	cmdCount int
	applied  []dshot.Command
}

// Receive consumes one decoded frame.
func (e *ESC) Receive(f dshot.Frame) {
	e.telemetry = f.TelemetryEnabled()
	if !f.IsCommand() {
		e.throttle = f.Throttle()
		e.lastCmd, e.cmdCount = 0, 0
		return
	}
	cmd := f.CommandCode()
	if cmd == e.lastCmd {
		e.cmdCount++
	} else {
		e.lastCmd, e.cmdCount = cmd, 1
	}
	if cmd.RequiresRepeat() && e.cmdCount < dshot.CommandRepeat {
		return
	}
	e.apply(cmd)
}

func (e *ESC) apply(cmd dshot.Command) {
	if cmd == dshot.CmdMotorStop {
		e.throttle = 0
	}
	e.applied = append(e.applied, cmd)
}

// Throttle returns the current throttle.
func (e *ESC) Throttle() uint16 {
	return e.throttle
}

// TelemetryRequested reports the telemetry bit of the last frame.
func (e *ESC) TelemetryRequested() bool {
	return e.telemetry
}

// Applied returns the commands the ESC acted on, in order.
func (e *ESC) Applied() []dshot.Command {
	return e.applied
}
