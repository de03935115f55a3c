package esc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/dshot.go/pkg/cli/sh"
	"github.com/robotalks/dshot.go/pkg/dshot"
	"github.com/robotalks/dshot.go/pkg/esc/msgs"
)

var (
	// ThrottleCmd exposes ThrottleSet command.
	ThrottleCmd = ishell.Cmd{
		Name:    "throttle",
		Aliases: []string{"t"},
		Help:    "VALUE (0 - 1999)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("throttle value expected"))
				return
			}
			val, err := strconv.ParseUint(c.Args[0], 10, 16)
			if err != nil || val >= uint64(dshot.MaxThrottle) {
				c.Err(fmt.Errorf("invalid throttle %q", c.Args[0]))
				return
			}
			sh.DoCommand(c, &msgs.ThrottleSet{Throttle: uint16(val)})
		}),
	}

	// StopCmd sets throttle to zero.
	StopCmd = ishell.Cmd{
		Name: "stop",
		Help: "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.ThrottleSet{Throttle: 0})
		}),
	}

	// TelemetryCmd exposes TelemetrySet command.
	TelemetryCmd = ishell.Cmd{
		Name:    "telemetry",
		Aliases: []string{"tm"},
		Help:    "on|off",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("on or off expected"))
				return
			}
			var enabled bool
			switch strings.ToLower(c.Args[0]) {
			case "on", "true", "1":
				enabled = true
			case "off", "false", "0":
			default:
				c.Err(fmt.Errorf("invalid argument %q, use on or off", c.Args[0]))
				return
			}
			sh.DoCommand(c, &msgs.TelemetrySet{Enabled: enabled})
		}),
	}

	// CommandCmd exposes CommandSend command.
	CommandCmd = ishell.Cmd{
		Name:    "command",
		Aliases: []string{"cmd"},
		Help:    "NAME",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("command name expected, one of: %s",
					strings.Join(dshot.CommandNames(), " ")))
				return
			}
			sh.DoCommand(c, &msgs.CommandSend{Name: c.Args[0]})
		}),
	}

	// CommandsCmd lists the special command names.
	CommandsCmd = ishell.Cmd{
		Name: "commands",
		Help: "",
		Func: func(c *ishell.Context) {
			for _, name := range dshot.CommandNames() {
				c.Println(name)
			}
		},
	}

	// StatusCmd exposes StatusQuery command.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"s"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.StatusQuery{})
		}),
	}
)

func init() {
	sh.AddCmds(
		&ThrottleCmd,
		&StopCmd,
		&TelemetryCmd,
		&CommandCmd,
		&CommandsCmd,
		&StatusCmd,
	)
}
