package dshot

import "sort"

// Command is a special command code occupying the value field below 48.
// Codes without a named constant are reserved and not constructible
// through this package.
type Command uint16

// Special commands with their fixed wire codes.
const (
	CmdMotorStop                Command = 0
	CmdBeacon1                  Command = 1
	CmdBeacon2                  Command = 2
	CmdBeacon3                  Command = 3
	CmdBeacon4                  Command = 4
	CmdBeacon5                  Command = 5
	CmdESCInfo                  Command = 6
	CmdSpinDirection1           Command = 7
	CmdSpinDirection2           Command = 8
	Cmd3DModeOff                Command = 9
	Cmd3DModeOn                 Command = 10
	CmdSettingsRequest          Command = 11
	CmdSaveSettings             Command = 12
	CmdExtendedTelemetryEnable  Command = 13
	CmdExtendedTelemetryDisable Command = 14

	// 15..19 reserved

	CmdSpinDirectionNormal   Command = 20
	CmdSpinDirectionReversed Command = 21
	CmdLED0On                Command = 22
	CmdLED1On                Command = 23
	CmdLED2On                Command = 24
	CmdLED3On                Command = 25
	CmdLED0Off               Command = 26
	CmdLED1Off               Command = 27
	CmdLED2Off               Command = 28
	CmdLED3Off               Command = 29
	CmdAudioStreamModeToggle Command = 30
	CmdSilentModeToggle      Command = 31

	CmdSignalLineTelemetryDisable        Command = 32
	CmdSignalLineContinuousERPMTelemetry Command = 33

	// 34..47 reserved

	// CmdMax is the highest code of the command range; values above it
	// are throttle.
	CmdMax Command = 47
)

// CommandRepeat is how many consecutive transmissions an ESC expects
// before acting on commands flagged by RequiresRepeat. The codec does
// not enforce it; Controller.SendCommand does.
const CommandRepeat = 6

var commandNames = map[Command]string{
	CmdMotorStop:                         "motor-stop",
	CmdBeacon1:                           "beacon1",
	CmdBeacon2:                           "beacon2",
	CmdBeacon3:                           "beacon3",
	CmdBeacon4:                           "beacon4",
	CmdBeacon5:                           "beacon5",
	CmdESCInfo:                           "esc-info",
	CmdSpinDirection1:                    "spin-direction-1",
	CmdSpinDirection2:                    "spin-direction-2",
	Cmd3DModeOff:                         "3d-mode-off",
	Cmd3DModeOn:                          "3d-mode-on",
	CmdSettingsRequest:                   "settings-request",
	CmdSaveSettings:                      "save-settings",
	CmdExtendedTelemetryEnable:           "extended-telemetry-enable",
	CmdExtendedTelemetryDisable:          "extended-telemetry-disable",
	CmdSpinDirectionNormal:               "spin-direction-normal",
	CmdSpinDirectionReversed:             "spin-direction-reversed",
	CmdLED0On:                            "led0-on",
	CmdLED1On:                            "led1-on",
	CmdLED2On:                            "led2-on",
	CmdLED3On:                            "led3-on",
	CmdLED0Off:                           "led0-off",
	CmdLED1Off:                           "led1-off",
	CmdLED2Off:                           "led2-off",
	CmdLED3Off:                           "led3-off",
	CmdAudioStreamModeToggle:             "audio-stream-mode-toggle",
	CmdSilentModeToggle:                  "silent-mode-toggle",
	CmdSignalLineTelemetryDisable:        "signal-line-telemetry-disable",
	CmdSignalLineContinuousERPMTelemetry: "signal-line-continuous-erpm-telemetry",
}

var commandCodes = make(map[string]Command)

func init() {
	for cmd, name := range commandNames {
		commandCodes[name] = cmd
	}
}

// repeatedCommands lists commands an ESC only honors after CommandRepeat
// consecutive sends.
var repeatedCommands = map[Command]bool{
	CmdSpinDirection1:           true,
	CmdSpinDirection2:           true,
	Cmd3DModeOff:                true,
	Cmd3DModeOn:                 true,
	CmdSaveSettings:             true,
	CmdSpinDirectionNormal:      true,
	CmdSpinDirectionReversed:    true,
	CmdExtendedTelemetryEnable:  true,
	CmdExtendedTelemetryDisable: true,
}

// IsValid reports whether the code is an assigned command. Codes in
// the reserved gaps are invalid.
func (c Command) IsValid() bool {
	_, ok := commandNames[c]
	return ok
}

// RequiresRepeat reports whether the ESC expects the command to be sent
// CommandRepeat times consecutively before acting on it.
func (c Command) RequiresRepeat() bool {
	return repeatedCommands[c]
}

// String returns the command name, or "reserved" for unassigned codes.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "reserved"
}

// CommandByName looks up a command by its name.
func CommandByName(name string) (Command, bool) {
	cmd, ok := commandCodes[name]
	return cmd, ok
}

// CommandNames enumerates the names of all assigned commands.
func CommandNames() []string {
	names := make([]string, 0, len(commandCodes))
	for name := range commandCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
