package dshot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThrottleFrame(t *testing.T) {
	testCases := []struct {
		name      string
		throttle  uint16
		telemetry bool
		raw       uint16
		checksum  uint16
	}{
		{"zero", 0, false, 0x0606, 0x06},
		{"zero telemetry", 0, true, 0x0617, 0x07},
		{"mid", 998, false, 0x82c6, 0x06},
		{"mid telemetry", 998, true, 0x82d7, 0x07},
		{"low", 50, false, 0x0c48, 0x08},
		{"max", 1999, false, 0xffee, 0x0e},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewThrottleFrame(tc.throttle, tc.telemetry)
			require.NoError(t, err)
			require.Equal(t, tc.raw, f.Raw())
			require.Equal(t, tc.checksum, f.Checksum())
			require.Equal(t, tc.throttle, f.Throttle())
			require.Equal(t, tc.telemetry, f.TelemetryEnabled())
			require.False(t, f.IsCommand())
		})
	}
}

func TestThrottleOutOfRange(t *testing.T) {
	for _, throttle := range []uint16{2000, 2001, 4096, 0xffff} {
		_, err := NewThrottleFrame(throttle, false)
		require.Equal(t, ErrThrottleRange, err)
		_, err = NewThrottleFrame(throttle, true)
		require.Equal(t, ErrThrottleRange, err)
	}
	_, err := NewThrottleFrame(1999, false)
	require.NoError(t, err)
}

func TestThrottleRoundTrip(t *testing.T) {
	for throttle := uint16(0); throttle < MaxThrottle; throttle++ {
		for _, telemetry := range []bool{false, true} {
			f, err := NewThrottleFrame(throttle, telemetry)
			require.NoError(t, err)
			require.Equal(t, throttle, f.Throttle())
			require.Equal(t, telemetry, f.TelemetryEnabled())

			// decomposing the raw word reproduces the inputs
			raw := f.Raw()
			require.Equal(t, throttle+48, raw>>5)
			require.Equal(t, telemetry, raw&0x10 != 0)
			require.Equal(t, checksum(raw&^0x0f), raw&0x0f)
		}
	}
}

func TestChecksumDeterminism(t *testing.T) {
	a, err := NewThrottleFrame(1234, true)
	require.NoError(t, err)
	b, err := NewThrottleFrame(1234, true)
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := NewThrottleFrame(1234, false)
	require.NoError(t, err)
	require.NotEqual(t, a.Checksum(), c.Checksum())
}

func TestCommandFrame(t *testing.T) {
	testCases := []struct {
		name      string
		cmd       Command
		telemetry bool
		raw       uint16
	}{
		{"motor stop", CmdMotorStop, false, 0x0000},
		{"beacon1", CmdBeacon1, false, 0x0022},
		{"motor stop telemetry", CmdMotorStop, true, 0x0011},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewCommandFrame(tc.cmd, tc.telemetry)
			require.Equal(t, tc.raw, f.Raw())
			require.Equal(t, tc.cmd, f.CommandCode())
			require.Equal(t, tc.telemetry, f.TelemetryEnabled())
			require.True(t, f.IsCommand())
		})
	}
}

func TestCommandFrameRejectsReserved(t *testing.T) {
	require.Panics(t, func() { NewCommandFrame(Command(15), false) })
	require.Panics(t, func() { NewCommandFrame(Command(47), false) })
	require.Panics(t, func() { NewCommandFrame(Command(48), false) })
}

func TestCommandValidity(t *testing.T) {
	for c := Command(15); c <= Command(19); c++ {
		require.False(t, c.IsValid(), "code %d is reserved", c)
	}
	for c := Command(34); c <= CmdMax; c++ {
		require.False(t, c.IsValid(), "code %d is reserved", c)
	}
	require.True(t, CmdMotorStop.IsValid())
	require.True(t, CmdSignalLineContinuousERPMTelemetry.IsValid())
}

func TestCommandByName(t *testing.T) {
	for _, name := range CommandNames() {
		cmd, ok := CommandByName(name)
		require.True(t, ok)
		require.Equal(t, name, cmd.String())
		require.True(t, cmd.IsValid())
	}
	_, ok := CommandByName("no-such-command")
	require.False(t, ok)
	require.Equal(t, "reserved", Command(15).String())
}

func TestCommandRepeatFlags(t *testing.T) {
	require.True(t, CmdSaveSettings.RequiresRepeat())
	require.True(t, CmdSpinDirectionReversed.RequiresRepeat())
	require.False(t, CmdMotorStop.RequiresRepeat())
	require.False(t, CmdBeacon1.RequiresRepeat())
}
