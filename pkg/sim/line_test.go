package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/dshot.go/pkg/dshot"
)

func TestLineRoundTrip(t *testing.T) {
	for _, speed := range []dshot.Speed{dshot.DShot150, dshot.DShot300, dshot.DShot600} {
		t.Run(speed.String(), func(t *testing.T) {
			line := &Line{}
			w := &dshot.PulseWriter{Pin: line, Delay: line, Speed: speed}

			sent := []dshot.Frame{
				dshot.NewCommandFrame(dshot.CmdMotorStop, false),
				mustThrottle(t, 1, false),
				mustThrottle(t, 998, true),
				mustThrottle(t, 1999, false),
			}
			for _, f := range sent {
				require.NoError(t, w.WriteFrame(f))
			}

			got, err := line.Frames(speed)
			require.NoError(t, err)
			require.Equal(t, sent, got)
		})
	}
}

func TestLineTruncated(t *testing.T) {
	line := &Line{}
	require.NoError(t, line.SetHigh())
	line.DelayNs(1250)
	require.NoError(t, line.SetLow())
	_, err := line.Frames(dshot.DShot600)
	require.Equal(t, ErrTruncatedFrame, err)

	line.Reset()
	frames, err := line.Frames(dshot.DShot600)
	require.NoError(t, err)
	require.Empty(t, frames)
}

func TestLineChecksum(t *testing.T) {
	// corrupt one bit of a valid frame by writing raw pulses
	f := mustThrottle(t, 998, false)
	line := &Line{}
	bits := f.Raw() ^ 0x0400 // flip a value bit, keep the old checksum
	for i := 0; i < 16; i++ {
		require.NoError(t, line.SetHigh())
		if bits&0x8000 != 0 {
			line.DelayNs(1250)
		} else {
			line.DelayNs(625)
		}
		require.NoError(t, line.SetLow())
		line.DelayNs(414)
		bits <<= 1
	}
	_, err := line.Frames(dshot.DShot600)
	require.Equal(t, ErrChecksum, err)
}

func mustThrottle(t *testing.T, throttle uint16, telemetry bool) dshot.Frame {
	f, err := dshot.NewThrottleFrame(throttle, telemetry)
	require.NoError(t, err)
	return f
}
