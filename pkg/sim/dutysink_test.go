package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/dshot.go/pkg/dshot"
	"github.com/robotalks/dshot.go/pkg/esc"
)

func TestDutySinkRoundTrip(t *testing.T) {
	sink := &DutySink{Max: 1000}
	w := &esc.BufferWriter{Sink: sink}

	sent := []dshot.Frame{
		mustThrottle(t, 0, false),
		mustThrottle(t, 998, true),
		dshot.NewCommandFrame(dshot.CmdBeacon1, false),
	}
	for _, f := range sent {
		require.NoError(t, w.WriteFrame(f))
	}

	require.Len(t, sink.Buffers(), len(sent))
	for _, buf := range sink.Buffers() {
		require.Equal(t, uint16(0), buf[dshot.DutySlots-1])
	}

	got, err := sink.Frames()
	require.NoError(t, err)
	require.Equal(t, sent, got)
}

func TestDutySinkAgreesWithPulseOrder(t *testing.T) {
	// both transmission modes must put the MSB first
	f := mustThrottle(t, 998, false)

	line := &Line{}
	pw := &dshot.PulseWriter{Pin: line, Delay: line, Speed: dshot.DShot600}
	require.NoError(t, pw.WriteFrame(f))
	pulseFrames, err := line.Frames(dshot.DShot600)
	require.NoError(t, err)

	sink := &DutySink{Max: 100}
	bw := &esc.BufferWriter{Sink: sink}
	require.NoError(t, bw.WriteFrame(f))
	dutyFrames, err := sink.Frames()
	require.NoError(t, err)

	require.Equal(t, pulseFrames, dutyFrames)
}
