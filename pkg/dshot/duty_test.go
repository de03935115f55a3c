package dshot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDutyCycles(t *testing.T) {
	f, err := NewThrottleFrame(998, false)
	require.NoError(t, err)

	// raw 0x82c6 = 1000 0010 1100 0110, maxDuty 100: one=75, zero=37
	buf := DutyCycles(f, 100)
	require.Equal(t, [DutySlots]uint16{
		75, 37, 37, 37, 37, 37, 75, 37,
		75, 75, 37, 37, 37, 75, 75, 37,
		0,
	}, buf)
}

func TestDutyCyclesMotorStop(t *testing.T) {
	// command code 0 without telemetry encodes to an all-zero word
	buf := DutyCycles(NewCommandFrame(CmdMotorStop, false), 100)
	for i := 0; i < DutySlots-1; i++ {
		require.Equal(t, uint16(37), buf[i], "slot %d", i)
	}
	require.Equal(t, uint16(0), buf[DutySlots-1])
}

func TestDutyCyclesTail(t *testing.T) {
	for _, maxDuty := range []uint16{0, 1, 8, 100, 1000, 0xffff} {
		for _, throttle := range []uint16{0, 1, 998, 1999} {
			f, err := NewThrottleFrame(throttle, true)
			require.NoError(t, err)
			buf := DutyCycles(f, maxDuty)
			require.Len(t, buf, DutySlots)
			require.Equal(t, uint16(0), buf[DutySlots-1])
		}
	}
}

func TestDutyCyclesScaling(t *testing.T) {
	// truncating integer division, no uint16 overflow at full scale
	f, err := NewThrottleFrame(1999, false)
	require.NoError(t, err)
	buf := DutyCycles(f, 0xffff)
	require.Equal(t, uint16(49151), buf[0]) // 65535*3/4
	f0 := NewCommandFrame(CmdMotorStop, false)
	buf0 := DutyCycles(f0, 0xffff)
	require.Equal(t, uint16(24575), buf0[0]) // 65535*3/8
}
