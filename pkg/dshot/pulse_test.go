package dshot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// pulse is one recorded line transition with the hold time that followed.
type pulse struct {
	high   bool
	holdNs uint32
}

// tracePin records line transitions; traceDelay attributes each delay to
// the latest transition.
type tracePin struct {
	pulses  []pulse
	failAt  int // 1-based transition count to fail at, 0 for never
	setOps  int
	lastErr error
}

func (p *tracePin) set(high bool) error {
	p.setOps++
	if p.failAt > 0 && p.setOps >= p.failAt {
		p.lastErr = errors.New("gpio write failed")
		return p.lastErr
	}
	p.pulses = append(p.pulses, pulse{high: high})
	return nil
}

func (p *tracePin) SetHigh() error { return p.set(true) }
func (p *tracePin) SetLow() error  { return p.set(false) }

type traceDelay struct {
	pin *tracePin
}

func (d *traceDelay) DelayNs(ns uint32) {
	if n := len(d.pin.pulses); n > 0 {
		d.pin.pulses[n-1].holdNs += ns
	}
}

func TestPulseWriterTimings(t *testing.T) {
	testCases := []struct {
		name     string
		speed    Speed
		oneHold  uint32
		zeroHold uint32
		bitTime  uint32
	}{
		{"dshot150", DShot150, 5000, 2500, 6664},
		{"dshot300", DShot300, 2500, 1250, 3332},
		{"dshot600", DShot600, 1250, 625, 1664},
	}

	f, err := NewThrottleFrame(998, false)
	require.NoError(t, err)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pin := &tracePin{}
			w := &PulseWriter{Pin: pin, Delay: &traceDelay{pin: pin}, Speed: tc.speed}
			require.NoError(t, w.WriteFrame(f))
			require.Len(t, pin.pulses, 2*frameBits)

			bits := f.Raw()
			for i := 0; i < frameBits; i++ {
				up, down := pin.pulses[2*i], pin.pulses[2*i+1]
				require.True(t, up.high)
				require.False(t, down.high)
				if bits&0x8000 != 0 {
					require.Equal(t, tc.oneHold, up.holdNs, "bit %d", i)
				} else {
					require.Equal(t, tc.zeroHold, up.holdNs, "bit %d", i)
				}
				// total period is constant regardless of bit value
				require.Equal(t, tc.bitTime, up.holdNs+down.holdNs, "bit %d", i)
				bits <<= 1
			}
		})
	}
}

func TestPulseWriterBitOrder(t *testing.T) {
	// MSB of the raw word goes on the wire first
	f, err := NewThrottleFrame(998, false)
	require.NoError(t, err)
	require.Equal(t, uint16(0x82c6), f.Raw())

	pin := &tracePin{}
	w := &PulseWriter{Pin: pin, Delay: &traceDelay{pin: pin}, Speed: DShot600}
	require.NoError(t, w.WriteFrame(f))

	oneHold := uint32(DShot600.OneHoldTime())
	var got uint16
	for i := 0; i < frameBits; i++ {
		got <<= 1
		if pin.pulses[2*i].holdNs == oneHold {
			got |= 1
		}
	}
	require.Equal(t, f.Raw(), got)
}

func TestPulseWriterPinError(t *testing.T) {
	for _, failAt := range []int{1, 2, 7} {
		pin := &tracePin{failAt: failAt}
		w := &PulseWriter{Pin: pin, Delay: &traceDelay{pin: pin}, Speed: DShot300}
		err := w.WriteFrame(NewCommandFrame(CmdMotorStop, false))
		require.Error(t, err)
		pinErr, ok := err.(*PinError)
		require.True(t, ok)
		require.Equal(t, pin.lastErr, pinErr.Err)
		// the remainder of the bit sequence is aborted
		require.Equal(t, failAt, pin.setOps)
	}
}

func TestSpeedTimingInvariants(t *testing.T) {
	for _, s := range []Speed{DShot150, DShot300, DShot600} {
		require.Equal(t, s.OneHoldTime(), 2*s.ZeroHoldTime(), s.String())
		require.Equal(t, s.OneHoldTime()/3*4, s.BitTime(), s.String())
	}
	require.Panics(t, func() { Speed(99).OneHoldTime() })
}

func TestSpeedByName(t *testing.T) {
	for _, s := range []Speed{DShot150, DShot300, DShot600} {
		got, ok := SpeedByName(s.String())
		require.True(t, ok)
		require.Equal(t, s, got)
	}
	_, ok := SpeedByName("dshot1200")
	require.False(t, ok)
}
