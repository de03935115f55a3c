// Package sim provides a virtual output line and ESC for exercising
// the link without hardware.
package sim

import (
	"errors"
	"time"

	"github.com/robotalks/dshot.go/pkg/dshot"
)

// ErrTruncatedFrame indicates the recorded pulse train does not divide
// into whole frames.
var ErrTruncatedFrame = errors.New("truncated frame")

// ErrChecksum indicates a decoded frame failed checksum verification.
var ErrChecksum = errors.New("checksum mismatch")

// Pulse is one recorded line state with the time spent in it.
type Pulse struct {
	High bool
	Hold time.Duration
}

// Line records what a PulseWriter puts on the wire. It implements both
// dshot.Pin and dshot.Delay, attributing each delay to the latest
// transition.
type Line struct {
	pulses []Pulse
}

// SetHigh implements dshot.Pin.
func (l *Line) SetHigh() error {
	l.pulses = append(l.pulses, Pulse{High: true})
	return nil
}

// SetLow implements dshot.Pin.
func (l *Line) SetLow() error {
	l.pulses = append(l.pulses, Pulse{High: false})
	return nil
}

// DelayNs implements dshot.Delay.
func (l *Line) DelayNs(ns uint32) {
	if n := len(l.pulses); n > 0 {
		l.pulses[n-1].Hold += time.Duration(ns)
	}
}

// Pulses returns the recorded transitions.
func (l *Line) Pulses() []Pulse {
	return l.pulses
}

// Reset discards the recording.
func (l *Line) Reset() {
	l.pulses = nil
}

// Frames decodes the recorded pulse train back into frames, verifying
// checksums. The speed must match the writer's.
func (l *Line) Frames(speed dshot.Speed) ([]dshot.Frame, error) {
	// midpoint between the zero and one hold times
	threshold := (speed.OneHoldTime() + speed.ZeroHoldTime()) / 2

	var highs []time.Duration
	for _, p := range l.pulses {
		if p.High {
			highs = append(highs, p.Hold)
		}
	}
	if len(highs)%16 != 0 {
		return nil, ErrTruncatedFrame
	}

	var frames []dshot.Frame
	for len(highs) > 0 {
		var raw uint16
		for _, hold := range highs[:16] {
			raw <<= 1
			if hold >= threshold {
				raw |= 1
			}
		}
		highs = highs[16:]
		f, err := frameFromRaw(raw)
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}

// frameFromRaw verifies the embedded checksum of a received word.
func frameFromRaw(raw uint16) (dshot.Frame, error) {
	f := dshot.Frame(raw)
	v := raw >> 4
	if (v^(v>>4)^(v>>8))&0x0f != f.Checksum() {
		return f, ErrChecksum
	}
	return f, nil
}
