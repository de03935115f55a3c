package dshot

import "fmt"

// Pin is the digital output line a PulseWriter drives.
type Pin interface {
	SetHigh() error
	SetLow() error
}

// Delay blocks the calling goroutine for the requested number of
// nanoseconds.
type Delay interface {
	DelayNs(ns uint32)
}

// FrameWriter transmits one frame over some physical layer.
type FrameWriter interface {
	WriteFrame(Frame) error
}

// PinError wraps a failure from the underlying output pin. The frame in
// flight is aborted; resending is left to the link layer on its next
// cycle.
type PinError struct {
	Err error
}

// Error implements error.
func (e *PinError) Error() string {
	return fmt.Sprintf("pin error: %v", e.Err)
}

// Unwrap returns the underlying pin failure.
func (e *PinError) Unwrap() error {
	return e.Err
}

// PulseWriter transmits frames bit by bit as timed pulses on a single
// digital output, most significant bit first. Every write blocks the
// caller for the full frame duration (16 bit times, ~26.6us at
// DShot600). The caller must keep the line low for at least
// InterFramePause before the next frame.
type PulseWriter struct {
	Pin   Pin
	Delay Delay
	Speed Speed
}

// WriteFrame implements FrameWriter. The first pin error aborts the
// remainder of the bit sequence, leaving a partial frame on the wire.
func (w *PulseWriter) WriteFrame(f Frame) error {
	oneHold := uint32(w.Speed.OneHoldTime())
	zeroHold := uint32(w.Speed.ZeroHoldTime())
	bitTime := uint32(w.Speed.BitTime())

	bits := f.Raw()
	for i := 0; i < frameBits; i++ {
		if err := w.Pin.SetHigh(); err != nil {
			return &PinError{Err: err}
		}
		upTime := zeroHold
		if bits&0x8000 != 0 {
			upTime = oneHold
		}
		w.Delay.DelayNs(upTime)
		if err := w.Pin.SetLow(); err != nil {
			return &PinError{Err: err}
		}
		w.Delay.DelayNs(bitTime - upTime)
		bits <<= 1
	}
	return nil
}
