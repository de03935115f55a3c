package esc

import "github.com/robotalks/dshot.go/pkg/dshot"

// PWMSink plays a duty-cycle buffer back as one continuous waveform,
// typically via DMA. After playback the peripheral driver owns pulling
// the line to zero duty; the trailing zero slot in the buffer is only a
// hint.
type PWMSink interface {
	// MaxDuty is the duty level meaning 100% high.
	MaxDuty() uint16
	// Play queues the buffer for one-shot playback.
	Play(buf [dshot.DutySlots]uint16) error
}

// BufferWriter renders frames into duty-cycle buffers for DMA-driven
// transmission. Unlike PulseWriter it never blocks on bit timing; the
// line toggling happens outside this process once the buffer is handed
// off.
type BufferWriter struct {
	Sink PWMSink
}

// WriteFrame implements dshot.FrameWriter.
func (w *BufferWriter) WriteFrame(f dshot.Frame) error {
	return w.Sink.Play(dshot.DutyCycles(f, w.Sink.MaxDuty()))
}
