package sim

import "github.com/robotalks/dshot.go/pkg/dshot"

// DutySink implements esc.PWMSink by capturing played buffers.
type DutySink struct {
	Max uint16

	buffers [][dshot.DutySlots]uint16
}

// MaxDuty implements PWMSink.
func (s *DutySink) MaxDuty() uint16 {
	return s.Max
}

// Play implements PWMSink.
func (s *DutySink) Play(buf [dshot.DutySlots]uint16) error {
	s.buffers = append(s.buffers, buf)
	return nil
}

// Buffers returns the captured buffers.
func (s *DutySink) Buffers() [][dshot.DutySlots]uint16 {
	return s.buffers
}

// Frames decodes the captured buffers back into frames, verifying
// checksums.
func (s *DutySink) Frames() ([]dshot.Frame, error) {
	// midpoint between the 3/8 and 3/4 duty levels
	threshold := uint16(uint32(s.Max) * 9 / 16)
	var frames []dshot.Frame
	for _, buf := range s.buffers {
		var raw uint16
		for i := 0; i < dshot.DutySlots-1; i++ {
			raw <<= 1
			if buf[i] >= threshold {
				raw |= 1
			}
		}
		f, err := frameFromRaw(raw)
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
	return frames, nil
}
