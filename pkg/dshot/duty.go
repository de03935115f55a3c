package dshot

// DutySlots is the length of a duty-cycle buffer: 16 bit slots plus one
// trailing zero slot that forces the line low after the frame.
const DutySlots = 17

// DutyCycles renders the frame as PWM duty-cycle levels scaled against
// maxDuty, most significant bit first. A set bit maps to 3/4 of maxDuty
// and an unset bit to 3/8 (truncating), realizing the same 2:1 high-time
// ratio as the pulse mode. The last slot is always zero.
//
// The buffer is meant for one-shot DMA playback by an external PWM
// peripheral; the trailing slot is a hint, the peripheral driver still
// owns returning the line to zero duty after playback.
func DutyCycles(f Frame, maxDuty uint16) [DutySlots]uint16 {
	one := uint16(uint32(maxDuty) * 3 / 4)
	zero := uint16(uint32(maxDuty) * 3 / 8)

	var buf [DutySlots]uint16
	bits := f.Raw()
	for i := 0; i < frameBits; i++ {
		if bits&0x8000 != 0 {
			buf[i] = one
		} else {
			buf[i] = zero
		}
		bits <<= 1
	}
	return buf
}
