package dshot

import "errors"

// ErrThrottleRange indicates a throttle value outside [0, 2000).
var ErrThrottleRange = errors.New("throttle out of range")

// MaxThrottle is the exclusive upper bound of the throttle domain.
const MaxThrottle uint16 = 2000

// frameBits is the number of bits in one wire word.
const frameBits = 16

// throttleOffset maps throttle 0 past the reserved command codes,
// so the value field holds throttle+48.
const throttleOffset uint16 = 48

// Frame is one 16-bit DShot wire word.
// Bits 15..5 hold the 11-bit value field, bit 4 the telemetry request,
// bits 3..0 the checksum. The checksum is computed at construction and
// is never stale relative to the other fields.
type Frame uint16

// NewThrottleFrame encodes a throttle value with an optional telemetry
// request. Throttle must be below MaxThrottle, otherwise
// ErrThrottleRange is returned and no frame is constructed.
func NewThrottleFrame(throttle uint16, telemetry bool) (Frame, error) {
	if throttle >= MaxThrottle {
		return 0, ErrThrottleRange
	}
	return newFrame(throttle+throttleOffset, telemetry), nil
}

// NewCommandFrame encodes a special command with an optional telemetry
// request. It is total over the valid command set; an out-of-set code
// is a programmer error and panics.
func NewCommandFrame(cmd Command, telemetry bool) Frame {
	if !cmd.IsValid() {
		panic("dshot: invalid command code")
	}
	return newFrame(uint16(cmd), telemetry)
}

func newFrame(value uint16, telemetry bool) Frame {
	raw := value << 5
	if telemetry {
		raw |= 0x10
	}
	return Frame(raw | checksum(raw))
}

// checksum folds the 12-bit value+telemetry field into 4 bits by XORing
// its three nibbles. Weak by design of the protocol: it detects
// single-bit corruption well but is not collision free.
func checksum(raw uint16) uint16 {
	v := raw >> 4
	return (v ^ (v >> 4) ^ (v >> 8)) & 0x0f
}

// Throttle recovers the throttle value. Only meaningful when IsCommand
// reports false.
func (f Frame) Throttle() uint16 {
	return (uint16(f) >> 5) - throttleOffset
}

// CommandCode recovers the raw value field as a command code. Only
// meaningful when IsCommand reports true.
func (f Frame) CommandCode() Command {
	return Command(uint16(f) >> 5)
}

// IsCommand reports whether the value field holds a special command
// instead of a throttle.
func (f Frame) IsCommand() bool {
	return uint16(f)>>5 < throttleOffset
}

// TelemetryEnabled reports whether the frame requests telemetry.
func (f Frame) TelemetryEnabled() bool {
	return f&0x10 != 0
}

// Checksum returns the 4-bit checksum.
func (f Frame) Checksum() uint16 {
	return uint16(f) & 0x0f
}

// Raw returns the full 16-bit wire word.
func (f Frame) Raw() uint16 {
	return uint16(f)
}
