package dshot

import "time"

// Speed selects the protocol bit rate. It fixes the whole timing grid:
// the hold time of a one, half of that for a zero, and a constant bit
// period of 4/3 the one-hold time.
type Speed int

// Supported protocol speeds.
const (
	DShot150 Speed = iota
	DShot300
	DShot600
)

// InterFramePause is how long the line must stay low between frames.
// This is a lower bound, and a caller obligation: the pulse writer does
// not wait it out itself.
const InterFramePause = 2 * time.Microsecond

// OneHoldTime returns the time to hold the pin high for a set bit.
func (s Speed) OneHoldTime() time.Duration {
	switch s {
	case DShot150:
		return 5000 * time.Nanosecond
	case DShot300:
		return 2500 * time.Nanosecond
	case DShot600:
		return 1250 * time.Nanosecond
	}
	panic("dshot: unknown speed")
}

// ZeroHoldTime returns the time to hold the pin high for an unset bit,
// exactly half the one-hold time.
func (s Speed) ZeroHoldTime() time.Duration {
	return s.OneHoldTime() / 2
}

// BitTime returns the total period of one bit, high and low, identical
// for set and unset bits.
func (s Speed) BitTime() time.Duration {
	return s.OneHoldTime() / 3 * 4
}

// String implements fmt.Stringer.
func (s Speed) String() string {
	switch s {
	case DShot150:
		return "dshot150"
	case DShot300:
		return "dshot300"
	case DShot600:
		return "dshot600"
	}
	return "unknown"
}

// SpeedByName looks up a speed profile by name.
func SpeedByName(name string) (Speed, bool) {
	switch name {
	case "dshot150":
		return DShot150, true
	case "dshot300":
		return DShot300, true
	case "dshot600":
		return DShot600, true
	}
	return 0, false
}
