// Package periphio adapts periph.io GPIO pins to the dshot interfaces.
package periphio

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Pin implements dshot.Pin over a periph GPIO pin.
type Pin struct {
	pin gpio.PinIO
}

// Open initializes the periph host and looks up an output pin by name
// (e.g. "GPIO18"). The pin starts low.
func Open(name string) (*Pin, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no such pin: %q", name)
	}
	if err := p.Out(gpio.Low); err != nil {
		return nil, err
	}
	return &Pin{pin: p}, nil
}

// SetHigh implements dshot.Pin.
func (p *Pin) SetHigh() error {
	return p.pin.Out(gpio.High)
}

// SetLow implements dshot.Pin.
func (p *Pin) SetLow() error {
	return p.pin.Out(gpio.Low)
}

// SpinDelay implements dshot.Delay by spinning on the monotonic clock.
// time.Sleep cannot hold the sub-microsecond grid DShot needs; burning
// the core for the duration of a frame is the price of bit-banging from
// userspace.
type SpinDelay struct{}

// DelayNs implements dshot.Delay.
func (SpinDelay) DelayNs(ns uint32) {
	deadline := time.Now().Add(time.Duration(ns))
	for time.Now().Before(deadline) {
	}
}
