//go:build linux

package hal

import (
	"fmt"

	"github.com/warthog618/gpio"
)

// MemmapReader reads pins through the Raspberry Pi's memory-mapped
// GPIO registers. Reads are register loads with no syscall per poll,
// which suits the sub-millisecond cadence the decoders need.
type MemmapReader struct {
	pins map[int]*gpio.Pin
}

// NewMemmapReader maps the GPIO registers and configures the given
// pins as pulled-up inputs.
func NewMemmapReader(pins []int) (*MemmapReader, error) {
	if err := gpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio mem: %w", err)
	}

	r := &MemmapReader{pins: make(map[int]*gpio.Pin, len(pins))}
	for _, p := range pins {
		if _, ok := r.pins[p]; ok {
			continue
		}
		pin := gpio.NewPin(p)
		pin.Input()
		pin.PullUp()
		r.pins[p] = pin
	}
	return r, nil
}

// ReadDigital implements Reader.ReadDigital.
func (r *MemmapReader) ReadDigital(pin int) (bool, error) {
	p, ok := r.pins[pin]
	if !ok {
		return false, &ReadError{Pin: pin, Err: fmt.Errorf("pin not configured")}
	}
	return bool(p.Read()), nil
}

// Release implements Reader.Release.
func (r *MemmapReader) Release() error {
	r.pins = nil
	return gpio.Close()
}
