//go:build linux

package hal

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// CdevReader reads pins through the Linux GPIO character device. All
// lines are requested once at construction as pulled-up inputs and
// polled with Value.
type CdevReader struct {
	lines map[int]*gpiocdev.Line
}

// NewCdevReader requests the given pins on the named chip.
func NewCdevReader(chip string, pins []int) (*CdevReader, error) {
	if chip == "" {
		chip = "gpiochip0"
	}

	r := &CdevReader{lines: make(map[int]*gpiocdev.Line, len(pins))}
	for _, pin := range pins {
		if _, ok := r.lines[pin]; ok {
			continue
		}
		line, err := gpiocdev.RequestLine(chip, pin,
			gpiocdev.AsInput,
			gpiocdev.WithPullUp)
		if err != nil {
			r.Release()
			return nil, fmt.Errorf("request %s line %d: %w", chip, pin, err)
		}
		r.lines[pin] = line
	}
	return r, nil
}

// ReadDigital implements Reader.ReadDigital.
func (r *CdevReader) ReadDigital(pin int) (bool, error) {
	line, ok := r.lines[pin]
	if !ok {
		return false, &ReadError{Pin: pin, Err: fmt.Errorf("line not requested")}
	}
	v, err := line.Value()
	if err != nil {
		return false, &ReadError{Pin: pin, Err: err}
	}
	return v != 0, nil
}

// Release implements Reader.Release.
func (r *CdevReader) Release() error {
	for _, line := range r.lines {
		line.Close()
	}
	r.lines = nil
	return nil
}
