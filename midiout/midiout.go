// Package midiout sends MIDI Control-Change messages produced by the
// binding handlers. Backends cover USB/virtual ports and classic DIN
// serial; "none" disables output for dry runs.
package midiout

import "fmt"

// Sender transmits MIDI CC messages.
type Sender interface {
	// SendCC sends a Control-Change: channel 0-15, controller and
	// value 0-127.
	SendCC(channel, controller, value uint8) error

	// Release closes the underlying port.
	Release() error
}

// Config selects the MIDI output backend.
type Config struct {
	Type   string `yaml:"type"`   // "usb", "serial", "none"
	Port   string `yaml:"port"`   // usb: output port name substring
	Device string `yaml:"device"` // serial: tty device path
	Baud   int    `yaml:"baud"`   // serial: default 31250 (DIN MIDI)
}

// New creates a Sender based on the provided configuration.
func New(cfg Config) (Sender, error) {
	switch cfg.Type {
	case "usb":
		return NewUSB(cfg.Port)
	case "serial":
		return NewSerial(cfg.Device, cfg.Baud)
	case "", "none":
		return &Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown midi output type %q", cfg.Type)
	}
}

// Noop implements Sender but sends nothing.
type Noop struct{}

// SendCC implements Sender.SendCC.
func (*Noop) SendCC(channel, controller, value uint8) error {
	return nil
}

// Release implements Sender.Release.
func (*Noop) Release() error {
	return nil
}
