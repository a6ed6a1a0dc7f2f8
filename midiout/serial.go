package midiout

import (
	"fmt"

	"github.com/tarm/serial"
)

// Serial sends CC messages as raw MIDI bytes over a UART, for classic
// 5-pin DIN outputs driven from a tty.
type Serial struct {
	port *serial.Port
	buf  [3]byte
}

// NewSerial opens the tty. Baud defaults to the DIN MIDI rate of 31250.
func NewSerial(device string, baud int) (*Serial, error) {
	if device == "" {
		return nil, fmt.Errorf("serial midi output requires a device")
	}
	if baud == 0 {
		baud = 31250
	}

	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	return &Serial{port: port}, nil
}

// SendCC implements Sender.SendCC.
func (s *Serial) SendCC(channel, controller, value uint8) error {
	s.buf[0] = 0xB0 | channel&0x0F
	s.buf[1] = controller & 0x7F
	s.buf[2] = value & 0x7F
	if _, err := s.port.Write(s.buf[:]); err != nil {
		return fmt.Errorf("write cc: %w", err)
	}
	return nil
}

// Release implements Sender.Release.
func (s *Serial) Release() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}
