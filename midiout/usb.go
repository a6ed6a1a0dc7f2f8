package midiout

import (
	"fmt"
	"strings"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver
)

// USB sends CC messages to a system MIDI output port (USB, virtual, or
// anything else the driver exposes).
type USB struct {
	send func(gomidi.Message) error
	name string
}

// NewUSB opens the first output port whose name contains the given
// substring (case-insensitive). An empty name takes the first port.
func NewUSB(name string) (*USB, error) {
	outs := gomidi.GetOutPorts()
	if len(outs) == 0 {
		return nil, fmt.Errorf("no MIDI output ports available")
	}

	for _, port := range outs {
		if name != "" && !strings.Contains(strings.ToLower(port.String()), strings.ToLower(name)) {
			continue
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			return nil, fmt.Errorf("open MIDI port %q: %w", port.String(), err)
		}
		return &USB{send: send, name: port.String()}, nil
	}
	return nil, fmt.Errorf("no MIDI output port matching %q", name)
}

// PortName returns the name of the opened port.
func (u *USB) PortName() string {
	return u.name
}

// SendCC implements Sender.SendCC.
func (u *USB) SendCC(channel, controller, value uint8) error {
	return u.send(gomidi.ControlChange(channel, controller, value))
}

// Release implements Sender.Release.
func (u *USB) Release() error {
	gomidi.CloseDriver()
	return nil
}
