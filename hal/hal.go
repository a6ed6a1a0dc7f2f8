// Package hal supplies the injected hardware capabilities the input
// core depends on: a digital pin reader and a monotonic millisecond
// clock. Real backends live behind build tags; tests substitute fakes.
package hal

import "fmt"

// Reader reads raw digital pin levels. Implementations must be
// non-blocking: ReadDigital is called from the poll loop for every
// configured pin on every cycle.
type Reader interface {
	// ReadDigital returns the current level of the pin, true = high.
	ReadDigital(pin int) (bool, error)

	// Release frees hardware resources.
	Release() error
}

// Clock is a monotonic millisecond time source.
type Clock interface {
	NowMs() uint64
}

// ReadError reports a failed hardware read. The poll that hit it is
// abandoned; the loop carries on next cycle.
type ReadError struct {
	Pin int
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read pin %d: %v", e.Pin, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Config selects and parameterizes a reader backend.
type Config struct {
	Type   string `yaml:"type"`   // "gpiocdev", "memmap", "evdev"
	Chip   string `yaml:"chip"`   // gpiocdev chip name, default "gpiochip0"
	Device string `yaml:"device"` // evdev input device path
}
