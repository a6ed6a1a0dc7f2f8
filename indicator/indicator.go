// Package indicator gives panel-level feedback on discrete LEDs: a
// ready light, an activity pulse on every dispatched event, and a
// fault latch for hardware read errors.
package indicator

// Indicator is the interface for status indicator implementations.
type Indicator interface {
	// Ready signals that the daemon is polling.
	Ready()

	// Activity pulses the activity LED for one event.
	Activity()

	// Fault latches the fault LED after a hardware error.
	Fault()

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for indicator implementations.
type Config struct {
	// GPIO LED pins (nil = not configured)
	ReadyPin    *uint8 `yaml:"ready_pin"`
	ActivityPin *uint8 `yaml:"activity_pin"`
	FaultPin    *uint8 `yaml:"fault_pin"`
}

// New creates an Indicator based on the provided configuration.
func New(cfg Config) (Indicator, error) {
	if cfg.ReadyPin == nil && cfg.ActivityPin == nil && cfg.FaultPin == nil {
		return &Noop{}, nil
	}
	return NewGPIO(cfg.ReadyPin, cfg.ActivityPin, cfg.FaultPin)
}
