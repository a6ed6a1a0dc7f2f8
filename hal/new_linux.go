//go:build linux

package hal

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates the reader backend selected by cfg, requesting the given
// pins up front so bad wiring fails at startup instead of mid-poll.
func New(cfg Config, pins []int, log *zap.Logger) (Reader, error) {
	switch cfg.Type {
	case "", "gpiocdev":
		return NewCdevReader(cfg.Chip, pins)
	case "memmap":
		return NewMemmapReader(pins)
	case "evdev":
		return NewEvdevReader(cfg.Device, log)
	default:
		return nil, fmt.Errorf("unknown hal type %q", cfg.Type)
	}
}
