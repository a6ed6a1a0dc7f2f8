//go:build !linux

package hal

import (
	"errors"

	"go.uber.org/zap"
)

var ErrNotSupported = errors.New("gpio input not supported on this platform")

// New returns an error on non-linux platforms. The core itself is
// portable; only the hardware backends are Linux-bound.
func New(cfg Config, pins []int, log *zap.Logger) (Reader, error) {
	return nil, ErrNotSupported
}
