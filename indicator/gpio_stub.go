//go:build !linux

package indicator

import "errors"

// NewGPIO fails off-target; LED pins only exist on the Pi.
func NewGPIO(readyPin, activityPin, faultPin *uint8) (Indicator, error) {
	return nil, errors.New("gpio indicator not supported on this platform")
}
