//go:build linux

package indicator

import (
	"fmt"
	"sync"
	"time"

	"github.com/hjkoskel/govattu"
)

// activityPulse is how long the activity LED stays lit per event.
const activityPulse = 30 * time.Millisecond

// GPIO implements Indicator using discrete GPIO LED pins.
type GPIO struct {
	hw          govattu.Vattu
	readyPin    *uint8
	activityPin *uint8
	faultPin    *uint8

	mu    sync.Mutex
	timer *time.Timer
}

// NewGPIO creates a new GPIO-based indicator.
func NewGPIO(readyPin, activityPin, faultPin *uint8) (*GPIO, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	g := &GPIO{
		hw:          hw,
		readyPin:    readyPin,
		activityPin: activityPin,
		faultPin:    faultPin,
	}

	// Initialize all pins as outputs, start off
	for _, pin := range []*uint8{readyPin, activityPin, faultPin} {
		if pin != nil {
			hw.PinMode(*pin, govattu.ALToutput)
			hw.PinClear(*pin)
		}
	}
	return g, nil
}

// Ready implements Indicator.Ready.
func (g *GPIO) Ready() {
	if g.readyPin != nil {
		g.hw.PinSet(*g.readyPin)
	}
}

// Activity implements Indicator.Activity. The LED lights immediately
// and a short timer clears it, so bursts of events read as flicker.
func (g *GPIO) Activity() {
	if g.activityPin == nil {
		return
	}
	g.hw.PinSet(*g.activityPin)

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(activityPulse, func() {
		g.hw.PinClear(*g.activityPin)
	})
}

// Fault implements Indicator.Fault.
func (g *GPIO) Fault() {
	if g.faultPin != nil {
		g.hw.PinSet(*g.faultPin)
	}
}

// Release implements Indicator.Release.
func (g *GPIO) Release() error {
	g.mu.Lock()
	if g.timer != nil {
		g.timer.Stop()
	}
	g.mu.Unlock()

	for _, pin := range []*uint8{g.readyPin, g.activityPin, g.faultPin} {
		if pin != nil {
			g.hw.PinClear(*pin)
		}
	}
	return g.hw.Close()
}
