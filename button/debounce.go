// Package button filters raw momentary-switch pin levels into stable
// pressed/released state and classifies press, release, long-press and
// double-tap gestures from the stable edges.
package button

import "fmt"

// Config describes one physical button. Immutable after setup.
type Config struct {
	ID        uint8 `yaml:"id"`
	Pin       int   `yaml:"pin"`
	ActiveLow bool  `yaml:"active_low"` // pressed when the pin reads low (pull-up wiring)
}

func (c Config) Validate() error {
	if c.Pin < 0 {
		return fmt.Errorf("button %d: invalid pin %d", c.ID, c.Pin)
	}
	return nil
}

// Timing holds the shared gesture timing constants. Zero values are
// replaced by the defaults of the reference hardware.
type Timing struct {
	DebounceMs  uint32 `yaml:"debounce_ms"`
	LongPressMs uint32 `yaml:"long_press_ms"`
	DoubleTapMs uint32 `yaml:"double_tap_ms"`
}

func (t *Timing) ApplyDefaults() {
	if t.DebounceMs == 0 {
		t.DebounceMs = 5
	}
	if t.LongPressMs == 0 {
		t.LongPressMs = 500
	}
	if t.DoubleTapMs == 0 {
		t.DoubleTapMs = 300
	}
}

// Debouncer is a time-domain filter: a candidate level must hold for
// the full debounce window before the stable state flips. A level that
// reverts mid-window resets the timer and produces nothing, which is
// what rejects contact bounce.
type Debouncer struct {
	activeLow bool
	windowMs  uint64

	stable    bool // last accepted logical level (true = pressed)
	settling  bool
	candidate bool
	since     uint64 // when the current candidate was first seen
}

func NewDebouncer(activeLow bool, debounceMs uint32) *Debouncer {
	return &Debouncer{activeLow: activeLow, windowMs: uint64(debounceMs)}
}

// Sample consumes one raw pin reading. It returns the stable logical
// state and whether this poll flipped it.
func (d *Debouncer) Sample(raw bool, nowMs uint64) (pressed, changed bool) {
	logical := raw
	if d.activeLow {
		logical = !raw
	}

	if logical == d.stable {
		d.settling = false
		return d.stable, false
	}
	if !d.settling || logical != d.candidate {
		d.settling = true
		d.candidate = logical
		d.since = nowMs
	}
	if nowMs-d.since >= d.windowMs {
		d.stable = logical
		d.settling = false
		return d.stable, true
	}
	return d.stable, false
}

// Pressed returns the current stable logical state.
func (d *Debouncer) Pressed() bool {
	return d.stable
}
