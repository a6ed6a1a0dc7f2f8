// Package engine drives the input pipeline: each Poll reads the
// configured pins, steps the encoder and button state machines, and
// dispatches the resulting events through the binding registry in a
// deterministic order (encoders before buttons, each in configuration
// order).
package engine

import (
	"errors"
	"fmt"

	"knobd/bind"
	"knobd/button"
	"knobd/encoder"
	"knobd/event"
	"knobd/hal"
)

// ErrConfig marks configuration problems detected at construction.
var ErrConfig = errors.New("invalid input configuration")

// Config is the complete input-side configuration.
type Config struct {
	Encoders []encoder.Config `yaml:"encoders"`
	Buttons  []button.Config  `yaml:"buttons"`
	Timing   button.Timing    `yaml:"timing"`
}

// Pins returns every pin the configuration reads, for the hal backend
// to claim at startup.
func (c Config) Pins() []int {
	var pins []int
	for _, ec := range c.Encoders {
		pins = append(pins, ec.PinA, ec.PinB)
	}
	for _, bc := range c.Buttons {
		pins = append(pins, bc.Pin)
	}
	return pins
}

type buttonChannel struct {
	cfg button.Config
	deb *button.Debouncer
	det *button.Detector
}

// Engine owns all runtime input state. It is single-threaded by
// contract: exactly one goroutine calls Poll, and handlers run
// synchronously on that goroutine.
type Engine struct {
	reader   hal.Reader
	clock    hal.Clock
	registry *bind.Registry

	encoders []*encoder.Channel
	buttons  []*buttonChannel

	// Reused across polls so steady-state dispatch never allocates.
	events []event.Event
}

// New validates the configuration and builds the engine. All config
// errors wrap ErrConfig and are fatal to startup.
func New(cfg Config, reader hal.Reader, clock hal.Clock) (*Engine, error) {
	if reader == nil || clock == nil {
		return nil, fmt.Errorf("%w: reader and clock are required", ErrConfig)
	}
	if len(cfg.Encoders) == 0 && len(cfg.Buttons) == 0 {
		return nil, fmt.Errorf("%w: no encoders or buttons configured", ErrConfig)
	}
	cfg.Timing.ApplyDefaults()

	e := &Engine{
		reader: reader,
		clock:  clock,
		events: make([]event.Event, 0, 2*(len(cfg.Encoders)+len(cfg.Buttons))),
	}

	encIDs := make([]uint8, 0, len(cfg.Encoders))
	seenEnc := make(map[uint8]bool, len(cfg.Encoders))
	for _, ec := range cfg.Encoders {
		if seenEnc[ec.ID] {
			return nil, fmt.Errorf("%w: duplicate encoder id %d", ErrConfig, ec.ID)
		}
		seenEnc[ec.ID] = true
		ch, err := encoder.NewChannel(ec)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		e.encoders = append(e.encoders, ch)
		encIDs = append(encIDs, ec.ID)
	}

	btnIDs := make([]uint8, 0, len(cfg.Buttons))
	seenBtn := make(map[uint8]bool, len(cfg.Buttons))
	for _, bc := range cfg.Buttons {
		if seenBtn[bc.ID] {
			return nil, fmt.Errorf("%w: duplicate button id %d", ErrConfig, bc.ID)
		}
		seenBtn[bc.ID] = true
		if err := bc.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		e.buttons = append(e.buttons, &buttonChannel{
			cfg: bc,
			deb: button.NewDebouncer(bc.ActiveLow, cfg.Timing.DebounceMs),
			det: button.NewDetector(bc.ID, cfg.Timing),
		})
		btnIDs = append(btnIDs, bc.ID)
	}

	e.registry = bind.NewRegistry(encIDs, btnIDs)
	return e, nil
}

// Bindings returns the registry used to attach handlers. Register
// everything during setup and check Err once; the registry must not be
// mutated once polling has started.
func (e *Engine) Bindings() *bind.Registry {
	return e.registry
}

// Poll runs one cycle: sample hardware, step every channel, dispatch
// the collected events in order. It never blocks; the caller owns the
// cadence and must keep it small relative to the debounce and gesture
// windows. A hardware read failure abandons the cycle and is returned
// as a *hal.ReadError for the caller to report; the next Poll starts
// clean.
func (e *Engine) Poll() error {
	now := e.clock.NowMs()
	evs := e.events[:0]

	for _, enc := range e.encoders {
		c := enc.Config()
		a, err := e.reader.ReadDigital(c.PinA)
		if err != nil {
			return fmt.Errorf("encoder %d: %w", c.ID, err)
		}
		b, err := e.reader.ReadDigital(c.PinB)
		if err != nil {
			return fmt.Errorf("encoder %d: %w", c.ID, err)
		}
		if ev, ok := enc.Poll(a, b); ok {
			evs = append(evs, ev)
		}
	}

	for _, btn := range e.buttons {
		raw, err := e.reader.ReadDigital(btn.cfg.Pin)
		if err != nil {
			return fmt.Errorf("button %d: %w", btn.cfg.ID, err)
		}
		pressed, changed := btn.deb.Sample(raw, now)
		evs = btn.det.Update(pressed, changed, now, evs)
	}

	e.events = evs
	for _, ev := range evs {
		e.registry.Dispatch(ev)
	}
	return nil
}
