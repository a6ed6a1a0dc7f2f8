// Package encoder turns raw quadrature pin samples from a rotary
// encoder into EncoderTurn events: a glitch-rejecting phase decoder
// feeding a clamped position accumulator with detent quantization.
package encoder

import (
	"fmt"

	"knobd/event"
)

// Config describes one physical encoder. Immutable after setup.
type Config struct {
	ID            uint8   `yaml:"id"`
	PinA          int     `yaml:"pin_a"`
	PinB          int     `yaml:"pin_b"`
	PPR           int     `yaml:"ppr"`             // ticks per full scaled revolution
	RangeAngle    float64 `yaml:"range_angle"`     // angle covered by the 0..1 range
	TicksPerEvent int     `yaml:"ticks_per_event"` // 4 = one detent on common encoders
	Invert        bool    `yaml:"invert"`
}

// Channel is the runtime pairing of a decoder and a normalizer for one
// configured encoder. Not safe for concurrent use; the poll loop is
// the only mutator.
type Channel struct {
	cfg  Config
	dec  *Decoder
	norm *Normalizer
}

func NewChannel(cfg Config) (*Channel, error) {
	if cfg.PinA < 0 || cfg.PinB < 0 || cfg.PinA == cfg.PinB {
		return nil, fmt.Errorf("encoder %d: invalid pin pair %d/%d", cfg.ID, cfg.PinA, cfg.PinB)
	}
	if cfg.PPR <= 0 {
		return nil, fmt.Errorf("encoder %d: ppr must be positive, got %d", cfg.ID, cfg.PPR)
	}
	if cfg.RangeAngle <= 0 {
		return nil, fmt.Errorf("encoder %d: range_angle must be positive, got %g", cfg.ID, cfg.RangeAngle)
	}
	if cfg.TicksPerEvent <= 0 {
		return nil, fmt.Errorf("encoder %d: ticks_per_event must be positive, got %d", cfg.ID, cfg.TicksPerEvent)
	}
	return &Channel{
		cfg:  cfg,
		dec:  NewDecoder(cfg.Invert),
		norm: NewNormalizer(cfg.PPR, cfg.RangeAngle, cfg.TicksPerEvent),
	}, nil
}

// Poll consumes one sample of the A/B pins. It returns an EncoderTurn
// event when a full quantum of movement has accumulated.
func (c *Channel) Poll(a, b bool) (event.Event, bool) {
	turn, ok := c.norm.Advance(c.dec.Step(a, b))
	if !ok {
		return event.Event{}, false
	}
	return event.Event{
		Kind:  event.EncoderTurn,
		ID:    c.cfg.ID,
		Value: turn.Value,
		Delta: turn.Delta,
	}, true
}

// Config returns the channel's immutable configuration.
func (c *Channel) Config() Config {
	return c.cfg
}

// Value returns the current normalized position in [0, 1].
func (c *Channel) Value() float64 {
	return c.norm.Value()
}
