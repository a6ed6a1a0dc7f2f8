package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"knobd/engine"
	"knobd/hal"
	"knobd/indicator"
	"knobd/midiout"
	"knobd/mqtt"
)

// Config is the main configuration structure for knobd.
type Config struct {
	// Client identity, used for MQTT
	ClientID string `yaml:"client_id"`

	// Poll loop cadence. Keep well under the debounce window; the
	// quadrature decoder needs sub-millisecond sampling.
	PollIntervalUs int `yaml:"poll_interval_us"`

	// Logging level: "debug" or anything else for production
	LogLevel string `yaml:"log_level"`

	// Hardware read backend
	HAL hal.Config `yaml:"hal"`

	// Encoders, buttons, and gesture timing
	Input engine.Config `yaml:"input"`

	// MIDI output
	MIDI MIDIConfig `yaml:"midi"`

	// Optional MQTT event publishing
	MQTT mqtt.Config `yaml:"mqtt"`

	// Optional LED indicator
	Indicator indicator.Config `yaml:"indicator"`

	// Event-to-CC bindings
	Bindings BindingsConfig `yaml:"bindings"`
}

// MIDIConfig groups the output backend with the channel everything is
// sent on.
type MIDIConfig struct {
	Output  midiout.Config `yaml:"output"`
	Channel uint8          `yaml:"channel"` // 0-15
}

// BindingsConfig maps configured devices to CC numbers.
type BindingsConfig struct {
	Encoders []EncoderBindingConfig `yaml:"encoders"`
	Buttons  []ButtonBindingConfig  `yaml:"buttons"`
}

// EncoderBindingConfig sends the encoder's normalized position, scaled
// to 0..127, on the given CC for every turn event.
type EncoderBindingConfig struct {
	ID uint8 `yaml:"id"`
	CC uint8 `yaml:"cc"`
}

// ButtonBindingConfig wires a button's gestures to CC numbers. Mode
// "momentary" sends 127 on press and 0 on release; "toggle" flips
// between 127 and 0 on each press. LongPressCC and DoubleTapCC send
// 127 when their gesture fires.
type ButtonBindingConfig struct {
	ID          uint8  `yaml:"id"`
	CC          *uint8 `yaml:"cc"`
	Mode        string `yaml:"mode"`
	LongPressCC *uint8 `yaml:"long_press_cc"`
	DoubleTapCC *uint8 `yaml:"double_tap_cc"`
}

// loadConfig reads and validates the yaml config file.
func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ClientID == "" {
		c.ClientID = "knobd"
	}
	if c.PollIntervalUs == 0 {
		c.PollIntervalUs = 500
	}
}

func (c *Config) validate() error {
	for _, bb := range c.Bindings.Buttons {
		switch bb.Mode {
		case "", "momentary", "toggle":
		default:
			return fmt.Errorf("button %d binding: unknown mode %q", bb.ID, bb.Mode)
		}
	}
	if c.MIDI.Channel > 15 {
		return fmt.Errorf("midi channel %d out of range 0-15", c.MIDI.Channel)
	}
	return nil
}
