package engine

import (
	"errors"
	"testing"

	"knobd/button"
	"knobd/encoder"
	"knobd/event"
	"knobd/hal"
)

// fakeReader serves pin levels from a map and can be told to fail a
// specific pin.
type fakeReader struct {
	levels  map[int]bool
	failPin int
	failErr error
}

func newFakeReader() *fakeReader {
	return &fakeReader{levels: make(map[int]bool), failPin: -1}
}

func (f *fakeReader) ReadDigital(pin int) (bool, error) {
	if f.failErr != nil && pin == f.failPin {
		return false, &hal.ReadError{Pin: pin, Err: f.failErr}
	}
	return f.levels[pin], nil
}

func (f *fakeReader) Release() error { return nil }

// fakeClock is advanced manually between polls.
type fakeClock struct {
	now uint64
}

func (c *fakeClock) NowMs() uint64 { return c.now }

func testConfig() Config {
	return Config{
		Encoders: []encoder.Config{{
			ID: 0, PinA: 22, PinB: 23,
			PPR: 24, RangeAngle: 270, TicksPerEvent: 4,
		}},
		Buttons: []button.Config{{ID: 0, Pin: 17, ActiveLow: true}},
	}
}

type harness struct {
	eng    *Engine
	reader *fakeReader
	clock  *fakeClock
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{reader: newFakeReader(), clock: &fakeClock{}}
	// Buttons idle high on pull-up wiring.
	for _, bc := range cfg.Buttons {
		if bc.ActiveLow {
			h.reader.levels[bc.Pin] = true
		}
	}
	eng, err := New(cfg, h.reader, h.clock)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.eng = eng
	return h
}

// poll advances the clock and runs one cycle.
func (h *harness) poll(t *testing.T, advanceMs uint64) {
	t.Helper()
	h.clock.now += advanceMs
	if err := h.eng.Poll(); err != nil {
		t.Fatalf("Poll at t=%d: %v", h.clock.now, err)
	}
}

// TestEngine_EncoderPipeline spins the encoder through the reader and
// checks the bound handler sees quantized turn events.
func TestEngine_EncoderPipeline(t *testing.T) {
	h := newHarness(t, testConfig())

	var turns []event.Event
	h.eng.Bindings().OnEncoder(0).Turn(func(value float64, delta int) {
		turns = append(turns, event.Event{Kind: event.EncoderTurn, Value: value, Delta: delta})
	})

	// Prime at 00, then one full forward quantum: 01 11 10 00.
	phases := [][2]bool{{false, false}, {false, true}, {true, true}, {true, false}, {false, false}}
	for _, p := range phases {
		h.reader.levels[22] = p[0]
		h.reader.levels[23] = p[1]
		h.poll(t, 1)
	}

	if len(turns) != 1 {
		t.Fatalf("4 ticks produced %d turn events, want 1", len(turns))
	}
	if turns[0].Delta != 4 {
		t.Errorf("delta = %d, want 4", turns[0].Delta)
	}
	want := 4.0 / 24.0
	if turns[0].Value != want {
		t.Errorf("value = %g, want %g", turns[0].Value, want)
	}
}

// TestEngine_ButtonDebounceTiming holds the active-low pin and checks
// the press handler fires only after the debounce window at the 1ms
// poll cadence.
func TestEngine_ButtonDebounceTiming(t *testing.T) {
	h := newHarness(t, testConfig())

	var presses, releases int
	h.eng.Bindings().OnButton(0).
		Press(func() { presses++ }).
		Release(func() { releases++ })

	h.poll(t, 1) // idle high, settles nothing

	h.reader.levels[17] = false // switch closes, pin pulled low
	for i := 0; i < 5; i++ {
		h.poll(t, 1)
		if presses != 0 {
			t.Fatalf("press fired inside the debounce window (poll %d)", i)
		}
	}
	h.poll(t, 1) // window elapsed
	if presses != 1 {
		t.Fatalf("presses = %d after full window, want 1", presses)
	}

	h.reader.levels[17] = true
	for i := 0; i < 6; i++ {
		h.poll(t, 1)
	}
	if releases != 1 {
		t.Errorf("releases = %d, want 1", releases)
	}
}

// TestEngine_LongPressDispatch verifies the poll clock drives the
// long-press gesture end to end.
func TestEngine_LongPressDispatch(t *testing.T) {
	h := newHarness(t, testConfig())

	var longs int
	h.eng.Bindings().OnButton(0).LongPress(func() { longs++ })

	h.poll(t, 1)
	h.reader.levels[17] = false
	for i := 0; i < 600; i++ {
		h.poll(t, 1)
	}
	if longs != 1 {
		t.Errorf("long-press fired %d times over a 600ms hold, want 1", longs)
	}
}

// TestEngine_EncodersBeforeButtons makes both devices emit on the same
// poll and checks the dispatch order via an observer.
func TestEngine_EncodersBeforeButtons(t *testing.T) {
	h := newHarness(t, testConfig())

	var order []event.Kind
	h.eng.Bindings().Observe(func(ev event.Event) { order = append(order, ev.Kind) })

	// Debounce the button press so its edge is pending.
	h.poll(t, 1)
	h.reader.levels[17] = false
	for i := 0; i < 5; i++ {
		h.poll(t, 1)
	}

	// Walk the encoder to one tick short of the quantum.
	phases := [][2]bool{{false, true}, {true, true}, {true, false}}
	for _, p := range phases {
		h.reader.levels[22] = p[0]
		h.reader.levels[23] = p[1]
		h.eng.Poll() // clock frozen so the button edge stays pending
	}

	// This poll completes both the quantum and the debounce window.
	h.reader.levels[22] = false
	h.reader.levels[23] = false
	h.poll(t, 1)

	if len(order) != 2 || order[0] != event.EncoderTurn || order[1] != event.ButtonPress {
		t.Fatalf("dispatch order = %v, want [turn press]", order)
	}
}

// TestEngine_ReadErrorAbandonsCycle fails the button pin and checks the
// error carries the pin through errors.As, with no events dispatched
// for the broken cycle.
func TestEngine_ReadErrorAbandonsCycle(t *testing.T) {
	h := newHarness(t, testConfig())

	dispatched := 0
	h.eng.Bindings().Observe(func(event.Event) { dispatched++ })

	h.reader.failPin = 17
	h.reader.failErr = errors.New("gpio line gone")
	h.clock.now = 1
	err := h.eng.Poll()
	if err == nil {
		t.Fatal("Poll succeeded with a failing pin")
	}
	var re *hal.ReadError
	if !errors.As(err, &re) {
		t.Fatalf("error %v does not unwrap to *hal.ReadError", err)
	}
	if re.Pin != 17 {
		t.Errorf("ReadError.Pin = %d, want 17", re.Pin)
	}
	if dispatched != 0 {
		t.Errorf("%d events dispatched during a failed cycle", dispatched)
	}

	// Recovery: the pin comes back and polling resumes.
	h.reader.failErr = nil
	h.poll(t, 1)
}

// TestEngine_ConfigValidation exercises the fatal construction errors.
func TestEngine_ConfigValidation(t *testing.T) {
	reader := newFakeReader()
	clock := &fakeClock{}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"duplicate encoder id", func(c *Config) {
			c.Encoders = append(c.Encoders, c.Encoders[0])
		}},
		{"duplicate button id", func(c *Config) {
			c.Buttons = append(c.Buttons, c.Buttons[0])
		}},
		{"bad encoder", func(c *Config) { c.Encoders[0].PPR = 0 }},
		{"bad button pin", func(c *Config) { c.Buttons[0].Pin = -1 }},
		{"empty", func(c *Config) { c.Encoders = nil; c.Buttons = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mutate(&cfg)
			if _, err := New(cfg, reader, clock); !errors.Is(err, ErrConfig) {
				t.Errorf("New = %v, want ErrConfig", err)
			}
		})
	}

	if _, err := New(testConfig(), nil, clock); !errors.Is(err, ErrConfig) {
		t.Errorf("nil reader: %v, want ErrConfig", err)
	}
}

// TestConfig_Pins collects every configured pin for the hal to claim.
func TestConfig_Pins(t *testing.T) {
	pins := testConfig().Pins()
	want := []int{22, 23, 17}
	if len(pins) != len(want) {
		t.Fatalf("Pins = %v, want %v", pins, want)
	}
	for i := range want {
		if pins[i] != want[i] {
			t.Fatalf("Pins = %v, want %v", pins, want)
		}
	}
}
