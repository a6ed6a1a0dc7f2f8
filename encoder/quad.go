package encoder

// Quadrature phase is the 2-bit value (A<<1)|B. A valid step moves to
// an adjacent Gray-code phase; anything else (including both pins
// flipping at once) is electrical noise and must not move the counter.
//
// Indexed by prevPhase<<2|phase: +1 forward, -1 reverse, 0 otherwise.
var transitions = [16]int8{
	0, +1, -1, 0,
	-1, 0, 0, +1,
	+1, 0, 0, -1,
	0, -1, +1, 0,
}

// Decoder converts raw A/B pin samples into signed tick deltas.
// The caller must sample fast enough (sub-millisecond) that no
// intermediate phase is skipped, or motion is silently lost.
type Decoder struct {
	invert    bool
	lastPhase uint8
	primed    bool
	ticks     int64
}

func NewDecoder(invert bool) *Decoder {
	return &Decoder{invert: invert}
}

// Step consumes one sample of the A/B pins and returns the tick delta
// it produced: +1, -1, or 0 for no movement or a rejected glitch.
func (d *Decoder) Step(a, b bool) int {
	var phase uint8
	if a {
		phase |= 2
	}
	if b {
		phase |= 1
	}

	// The first sample only establishes the reference phase, so the
	// power-on pin state can never register as a transition.
	if !d.primed {
		d.primed = true
		d.lastPhase = phase
		return 0
	}
	if phase == d.lastPhase {
		return 0
	}

	delta := int(transitions[d.lastPhase<<2|phase])
	d.lastPhase = phase
	if delta == 0 {
		return 0
	}
	if d.invert {
		delta = -delta
	}
	d.ticks += int64(delta)
	return delta
}

// Ticks returns the raw signed tick accumulator.
func (d *Decoder) Ticks() int64 {
	return d.ticks
}
