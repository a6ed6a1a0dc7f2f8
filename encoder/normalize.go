package encoder

// Normalizer accumulates tick deltas into an absolute angular position
// clamped to [0, rangeAngle] and decides when a turn is worth
// reporting: one emission per ticksPerEvent quantum, so a detented
// encoder yields one event per physical click instead of four.
type Normalizer struct {
	rangeAngle   float64
	anglePerTick float64
	quantumTicks int

	position float64 // current angle, clamped to [0, rangeAngle]
	quantum  int     // signed ticks since the last emission
}

// Turn is a pending emission: the new normalized position and the
// signed tick delta that produced it.
type Turn struct {
	Value float64
	Delta int
}

func NewNormalizer(ppr int, rangeAngle float64, ticksPerEvent int) *Normalizer {
	return &Normalizer{
		rangeAngle:   rangeAngle,
		anglePerTick: rangeAngle / float64(ppr),
		quantumTicks: ticksPerEvent,
	}
}

// Advance applies a tick delta from the decoder. It reports a Turn
// once the accumulated ticks since the last emission reach the quantum
// in either direction. A fast spin that crosses several quanta between
// polls still yields a single Turn carrying the full accumulated
// delta; the accumulator resets to zero on emission.
func (n *Normalizer) Advance(delta int) (Turn, bool) {
	if delta == 0 {
		return Turn{}, false
	}

	n.position += float64(delta) * n.anglePerTick
	// Saturate at the end stops; turning past them does not wrap.
	if n.position < 0 {
		n.position = 0
	} else if n.position > n.rangeAngle {
		n.position = n.rangeAngle
	}

	n.quantum += delta
	if n.quantum >= n.quantumTicks || -n.quantum >= n.quantumTicks {
		t := Turn{Value: n.Value(), Delta: n.quantum}
		n.quantum = 0
		return t, true
	}
	return Turn{}, false
}

// Value returns the normalized position in [0, 1].
func (n *Normalizer) Value() float64 {
	return n.position / n.rangeAngle
}
