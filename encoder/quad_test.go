package encoder

import "testing"

// forward phase cycle in (A, B) pin levels: 00 -> 01 -> 11 -> 10 -> 00
var forward = [][2]bool{
	{false, true},
	{true, true},
	{true, false},
	{false, false},
}

// prime establishes the decoder's reference phase at 00.
func prime(t *testing.T, d *Decoder) {
	t.Helper()
	if delta := d.Step(false, false); delta != 0 {
		t.Fatalf("priming sample produced delta %d", delta)
	}
}

// TestDecoder_ForwardTicks verifies that k valid forward transitions
// accumulate exactly +k ticks.
func TestDecoder_ForwardTicks(t *testing.T) {
	d := NewDecoder(false)
	prime(t, d)

	const k = 12
	for i := 0; i < k; i++ {
		step := forward[i%len(forward)]
		if delta := d.Step(step[0], step[1]); delta != 1 {
			t.Fatalf("step %d: expected delta +1, got %d", i, delta)
		}
	}
	if d.Ticks() != k {
		t.Errorf("expected %d ticks, got %d", k, d.Ticks())
	}
}

// TestDecoder_ReverseTicks verifies that reverse transitions
// accumulate negative ticks.
func TestDecoder_ReverseTicks(t *testing.T) {
	d := NewDecoder(false)
	prime(t, d)

	// reverse cycle: 00 -> 10 -> 11 -> 01 -> 00
	reverse := [][2]bool{
		{true, false},
		{true, true},
		{false, true},
		{false, false},
	}
	for i := 0; i < 8; i++ {
		step := reverse[i%len(reverse)]
		if delta := d.Step(step[0], step[1]); delta != -1 {
			t.Fatalf("step %d: expected delta -1, got %d", i, delta)
		}
	}
	if d.Ticks() != -8 {
		t.Errorf("expected -8 ticks, got %d", d.Ticks())
	}
}

// TestDecoder_Invert verifies the direction-invert flag swaps the
// accumulator's sign for the same physical rotation.
func TestDecoder_Invert(t *testing.T) {
	d := NewDecoder(true)
	prime(t, d)

	for i := 0; i < 4; i++ {
		step := forward[i%len(forward)]
		if delta := d.Step(step[0], step[1]); delta != -1 {
			t.Fatalf("step %d: expected inverted delta -1, got %d", i, delta)
		}
	}
	if d.Ticks() != -4 {
		t.Errorf("expected -4 ticks with invert, got %d", d.Ticks())
	}
}

// TestDecoder_GlitchRejected verifies that an invalid phase jump (both
// pins flipping at once) leaves the accumulator unchanged.
func TestDecoder_GlitchRejected(t *testing.T) {
	d := NewDecoder(false)
	prime(t, d)

	d.Step(false, true) // 00 -> 01, +1
	before := d.Ticks()

	// 01 -> 10 flips both bits: not a single quadrature step.
	if delta := d.Step(true, false); delta != 0 {
		t.Fatalf("invalid transition produced delta %d", delta)
	}
	if d.Ticks() != before {
		t.Errorf("invalid transition moved accumulator from %d to %d", before, d.Ticks())
	}
}

// TestDecoder_RepeatedPhase verifies that re-sampling an unchanged
// phase is a no-op, since the poll rate normally outruns the shaft.
func TestDecoder_RepeatedPhase(t *testing.T) {
	d := NewDecoder(false)
	prime(t, d)

	d.Step(false, true)
	for i := 0; i < 10; i++ {
		if delta := d.Step(false, true); delta != 0 {
			t.Fatalf("repeat %d: expected delta 0, got %d", i, delta)
		}
	}
	if d.Ticks() != 1 {
		t.Errorf("expected 1 tick, got %d", d.Ticks())
	}
}

// TestDecoder_FirstSamplePrimes verifies that a non-zero power-on
// phase does not register as movement.
func TestDecoder_FirstSamplePrimes(t *testing.T) {
	d := NewDecoder(false)
	if delta := d.Step(true, true); delta != 0 {
		t.Fatalf("first sample at phase 11 produced delta %d", delta)
	}
	if d.Ticks() != 0 {
		t.Errorf("expected 0 ticks after priming, got %d", d.Ticks())
	}
}
