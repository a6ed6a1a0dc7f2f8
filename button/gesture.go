package button

import "knobd/event"

// Detector classifies gestures for one button from debounced edges and
// the poll clock. Press/release always fire alongside the discrete
// gestures; a long-press never suppresses the release, and handlers
// pick whichever level of the pair they care about.
type Detector struct {
	id          uint8
	longPressMs uint64
	doubleTapMs uint64

	pressed    bool
	pressStart uint64
	longFired  bool // at most one long-press per press cycle

	// Double-tap is measured release-to-release. pendingTap marks an
	// unpaired release; pairing consumes it so a third rapid release
	// cannot reuse the middle one.
	pendingTap  bool
	lastRelease uint64
}

func NewDetector(id uint8, t Timing) *Detector {
	return &Detector{
		id:          id,
		longPressMs: uint64(t.LongPressMs),
		doubleTapMs: uint64(t.DoubleTapMs),
	}
}

// Update consumes the debounced state for one poll and appends any
// gestures to evs, which is returned. The long-press check runs
// against wall-clock elapsed time once per poll, so with irregular
// polling it fires on the first poll past the threshold, without
// retroactive correction.
func (g *Detector) Update(pressed, edge bool, nowMs uint64, evs []event.Event) []event.Event {
	if edge {
		if pressed {
			g.pressed = true
			g.pressStart = nowMs
			g.longFired = false
			evs = append(evs, event.Event{Kind: event.ButtonPress, ID: g.id})
		} else {
			g.pressed = false
			evs = append(evs, event.Event{Kind: event.ButtonRelease, ID: g.id})
			if g.pendingTap && nowMs-g.lastRelease <= g.doubleTapMs {
				g.pendingTap = false
				evs = append(evs, event.Event{Kind: event.ButtonDoubleTap, ID: g.id})
			} else {
				g.pendingTap = true
				g.lastRelease = nowMs
			}
		}
		return evs
	}

	if g.pressed && !g.longFired && nowMs-g.pressStart >= g.longPressMs {
		g.longFired = true
		evs = append(evs, event.Event{Kind: event.ButtonLongPress, ID: g.id})
	}
	return evs
}
