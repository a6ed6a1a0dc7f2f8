// Package event defines the input events produced by the polling core.
// Events are small value types; one is produced per occurrence and
// routed to whatever handlers are bound to its (kind, id) key.
package event

// Kind identifies both the source device class and the gesture.
type Kind uint8

const (
	// EncoderTurn is emitted when an encoder accumulates a full
	// ticks-per-event quantum. Value carries the normalized position,
	// Delta the signed tick count since the previous emission.
	EncoderTurn Kind = iota
	ButtonPress
	ButtonRelease
	ButtonLongPress
	ButtonDoubleTap
)

func (k Kind) String() string {
	switch k {
	case EncoderTurn:
		return "turn"
	case ButtonPress:
		return "press"
	case ButtonRelease:
		return "release"
	case ButtonLongPress:
		return "long_press"
	case ButtonDoubleTap:
		return "double_tap"
	default:
		return "unknown"
	}
}

// Event is a single input occurrence. Value and Delta are meaningful
// only for EncoderTurn; they are zero for button events.
type Event struct {
	Kind  Kind
	ID    uint8
	Value float64 // normalized encoder position in [0, 1]
	Delta int     // signed ticks that triggered the emission
}
