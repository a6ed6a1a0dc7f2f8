// Package bind routes input events to application handlers. Handlers
// register once during setup through the fluent OnButton/OnEncoder
// builders; at poll time Dispatch invokes the handlers bound to each
// event's (kind, id) key synchronously, in registration order.
package bind

import (
	"errors"
	"fmt"

	"knobd/event"
)

// ErrConfig marks registration failures detected at setup time.
var ErrConfig = errors.New("invalid binding")

// Handler receives one event and must not block or re-register.
type Handler func(event.Event)

type key struct {
	kind event.Kind
	id   uint8
}

// Registry holds the binding table. Build it with the id sets of the
// configured devices so a binding against an unknown id fails at setup
// instead of silently never firing.
type Registry struct {
	handlers  map[key][]Handler
	observers []Handler
	encoders  map[uint8]bool
	buttons   map[uint8]bool
	sealed    bool
	err       error
}

func NewRegistry(encoderIDs, buttonIDs []uint8) *Registry {
	r := &Registry{
		handlers: make(map[key][]Handler),
		encoders: make(map[uint8]bool, len(encoderIDs)),
		buttons:  make(map[uint8]bool, len(buttonIDs)),
	}
	for _, id := range encoderIDs {
		r.encoders[id] = true
	}
	for _, id := range buttonIDs {
		r.buttons[id] = true
	}
	return r
}

// Err returns the first registration failure, if any. Check it once
// after all bindings are set up.
func (r *Registry) Err() error {
	return r.err
}

// Observe registers a handler that sees every dispatched event before
// the keyed handlers run, regardless of binding. Observers feed event
// sinks that want the whole stream (activity LEDs, MQTT).
func (r *Registry) Observe(h Handler) {
	if r.err != nil {
		return
	}
	if r.sealed {
		r.err = fmt.Errorf("%w: observer registered after dispatch started", ErrConfig)
		return
	}
	if h == nil {
		r.err = fmt.Errorf("%w: nil observer", ErrConfig)
		return
	}
	r.observers = append(r.observers, h)
}

// Dispatch runs the observers and then the handlers bound to the
// event's key, returning how many keyed handlers ran. An event with no
// bindings is expected and simply dropped. The first dispatch seals
// the registry against further registration.
func (r *Registry) Dispatch(ev event.Event) int {
	r.sealed = true
	for _, o := range r.observers {
		o(ev)
	}
	hs := r.handlers[key{kind: ev.Kind, id: ev.ID}]
	for _, h := range hs {
		h(ev)
	}
	return len(hs)
}

func (r *Registry) register(k event.Kind, id uint8, h Handler) {
	if r.err != nil {
		return
	}
	if r.sealed {
		r.err = fmt.Errorf("%w: registration after dispatch started (%s id %d)", ErrConfig, k, id)
		return
	}
	if h == nil {
		r.err = fmt.Errorf("%w: nil handler for %s id %d", ErrConfig, k, id)
		return
	}
	known := r.buttons
	if k == event.EncoderTurn {
		known = r.encoders
	}
	if !known[id] {
		r.err = fmt.Errorf("%w: no configured device for %s id %d", ErrConfig, k, id)
		return
	}
	kk := key{kind: k, id: id}
	r.handlers[kk] = append(r.handlers[kk], h)
}

// OnEncoder starts a binding chain for the encoder with the given id.
func (r *Registry) OnEncoder(id uint8) EncoderBinding {
	return EncoderBinding{r: r, id: id}
}

// OnButton starts a binding chain for the button with the given id.
func (r *Registry) OnButton(id uint8) ButtonBinding {
	return ButtonBinding{r: r, id: id}
}

// EncoderBinding registers handlers for one encoder. Methods return
// the binding so registrations chain; errors accumulate on the
// registry and surface through Err.
type EncoderBinding struct {
	r  *Registry
	id uint8
}

// Turn binds a handler to the encoder's turn events. The handler gets
// the normalized position and the signed tick delta.
func (b EncoderBinding) Turn(fn func(value float64, delta int)) EncoderBinding {
	var h Handler
	if fn != nil {
		h = func(ev event.Event) { fn(ev.Value, ev.Delta) }
	}
	b.r.register(event.EncoderTurn, b.id, h)
	return b
}

// ButtonBinding registers handlers for one button's gestures.
type ButtonBinding struct {
	r  *Registry
	id uint8
}

func (b ButtonBinding) bind(k event.Kind, fn func()) ButtonBinding {
	var h Handler
	if fn != nil {
		h = func(event.Event) { fn() }
	}
	b.r.register(k, b.id, h)
	return b
}

func (b ButtonBinding) Press(fn func()) ButtonBinding {
	return b.bind(event.ButtonPress, fn)
}

func (b ButtonBinding) Release(fn func()) ButtonBinding {
	return b.bind(event.ButtonRelease, fn)
}

func (b ButtonBinding) LongPress(fn func()) ButtonBinding {
	return b.bind(event.ButtonLongPress, fn)
}

func (b ButtonBinding) DoubleTap(fn func()) ButtonBinding {
	return b.bind(event.ButtonDoubleTap, fn)
}
