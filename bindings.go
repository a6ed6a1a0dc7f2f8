package main

import (
	"knobd/event"

	"go.uber.org/zap"
)

// setupBindings translates the bindings config into registry
// registrations. Handlers run synchronously on the poll goroutine, so
// they only hand values to the MIDI sender and return; MQTT and the
// activity LED hang off an observer instead of per-key handlers.
func (app *App) setupBindings() error {
	reg := app.engine.Bindings()

	reg.Observe(func(ev event.Event) {
		app.indicator.Activity()
		app.mqtt.PublishEvent(ev)
	})

	for _, eb := range app.cfg.Bindings.Encoders {
		cc := eb.CC
		reg.OnEncoder(eb.ID).Turn(func(value float64, delta int) {
			app.sendCC(cc, uint8(value*127.0))
		})
	}

	for _, bb := range app.cfg.Bindings.Buttons {
		binding := reg.OnButton(bb.ID)

		if bb.CC != nil {
			cc := *bb.CC
			if bb.Mode == "toggle" {
				// Press flips between 127 and 0, like a latching
				// footswitch; release sends nothing.
				on := false
				binding.Press(func() {
					on = !on
					if on {
						app.sendCC(cc, 127)
					} else {
						app.sendCC(cc, 0)
					}
				})
			} else {
				binding.
					Press(func() { app.sendCC(cc, 127) }).
					Release(func() { app.sendCC(cc, 0) })
			}
		}
		if bb.LongPressCC != nil {
			cc := *bb.LongPressCC
			binding.LongPress(func() { app.sendCC(cc, 127) })
		}
		if bb.DoubleTapCC != nil {
			cc := *bb.DoubleTapCC
			binding.DoubleTap(func() { app.sendCC(cc, 127) })
		}
	}

	return reg.Err()
}

// sendCC pushes one Control-Change to the MIDI backend. Send failures
// are logged, not propagated; one bad message must not kill the poll
// loop.
func (app *App) sendCC(controller, value uint8) {
	if err := app.midi.SendCC(app.cfg.MIDI.Channel, controller, value); err != nil {
		app.log.Warn("midi send failed",
			zap.Uint8("cc", controller),
			zap.Uint8("value", value),
			zap.Error(err))
	}
}
