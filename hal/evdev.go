//go:build linux

package hal

import (
	"context"
	"fmt"
	"sync"

	"github.com/kenshaw/evdev"
	"go.uber.org/zap"
)

// EvdevReader exposes the keys of a Linux input device as virtual
// active-high pins, so the daemon can be driven from a keyboard while
// bringing up configs off the real hardware. Pin numbers are evdev key
// codes (e.g. KEY_A = 30); channels using it should set active_low to
// false.
//
// A background goroutine owns the device and keeps the last-known key
// levels; ReadDigital is a map lookup and never blocks.
type EvdevReader struct {
	device *evdev.Evdev
	cancel context.CancelFunc
	log    *zap.Logger

	mu     sync.RWMutex
	levels map[int]bool
}

// NewEvdevReader opens the input device and starts the level tracker.
func NewEvdevReader(device string, log *zap.Logger) (*EvdevReader, error) {
	dev, err := evdev.OpenFile(device)
	if err != nil {
		return nil, fmt.Errorf("open evdev %s: %w", device, err)
	}
	log.Info("opened input device",
		zap.String("device", device),
		zap.String("name", dev.Name()))

	ctx, cancel := context.WithCancel(context.Background())
	r := &EvdevReader{
		device: dev,
		cancel: cancel,
		log:    log,
		levels: make(map[int]bool),
	}
	go r.track(ctx)
	return r, nil
}

func (r *EvdevReader) track(ctx context.Context) {
	ch := r.device.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-ch:
			if ev == nil {
				r.log.Warn("input device closed")
				return
			}
			switch ev.Type.(type) {
			case evdev.KeyType:
				// Value 1 = down, 2 = autorepeat, 0 = up.
				r.mu.Lock()
				r.levels[int(ev.Code)] = ev.Value != 0
				r.mu.Unlock()
			}
		}
	}
}

// ReadDigital implements Reader.ReadDigital.
func (r *EvdevReader) ReadDigital(pin int) (bool, error) {
	r.mu.RLock()
	level := r.levels[pin]
	r.mu.RUnlock()
	return level, nil
}

// Release implements Reader.Release.
func (r *EvdevReader) Release() error {
	r.cancel()
	return r.device.Close()
}
