package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"knobd/engine"
	"knobd/hal"
	"knobd/indicator"
	"knobd/midiout"
	"knobd/mqtt"
)

var myBuild string

// App holds the daemon's state and dependencies.
type App struct {
	cfg       *Config
	log       *zap.Logger
	reader    hal.Reader
	engine    *engine.Engine
	midi      midiout.Sender
	mqtt      *mqtt.Client
	indicator indicator.Indicator
}

func main() {
	cfgfile := flag.String("cfg", "knobd.cfg", "Config file")
	flag.Parse()

	cfg, err := loadConfig(*cfgfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "knobd: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("knobd starting", zap.String("build", myBuild))

	app := &App{cfg: cfg, log: log}
	if err := app.run(); err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	var log *zap.Logger
	var err error
	if level == "debug" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return log
}

func (app *App) run() error {
	cfg := app.cfg

	// Hardware reader claims every configured pin up front.
	reader, err := hal.New(cfg.HAL, cfg.Input.Pins(), app.log)
	if err != nil {
		return fmt.Errorf("init hal: %w", err)
	}
	app.reader = reader
	defer app.reader.Release()

	app.engine, err = engine.New(cfg.Input, reader, hal.NewClock())
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}

	app.midi, err = midiout.New(cfg.MIDI.Output)
	if err != nil {
		return fmt.Errorf("init midi: %w", err)
	}
	defer app.midi.Release()

	app.mqtt, err = mqtt.New(cfg.MQTT, cfg.ClientID, app.log)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	if err := app.mqtt.Connect(); err != nil {
		return fmt.Errorf("connect mqtt: %w", err)
	}
	defer app.mqtt.Disconnect()

	app.indicator, err = indicator.New(cfg.Indicator)
	if err != nil {
		return fmt.Errorf("init indicator: %w", err)
	}
	defer app.indicator.Release()

	// All bindings register before the first poll; a single Err check
	// catches every misconfigured binding at startup.
	if err := app.setupBindings(); err != nil {
		return fmt.Errorf("setup bindings: %w", err)
	}

	app.indicator.Ready()
	log := app.log
	log.Info("polling",
		zap.Int("encoders", len(cfg.Input.Encoders)),
		zap.Int("buttons", len(cfg.Input.Buttons)),
		zap.Int("interval_us", cfg.PollIntervalUs))

	app.loop()
	log.Info("knobd stopped")
	return nil
}

// loop runs the poll cycle until SIGINT or SIGTERM. A hardware read
// error abandons that cycle, lights the fault LED, and keeps going;
// the engine starts the next poll clean.
func (app *App) loop() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(app.cfg.PollIntervalUs) * time.Microsecond)
	defer ticker.Stop()

	for {
		select {
		case s := <-sig:
			app.log.Info("shutting down", zap.String("signal", s.String()))
			return
		case <-ticker.C:
			if err := app.engine.Poll(); err != nil {
				var re *hal.ReadError
				if errors.As(err, &re) {
					app.indicator.Fault()
				}
				app.log.Error("poll failed", zap.Error(err))
			}
		}
	}
}
