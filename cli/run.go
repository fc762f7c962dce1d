package cli

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/swipetools/gesturectl/config"
	"github.com/swipetools/gesturectl/device"
	"github.com/swipetools/gesturectl/engine"
	"github.com/swipetools/gesturectl/server"
	"github.com/swipetools/gesturectl/session"
	"github.com/swipetools/gesturectl/utils"
)

// loadConfig resolves the configuration file (explicit flag or search path)
// and parses it.
func loadConfig() (*config.Config, error) {
	path := configFile
	if path == "" {
		var err error
		path, err = config.Find()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	utils.Verbose("loaded configuration from %s", path)
	return cfg, nil
}

// runEngine wires everything together and blocks on the event loop until
// the stream ends or the context is cancelled.
func runEngine(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := device.CheckTool(); err != nil {
		return err
	}

	name := deviceName
	if name == "" {
		name = cfg.Device
	}
	touchpad, err := device.Find(name)
	if err != nil {
		return err
	}
	deviceDesc := "all devices"
	if touchpad != nil {
		deviceDesc = touchpad.Name
	}

	// one engine per user; a second instance would double-fire every action
	lock, err := utils.AcquireInstanceLock("gesturectl")
	if err != nil {
		return err
	}
	defer lock.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var locked atomic.Bool
	if err := session.MonitorLock(ctx, &locked); err != nil {
		utils.Warn("session lock monitoring unavailable: %v", err)
	}

	dispatcher := engine.NewDispatcher(cfg, debug)
	if listenAddr != "" {
		srv := server.New(cfg, deviceDesc, cancel)
		dispatcher.SetNotifier(srv)
		go func() {
			if err := srv.ListenAndServe(listenAddr); err != nil {
				utils.Error("status server: %v", err)
			}
		}()
	}

	source, err := device.OpenSource(ctx, touchpad)
	if err != nil {
		return err
	}
	defer source.Close()

	// unblock the scanner when a signal or the shutdown method cancels us
	go func() {
		<-ctx.Done()
		source.Close()
	}()

	utils.Info("listening for gestures on %s", deviceDesc)
	err = engine.New(cfg, dispatcher, &locked, raw).Run(ctx, source.Stream)
	if err == nil && ctx.Err() == nil {
		// the stream only ends on its own when the event source died
		err = errors.New("event source terminated unexpectedly")
	}
	return err
}
