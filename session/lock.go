// Package session watches the desktop session-lock state over D-Bus so the
// event loop can drop gestures while the screen is locked.
package session

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/godbus/dbus/v5"

	"github.com/swipetools/gesturectl/utils"
)

// the two screensaver interfaces emitting ActiveChanged(bool) in the wild
var screensaverInterfaces = []string{
	"org.freedesktop.ScreenSaver",
	"org.gnome.ScreenSaver",
}

// MonitorLock subscribes to screensaver ActiveChanged signals on the session
// bus and mirrors them into locked. The flag is the only state shared with
// the event loop and is written atomically; classifier state is never
// touched from here. An unreachable session bus is not fatal — gestures just
// stay enabled.
func MonitorLock(ctx context.Context, locked *atomic.Bool) error {
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return err
	}
	if err := conn.Auth(nil); err != nil {
		conn.Close()
		return err
	}
	if err := conn.Hello(); err != nil {
		conn.Close()
		return err
	}

	for _, iface := range screensaverInterfaces {
		err := conn.AddMatchSignal(
			dbus.WithMatchInterface(iface),
			dbus.WithMatchMember("ActiveChanged"),
		)
		if err != nil {
			conn.Close()
			return err
		}
	}

	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		for sig := range signals {
			if !strings.HasSuffix(sig.Name, ".ActiveChanged") || len(sig.Body) != 1 {
				continue
			}
			active, ok := sig.Body[0].(bool)
			if !ok {
				continue
			}
			locked.Store(active)
			if active {
				utils.Verbose("session locked, gestures suspended")
			} else {
				utils.Verbose("session unlocked, gestures resumed")
			}
		}
	}()

	return nil
}
