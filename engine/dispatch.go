package engine

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/swipetools/gesturectl/config"
	"github.com/swipetools/gesturectl/types"
	"github.com/swipetools/gesturectl/utils"
)

// Executor launches an action command. The engine never waits on or
// observes the command's outcome.
type Executor interface {
	Start(argv []string)
}

// Notifier receives every classified gesture, fired or not. The status
// server implements it to feed websocket subscribers.
type Notifier interface {
	Publish(types.GestureEvent)
}

// detachedExecutor is the production Executor: spawn in a separate process
// group, reap in the background, never block the event loop.
type detachedExecutor struct{}

func (detachedExecutor) Start(argv []string) {
	cmd := exec.Command(argv[0], argv[1:]...)
	utils.ConfigureDetachedProcAttr(cmd)
	if err := cmd.Start(); err != nil {
		// execution failures are not surfaced to the gesture engine
		utils.Warn("failed to start %s: %v", argv[0], err)
		return
	}
	go cmd.Wait()
}

// Dispatcher resolves a classified motion to the most specific configured
// rule and fires its action at most once per completed gesture.
type Dispatcher struct {
	cfg      *config.Config
	executor Executor
	notifier Notifier

	// debug prints the resolved command instead of executing it
	debug bool
}

func NewDispatcher(cfg *config.Config, debug bool) *Dispatcher {
	return &Dispatcher{cfg: cfg, executor: detachedExecutor{}, debug: debug}
}

// SetExecutor replaces the launch primitive, used by tests and debug
// tooling.
func (d *Dispatcher) SetExecutor(e Executor) { d.executor = e }

// SetNotifier attaches an event sink for classified gestures.
func (d *Dispatcher) SetNotifier(n Notifier) { d.notifier = n }

// Dispatch resolves and fires the action for one classified gesture.
// elapsed is the begin→end span, re-checked here against the global timeout
// for swipe and pinch.
func (d *Dispatcher) Dispatch(gesture, motion, fingers string, elapsed time.Duration) {
	ev := types.GestureEvent{
		Time:    time.Now(),
		Gesture: gesture,
		Motion:  motion,
		Fingers: fingers,
		Elapsed: elapsed.Seconds(),
	}
	defer d.publish(&ev)

	rule := d.cfg.Lookup(gesture, motion, fingers)
	if rule == nil {
		ev.Reason = "no matching gesture configured"
		utils.Verbose("%s %s %s fingers: %s", gesture, motion, fingers, ev.Reason)
		return
	}
	ev.Command = rule.Command

	if gesture != config.GestureHold && d.cfg.Timeout > 0 && elapsed.Seconds() > d.cfg.Timeout {
		ev.Reason = fmt.Sprintf("timed out (%.2fs > %gs)", elapsed.Seconds(), d.cfg.Timeout)
		utils.Verbose("%s %s %s fingers: %s, not executing %s",
			gesture, motion, fingers, ev.Reason, strings.Join(rule.Command, " "))
		return
	}

	if d.debug {
		utils.Info("%s %s %s fingers: would execute %s",
			gesture, motion, fingers, strings.Join(rule.Command, " "))
		return
	}

	utils.Verbose("%s %s %s fingers: executing %s",
		gesture, motion, fingers, strings.Join(rule.Command, " "))
	ev.Fired = true
	d.executor.Start(rule.Command)
}

func (d *Dispatcher) publish(ev *types.GestureEvent) {
	if d.notifier != nil {
		d.notifier.Publish(*ev)
	}
}
