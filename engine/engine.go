// Package engine drives the sequential event loop: it parses device event
// lines, routes begin/update/end sub-events to the per-type gesture
// classifiers, and hands completed gestures to the dispatch resolver.
package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/swipetools/gesturectl/config"
	"github.com/swipetools/gesturectl/gestures"
	"github.com/swipetools/gesturectl/utils"
)

// Engine is the single sequential consumer of the event stream. Classifier
// state is only ever touched from Run's goroutine; the session-lock flag is
// the one piece of cross-goroutine state and is read atomically.
type Engine struct {
	classifiers map[string]gestures.Classifier
	dispatcher  *Dispatcher

	// locked is flipped by the session-lock monitor; while set, all
	// sub-events are dropped before reaching any classifier.
	locked *atomic.Bool

	// raw echoes every input line unmodified instead of classifying
	raw bool
}

// New builds an engine for the given configuration. Each gesture type gets
// its own independent classifier; a begin for one type never disturbs
// another type's in-flight gesture.
func New(cfg *config.Config, dispatcher *Dispatcher, locked *atomic.Bool, raw bool) *Engine {
	return &Engine{
		classifiers: map[string]gestures.Classifier{
			config.GestureSwipe: gestures.NewSwipe(cfg.SwipeThreshold, cfg.Extended(config.GestureSwipe)),
			config.GesturePinch: gestures.NewPinch(cfg.Extended(config.GesturePinch)),
			config.GestureHold:  gestures.NewHold(gestures.NewDelayTable(cfg.Rules(config.GestureHold))),
		},
		dispatcher: dispatcher,
		locked:     locked,
		raw:        raw,
	}
}

// Run consumes the event stream until EOF, stream error, or context
// cancellation. An unexpected end of the stream is returned as an error;
// there is no reconnect.
func (e *Engine) Run(ctx context.Context, stream io.Reader) error {
	scanner := bufio.NewScanner(stream)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		e.handleLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("event stream failed: %w", err)
	}
	return nil
}

func (e *Engine) handleLine(line string) {
	if e.raw {
		fmt.Println(line)
		return
	}

	ev, ok := ParseEvent(line)
	if !ok {
		return
	}

	if e.locked != nil && e.locked.Load() {
		utils.Verbose("session locked, ignoring %s %s", ev.Gesture, ev.Kind)
		return
	}

	classifier, ok := e.classifiers[ev.Gesture]
	if !ok {
		utils.Verbose("unknown gesture type %q, ignoring", ev.Gesture)
		return
	}

	switch ev.Kind {
	case KindBegin:
		classifier.Begin(ev.Fingers)
	case KindUpdate:
		if !classifier.Active() {
			return
		}
		if !classifier.Update(ev.Fields) {
			utils.Verbose("dropped unparsable %s update: %q", ev.Gesture, line)
		}
	case KindEnd:
		if !classifier.Active() {
			return
		}
		if ev.Cancelled {
			classifier.Reset()
			utils.Verbose("%s cancelled by source", ev.Gesture)
			return
		}
		motion, classified := classifier.End()
		if !classified {
			utils.Verbose("%s discarded", ev.Gesture)
			return
		}
		e.dispatcher.Dispatch(ev.Gesture, motion, classifier.Fingers(), classifier.Elapsed())
	default:
		utils.Verbose("unknown gesture event %q, ignoring", ev.Kind)
	}
}
