// Package gestures holds the per-type state machines that turn accumulated
// per-frame motion samples into a discrete motion label at gesture end.
package gestures

import (
	"regexp"
	"strconv"
	"time"
)

// Classifier is the shared begin/update/end lifecycle of the three gesture
// state machines. The event loop owns one classifier per gesture type and
// routes sub-events to it by gesture-type tag; classification is synchronous
// and never blocks.
type Classifier interface {
	// Begin starts a new gesture, resetting any in-flight accumulation.
	// fingers is the categorical finger-count token from the event stream.
	Begin(fingers string)

	// Update folds one frame's payload fields into the accumulators.
	// Returns false when the payload is unusable; that single update is
	// dropped and accumulation continues with the next one.
	Update(fields []string) bool

	// End classifies the accumulated samples. ok=false means the gesture is
	// discarded silently (below threshold, no meaningful accumulation).
	// End always leaves the classifier inactive.
	End() (motion string, ok bool)

	// Active reports whether a gesture is in flight.
	Active() bool

	// Reset discards any in-flight gesture without classifying, as on a
	// cancelled end event.
	Reset()

	// Fingers returns the finger-count token of the in-flight (or just
	// ended) gesture.
	Fingers() string

	// Elapsed is the time since Begin, for the dispatch timeout check.
	Elapsed() time.Duration
}

// gestureState is the per-gesture mutable state shared by all classifiers:
// the finger-count token, two accumulators whose meaning depends on the
// gesture type, and a monotonic start timestamp.
type gestureState struct {
	active  bool
	fingers string
	accumA  float64
	accumB  float64
	started time.Time
}

// Begin resets the accumulators and stamps the start time; a Begin while a
// gesture is already in flight restarts it with no carry-over.
func (s *gestureState) Begin(fingers string) {
	s.active = true
	s.fingers = fingers
	s.accumA = 0
	s.accumB = 0
	s.started = time.Now()
}

// Reset discards the in-flight gesture without classifying.
func (s *gestureState) Reset()          { s.active = false }
func (s *gestureState) Active() bool    { return s.active }
func (s *gestureState) Fingers() string { return s.fingers }

func (s *gestureState) Elapsed() time.Duration {
	return time.Since(s.started)
}

// numericRun matches the leading signed decimal run of a payload token.
// libinput pads and decorates its numeric columns ("  0.25/", "-4.51"), so
// extraction is deliberately permissive.
var numericRun = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)

func parseNumeric(field string) (float64, bool) {
	run := numericRun.FindString(field)
	if run == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(run, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
