package engine

import (
	"strings"
)

// Sub-event kinds as they appear in the stream.
const (
	KindBegin  = "BEGIN"
	KindUpdate = "UPDATE"
	KindEnd    = "END"
)

const gestureMarker = "GESTURE_"

// Event is one parsed line of the event stream. Gesture and Kind carry the
// raw tokens from the line; validation against the known types happens in
// the event loop so unknown values can be traced rather than dropped here.
type Event struct {
	Gesture   string   // lowercased type token: swipe, pinch, hold, ...
	Kind      string   // BEGIN, UPDATE, END, ...
	Fingers   string   // finger-count token, verbatim
	Fields    []string // motion payload following the finger count
	Cancelled bool     // END only: source cancelled the motion
}

// ParseEvent extracts a gesture sub-event from one stream line. Lines
// without a GESTURE_ marker are not events (nil, false). The layout follows
// libinput debug-events: the event token, a "+"-prefixed timestamp, the
// finger count, then motion-specific fields; an END line may carry a
// trailing "cancelled" status.
func ParseEvent(line string) (*Event, bool) {
	fields := strings.Fields(line)

	marker := -1
	for i, f := range fields {
		if strings.Contains(f, gestureMarker) {
			marker = i
			break
		}
	}
	if marker < 0 {
		return nil, false
	}

	name := fields[marker]
	name = name[strings.Index(name, gestureMarker)+len(gestureMarker):]
	gesture, kind, ok := strings.Cut(name, "_")
	if !ok {
		return nil, false
	}

	ev := &Event{
		Gesture: strings.ToLower(gesture),
		Kind:    kind,
	}

	// skip to the finger-count token just past the "+…" timestamp
	rest := fields[marker+1:]
	for i, f := range rest {
		if strings.HasPrefix(f, "+") {
			rest = rest[i+1:]
			break
		}
	}
	if len(rest) == 0 {
		return ev, true
	}
	ev.Fingers = rest[0]
	ev.Fields = rest[1:]

	if ev.Kind == KindEnd {
		for _, f := range ev.Fields {
			if f == "cancelled" {
				ev.Cancelled = true
				break
			}
		}
	}
	return ev, true
}
