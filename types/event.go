package types

import "time"

// GestureEvent describes one completed, classified gesture. It is what the
// status server broadcasts to websocket subscribers and what verbose mode
// traces; the engine emits one per gesture end regardless of whether an
// action fired.
type GestureEvent struct {
	Time    time.Time `json:"time"`
	Gesture string    `json:"gesture"`           // swipe, pinch, hold
	Motion  string    `json:"motion"`            // e.g. left, right_up, clockwise, on+2
	Fingers string    `json:"fingers,omitempty"` // finger-count token as received
	Elapsed float64   `json:"elapsed"`           // begin→end span in seconds
	Command []string  `json:"command,omitempty"` // resolved action argv, if any
	Fired   bool      `json:"fired"`             // false when suppressed or unmatched
	Reason  string    `json:"reason,omitempty"`  // why nothing fired
}

// ConfigRule is the listing-mode view of one configured gesture rule.
type ConfigRule struct {
	Gesture string   `json:"gesture"`
	Motion  string   `json:"motion"`
	Fingers string   `json:"fingers,omitempty"`
	Command []string `json:"command"`
}
