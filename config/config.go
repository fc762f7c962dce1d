package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/swipetools/gesturectl/types"
)

// Supported gesture types, in listing order.
const (
	GestureSwipe = "swipe"
	GesturePinch = "pinch"
	GestureHold  = "hold"
)

var GestureTypes = []string{GestureSwipe, GesturePinch, GestureHold}

// DefaultTimeout is the swipe/pinch begin→end span above which a gesture is
// considered stuck and its action suppressed. Overridden by the `timeout`
// setting; 0 disables the check.
const DefaultTimeout = 1.5

// Key identifies one gesture rule. Fingers is the raw finger-count token
// ("" = any finger count).
type Key struct {
	Gesture string
	Motion  string
	Fingers string
}

// Rule is one configured gesture→command mapping. Command is stored as an
// argv with `~` and environment expansion already applied to the program
// path; it is executed without shell interpretation.
type Rule struct {
	Gesture string
	Motion  string
	Fingers string
	Command []string

	// HoldDelay is the parsed `+<seconds>` suffix for hold rules (0 for
	// plain "on"); unused for swipe and pinch.
	HoldDelay float64
}

func (r *Rule) key() Key {
	return Key{Gesture: r.Gesture, Motion: r.Motion, Fingers: r.Fingers}
}

// Config is the parsed configuration table. Built once at startup and
// read-only afterwards.
type Config struct {
	rules map[Key]*Rule
	order []*Rule // configured order, preserved for listing mode

	// extended motions (swipe obliques, pinch rotations) only take part in
	// classification when at least one is configured for that gesture type
	extended map[string]bool

	Device         string  // touchpad name override; "" or "all" = unrestricted
	SwipeThreshold int     // minimum swipe distance, 0 = disabled
	Timeout        float64 // swipe/pinch timeout in seconds, 0 = disabled
}

func newConfig() *Config {
	return &Config{
		rules:    make(map[Key]*Rule),
		extended: make(map[string]bool),
		Timeout:  DefaultTimeout,
	}
}

// Lookup resolves a classified motion to a rule. An entry pinned to the
// exact finger count wins over a wildcard entry for the same motion.
func (c *Config) Lookup(gesture, motion, fingers string) *Rule {
	if fingers != "" {
		if r, ok := c.rules[Key{Gesture: gesture, Motion: motion, Fingers: fingers}]; ok {
			return r
		}
	}
	return c.rules[Key{Gesture: gesture, Motion: motion}]
}

// Extended reports whether any extended motion is configured for the given
// gesture type.
func (c *Config) Extended(gesture string) bool {
	return c.extended[gesture]
}

// Rules returns all rules for one gesture type in configured order.
func (c *Config) Rules(gesture string) []*Rule {
	var out []*Rule
	for _, r := range c.order {
		if r.Gesture == gesture {
			out = append(out, r)
		}
	}
	return out
}

// ListRules returns the full rule set grouped by gesture type, each group in
// configured order, as listing-mode DTOs.
func (c *Config) ListRules() []types.ConfigRule {
	var out []types.ConfigRule
	for _, gesture := range GestureTypes {
		for _, r := range c.Rules(gesture) {
			out = append(out, types.ConfigRule{
				Gesture: r.Gesture,
				Motion:  r.Motion,
				Fingers: r.Fingers,
				Command: r.Command,
			})
		}
	}
	return out
}

// Format re-serializes the table in configuration-file syntax, gestures
// grouped by type in configured order, then the global settings.
func (c *Config) Format() string {
	var b strings.Builder
	for _, gesture := range GestureTypes {
		for _, r := range c.Rules(gesture) {
			b.WriteString("gesture " + r.Gesture + " " + r.Motion)
			if r.Fingers != "" {
				b.WriteString(" " + r.Fingers)
			}
			b.WriteString(" " + strings.Join(r.Command, " ") + "\n")
		}
	}
	device := c.Device
	if device == "" {
		device = "all"
	}
	b.WriteString(fmt.Sprintf("device %s\n", device))
	b.WriteString(fmt.Sprintf("swipe_threshold %d\n", c.SwipeThreshold))
	b.WriteString(fmt.Sprintf("timeout %g\n", c.Timeout))
	return b.String()
}

// DefaultPaths is the configuration file search order used when --config is
// not given.
func DefaultPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "gesturectl.conf"))
	}
	return append(paths, "/etc/gesturectl.conf")
}

// Find returns the first existing configuration file from the default search
// path.
func Find() (string, error) {
	paths := DefaultPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no configuration file found (searched %s)", strings.Join(paths, ", "))
}
