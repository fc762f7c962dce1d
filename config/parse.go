package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var swipeMotions = map[string]bool{
	"left": true, "right": true, "up": true, "down": true,
	"left_up": true, "left_down": true, "right_up": true, "right_down": true,
}

var pinchMotions = map[string]bool{
	"in": true, "out": true, "clockwise": true, "anticlockwise": true,
}

func isExtendedMotion(gesture, motion string) bool {
	switch gesture {
	case GestureSwipe:
		return strings.Contains(motion, "_")
	case GesturePinch:
		return motion == "clockwise" || motion == "anticlockwise"
	}
	return false
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer f.Close()

	return Parse(f, filepath.Base(path))
}

// Parse builds a configuration table from line-oriented text. The first
// malformed line aborts with its line number, the line itself, and the
// cause; there is no partial-success mode.
func Parse(r io.Reader, name string) (*Config, error) {
	cfg := newConfig()

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := cfg.parseLine(line); err != nil {
			return nil, fmt.Errorf("%s:%d: %q: %w", name, lineno, line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) parseLine(line string) error {
	fields := strings.Fields(line)
	keyword, args := fields[0], fields[1:]

	switch keyword {
	case "gesture":
		return c.parseGesture(args)
	case "device":
		if len(args) == 0 {
			return fmt.Errorf("device requires a name")
		}
		c.Device = strings.Join(args, " ")
		return nil
	case "swipe_threshold":
		if len(args) != 1 {
			return fmt.Errorf("swipe_threshold requires exactly one value")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("swipe_threshold must be a non-negative integer")
		}
		c.SwipeThreshold = n
		return nil
	case "timeout":
		if len(args) != 1 {
			return fmt.Errorf("timeout requires exactly one value")
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil || v < 0 {
			return fmt.Errorf("timeout must be a non-negative number")
		}
		c.Timeout = v
		return nil
	default:
		return fmt.Errorf("unrecognised keyword %q", keyword)
	}
}

func (c *Config) parseGesture(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("gesture requires a type and a motion")
	}

	gesture := strings.ToLower(args[0])
	switch gesture {
	case GestureSwipe, GesturePinch, GestureHold:
	default:
		return fmt.Errorf("unsupported gesture type %q, must be one of %s",
			args[0], strings.Join(GestureTypes, ", "))
	}

	motion := args[1]
	rule := &Rule{Gesture: gesture, Motion: motion}
	if err := validateMotion(rule); err != nil {
		return err
	}

	rest := args[2:]
	if len(rest) > 0 && len(rest[0]) == 1 && rest[0][0] >= '0' && rest[0][0] <= '9' {
		rule.Fingers = rest[0]
		rest = rest[1:]
	}

	if len(rest) == 0 {
		return fmt.Errorf("gesture requires a command")
	}
	rule.Command = append([]string{expandPath(rest[0])}, rest[1:]...)

	if _, dup := c.rules[rule.key()]; dup {
		return fmt.Errorf("duplicate gesture %s %s %s", rule.Gesture, rule.Motion, rule.Fingers)
	}
	c.rules[rule.key()] = rule
	c.order = append(c.order, rule)
	if isExtendedMotion(gesture, motion) {
		c.extended[gesture] = true
	}
	return nil
}

func validateMotion(r *Rule) error {
	switch r.Gesture {
	case GestureSwipe:
		if !swipeMotions[r.Motion] {
			return fmt.Errorf("unsupported swipe motion %q", r.Motion)
		}
	case GesturePinch:
		if !pinchMotions[r.Motion] {
			return fmt.Errorf("unsupported pinch motion %q", r.Motion)
		}
	case GestureHold:
		if r.Motion == "on" {
			return nil
		}
		suffix, ok := strings.CutPrefix(r.Motion, "on+")
		if !ok {
			return fmt.Errorf("unsupported hold motion %q", r.Motion)
		}
		delay, err := strconv.ParseFloat(suffix, 64)
		if err != nil || delay < 0 {
			return fmt.Errorf("hold delay must be a non-negative number, got %q", suffix)
		}
		r.HoldDelay = delay
	}
	return nil
}

// expandPath applies `~` and environment-variable expansion to the command
// path. Arguments are never expanded; they are passed to the command
// verbatim.
func expandPath(path string) string {
	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	} else if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
