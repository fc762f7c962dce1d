// Package workspace implements the grid navigation helper: it maps a
// direction to a new linear workspace index over a virtual 2-D grid and asks
// the desktop environment to switch to it. It runs as the `workspace`
// subcommand so gesture rules can use it as their action command.
package workspace

import (
	"fmt"
	"sort"
	"strings"
)

// step deltas in grid units: Row steps move by one whole column height
// (index ± cols), Col steps move by one index.
type delta struct {
	Row, Col int
}

var directions = map[string]delta{
	"up":         {Row: 1},
	"down":       {Row: -1},
	"left":       {Col: -1},
	"right":      {Col: 1},
	"left_up":    {Row: 1, Col: -1},
	"left_down":  {Row: -1, Col: -1},
	"right_up":   {Row: 1, Col: 1},
	"right_down": {Row: -1, Col: 1},
}

// Directions lists the canonical direction tokens, sorted.
func Directions() []string {
	out := make([]string, 0, len(directions))
	for d := range directions {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Step computes the target linear workspace index for one move over a grid
// of count workspaces laid out in cols columns. With wrap the index wraps
// modulo count; without it an out-of-range move saturates and the current
// index is returned unchanged.
func Step(current, count, cols int, direction string, wrap bool) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("no workspaces to navigate")
	}
	if cols <= 0 {
		cols = 1
	}
	d, ok := directions[direction]
	if !ok {
		return 0, fmt.Errorf("unknown direction %q, must be one of %s",
			direction, strings.Join(Directions(), ", "))
	}

	target := current + d.Row*cols + d.Col
	if wrap {
		return ((target % count) + count) % count, nil
	}
	if target < 0 || target >= count {
		return current, nil
	}
	return target, nil
}
