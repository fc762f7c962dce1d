package workspace

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/swipetools/gesturectl/utils"
)

// QueryDesktops asks the window manager for the workspace list and returns
// (total count, current index). Format of `wmctrl -d` output: one line per
// desktop, the current one marked with `*` in the second column.
func QueryDesktops() (int, int, error) {
	out, err := exec.Command("wmctrl", "-d").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query workspaces (is wmctrl installed?): %w", err)
	}
	return parseDesktops(string(out))
}

func parseDesktops(out string) (count, current int, err error) {
	current = -1
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if fields[1] == "*" {
			current = count
		}
		count++
	}
	if count == 0 || current < 0 {
		return 0, 0, fmt.Errorf("could not determine current workspace")
	}
	return count, current, nil
}

// Switch issues the switch-to-workspace request to the desktop environment.
func Switch(index int) error {
	if err := exec.Command("wmctrl", "-s", fmt.Sprint(index)).Run(); err != nil {
		return fmt.Errorf("failed to switch workspace: %w", err)
	}
	return nil
}

// Navigate performs one full move: query, step, switch. A saturated move
// (target == current) issues no switch request.
func Navigate(direction string, cols int, wrap bool) error {
	count, current, err := QueryDesktops()
	if err != nil {
		return err
	}

	target, err := Step(current, count, cols, direction, wrap)
	if err != nil {
		return err
	}
	if target == current {
		utils.Verbose("workspace %s: staying on %d", direction, current)
		return nil
	}

	utils.Verbose("workspace %s: %d -> %d (of %d)", direction, current, target, count)
	return Switch(target)
}
