package device

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Source is the running event-source subprocess. Reading Stream yields the
// line-oriented gesture events; the stream ending means the source died and
// the caller exits — there is no reconnect.
type Source struct {
	cmd    *exec.Cmd
	Stream io.ReadCloser
}

// OpenSource spawns `libinput debug-events`, restricted to one device node
// when touchpad is non-nil. stdbuf forces line buffering so events arrive as
// they happen, not in 4k blocks.
func OpenSource(ctx context.Context, touchpad *Touchpad) (*Source, error) {
	args := []string{"debug-events"}
	if touchpad != nil {
		args = append(args, "--device", touchpad.Kernel)
	}

	var cmd *exec.Cmd
	if _, err := exec.LookPath("stdbuf"); err == nil {
		cmd = exec.CommandContext(ctx, "stdbuf", append([]string{"-oL", "--", "libinput"}, args...)...)
	} else {
		cmd = exec.CommandContext(ctx, "libinput", args...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open event stream: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start libinput debug-events: %w", err)
	}

	return &Source{cmd: cmd, Stream: stdout}, nil
}

// Close tears the subprocess down and reaps it.
func (s *Source) Close() {
	s.Stream.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
}
