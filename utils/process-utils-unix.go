//go:build unix

package utils

import (
	"os/exec"
	"syscall"
)

// ConfigureDetachedProcAttr puts the command in its own process group so a
// fire-and-forget action keeps running when gesturectl itself is stopped,
// and never delivers its signals back to us.
func ConfigureDetachedProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
}
