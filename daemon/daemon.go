package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/sevlyar/go-daemon"
)

// DaemonEnvVar is the environment variable that marks a daemon child process
const DaemonEnvVar = "GESTURECTL_DAEMON_CHILD"

// PidFilePath is where the daemonized engine records its pid for `stop`.
func PidFilePath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "gesturectl.pid")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("gesturectl-%d.pid", os.Getuid()))
}

// Daemonize detaches the process and returns the child process handle.
// If the returned process is nil, this is the child process.
// If the returned process is non-nil, this is the parent process.
// The child records its own pid via WritePid; see startCmd.
func Daemonize() (*os.Process, error) {
	ctx := &daemon.Context{
		PidFileName: "",
		PidFilePerm: 0,
		LogFileName: "",
		LogFilePerm: 0,
		WorkDir:     "/",
		Umask:       027,
		Args:        os.Args,
		Env:         append(os.Environ(), fmt.Sprintf("%s=1", DaemonEnvVar)),
	}

	child, err := ctx.Reborn()
	if err != nil {
		return nil, fmt.Errorf("failed to daemonize: %w", err)
	}

	return child, nil
}

// IsChild returns true if this is the daemon child process
func IsChild() bool {
	return os.Getenv(DaemonEnvVar) == "1"
}

// WritePid records the running daemon's pid for Stop.
func WritePid() error {
	return os.WriteFile(PidFilePath(), []byte(fmt.Sprintf("%d\n", os.Getpid())), 0644)
}

// RemovePid cleans the pidfile up on shutdown.
func RemovePid() {
	os.Remove(PidFilePath())
}

// Stop signals the daemonized engine recorded in the pidfile with SIGTERM.
func Stop() error {
	data, err := os.ReadFile(PidFilePath())
	if err != nil {
		return fmt.Errorf("gesturectl daemon is not running (no pidfile at %s)", PidFilePath())
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("invalid pidfile %s: %v", PidFilePath(), err)
	}

	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		os.Remove(PidFilePath())
		return fmt.Errorf("failed to signal pid %d: %v", pid, err)
	}

	return nil
}
