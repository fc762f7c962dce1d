//go:build unix

package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// InstanceLock is a per-user, process-wide mutual exclusion guard held for
// the lifetime of the process. The kernel drops the flock automatically when
// the process exits, so a crashed instance never leaves a stale lock behind.
type InstanceLock struct {
	file *os.File
}

func lockPath(name string) string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, name+".lock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d.lock", name, os.Getuid()))
}

// AcquireInstanceLock takes the single-instance lock for this user, failing
// immediately if another process already holds it.
func AcquireInstanceLock(name string) (*InstanceLock, error) {
	path := lockPath(name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("another instance is already running for this user (lock %s held)", path)
	}

	// leave our pid behind for humans poking at the runtime dir
	f.Truncate(0)
	fmt.Fprintf(f, "%d\n", os.Getpid())

	return &InstanceLock{file: f}, nil
}

// Release drops the lock. Safe to call on process shutdown paths; the lock
// is also released implicitly at exit.
func (l *InstanceLock) Release() {
	if l.file != nil {
		unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
		l.file.Close()
		l.file = nil
	}
}
