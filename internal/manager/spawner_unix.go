//go:build !windows

package manager

import (
	"errors"
	"syscall"
)

// Tracked children become their own process group leader so a stop can
// signal the whole group; detached children get a new session and
// survive the server's exit.
func sysProcAttr(detached bool) *syscall.SysProcAttr {
	if detached {
		return &syscall.SysProcAttr{Setsid: true}
	}
	return &syscall.SysProcAttr{Setpgid: true}
}

// Terminate requests cooperative shutdown of the process group. A
// process that is already gone counts as terminated.
func (h *Handle) Terminate() error {
	err := syscall.Kill(-h.PID, syscall.SIGTERM)
	if err == nil || errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
