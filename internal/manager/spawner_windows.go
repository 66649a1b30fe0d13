//go:build windows

package manager

import (
	"os/exec"
	"strconv"
	"syscall"
)

const detachedProcess = 0x00000008

func sysProcAttr(detached bool) *syscall.SysProcAttr {
	flags := uint32(syscall.CREATE_NEW_PROCESS_GROUP)
	if detached {
		flags |= detachedProcess
	}
	return &syscall.SysProcAttr{CreationFlags: flags}
}

// Terminate kills the whole process tree. A process that is already
// gone counts as terminated.
func (h *Handle) Terminate() error {
	if h.cmd.ProcessState != nil {
		return nil
	}
	return exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(h.PID)).Run()
}
