//go:build linux

package manager

import (
	linuxproc "github.com/c9s/goprocinfo/linux"

	"github.com/zxdong262/task-runner/pkg/api"
)

func readSystemInfo() api.SystemInfo {
	var info api.SystemInfo
	if mem, err := linuxproc.ReadMemInfo("/proc/meminfo"); err == nil {
		info.MemTotal = mem.MemTotal * 1024
		info.MemFree = mem.MemAvailable * 1024
	}
	if avg, err := linuxproc.ReadLoadAvg("/proc/loadavg"); err == nil {
		info.Load1 = avg.Last1Min
	}
	return info
}
