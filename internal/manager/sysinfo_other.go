//go:build !linux

package manager

import "github.com/zxdong262/task-runner/pkg/api"

func readSystemInfo() api.SystemInfo {
	return api.SystemInfo{}
}
