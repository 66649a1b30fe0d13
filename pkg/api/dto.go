package api

import "time"

// RunResult is returned by runScript. Success distinguishes a started
// process from a spawn failure; the call itself never errors.
type RunResult struct {
	Success   bool      `json:"success"`
	ID        string    `json:"id,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	PID       int       `json:"pid,omitempty"`
	Script    string    `json:"scriptPath,omitempty"`
	Args      []string  `json:"args,omitempty"`
	StartTime time.Time `json:"startTime,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// StopResult is returned by stopScript.
type StopResult struct {
	Success  bool      `json:"success"`
	ID       string    `json:"id,omitempty"`
	PID      int       `json:"pid,omitempty"`
	StopTime time.Time `json:"stopTime,omitempty"`
	// Duration is milliseconds from start to stop.
	Duration int64  `json:"duration,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ScriptInfo is one tracked task as exposed by listScripts. Output
// buffers are deliberately not part of the listing.
type ScriptInfo struct {
	ID         string     `json:"id"`
	Script     string     `json:"scriptPath"`
	Args       []string   `json:"args"`
	PID        int        `json:"pid"`
	Status     string     `json:"status"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Duration   int64      `json:"duration,omitempty"`
	WorkingDir string     `json:"workingDir"`
}

// ListResult is returned by listScripts.
type ListResult struct {
	Success bool         `json:"success"`
	Scripts []ScriptInfo `json:"scripts"`
}

// TaskDetail extends ScriptInfo with the captured output of a single task.
type TaskDetail struct {
	Success bool `json:"success"`
	ScriptInfo
	ExitCode *int   `json:"exitCode,omitempty"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// TaskCounts breaks the task table down by status.
type TaskCounts struct {
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Stopped   int `json:"stopped"`
	Total     int `json:"total"`
}

// MemoryUsage reports process-level memory figures.
type MemoryUsage struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	Goroutines int    `json:"goroutines"`
}

// SystemInfo reports host-level figures; zero on platforms where they
// cannot be read.
type SystemInfo struct {
	MemTotal uint64  `json:"memTotal"`
	MemFree  uint64  `json:"memFree"`
	Load1    float64 `json:"load1"`
}

// StatusResult is returned by getStatus.
type StatusResult struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	// Uptime is seconds since the manager was created.
	Uptime    float64     `json:"uptime"`
	Hostname  string      `json:"hostname"`
	Platform  string      `json:"platform"`
	Arch      string      `json:"arch"`
	GoVersion string      `json:"goVersion"`
	PID       int         `json:"pid"`
	Memory    MemoryUsage `json:"memory"`
	System    SystemInfo  `json:"system"`
	Tasks     TaskCounts  `json:"tasks"`
}
