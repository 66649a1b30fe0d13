package manager

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/zxdong262/task-runner/pkg/api"
)

// Task is one tracked invocation. All fields are owned by the Manager
// and only touched under its lock; readers get copies.
type Task struct {
	ID         string
	Script     string
	Args       []string
	PID        int
	Mode       Mode
	Status     Status
	StartTime  time.Time
	EndTime    *time.Time
	ExitCode   *int
	WorkingDir string
	Stdout     [][]byte
	Stderr     [][]byte

	handle   *Handle
	eviction *clock.Timer
}

// duration returns elapsed milliseconds: start to end for terminal
// tasks, start to now for running ones.
func (t *Task) duration(now time.Time) int64 {
	end := now
	if t.EndTime != nil {
		end = *t.EndTime
	}
	return end.Sub(t.StartTime).Milliseconds()
}

// info reduces the task to its externally visible fields. Output
// buffers stay private.
func (t *Task) info(now time.Time) api.ScriptInfo {
	args := make([]string, len(t.Args))
	copy(args, t.Args)

	var end *time.Time
	if t.EndTime != nil {
		e := *t.EndTime
		end = &e
	}

	return api.ScriptInfo{
		ID:         t.ID,
		Script:     t.Script,
		Args:       args,
		PID:        t.PID,
		Status:     string(t.Status),
		StartTime:  t.StartTime,
		EndTime:    end,
		Duration:   t.duration(now),
		WorkingDir: t.WorkingDir,
	}
}
