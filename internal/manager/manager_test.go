package manager

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript drops an executable shell script into dir and returns its
// path. The suite drives real child processes, so it needs a POSIX
// shell.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests use POSIX shell scripts")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func newTestManager(t *testing.T, mc clock.Clock) *Manager {
	t.Helper()
	m := New(Options{WorkDir: t.TempDir(), Clock: mc})
	t.Cleanup(m.Close)
	return m
}

func taskStatus(m *Manager, id string) (string, bool) {
	for _, s := range m.ListScripts().Scripts {
		if s.ID == id {
			return s.Status, true
		}
	}
	return "", false
}

func TestRunScriptTracked(t *testing.T) {
	m := newTestManager(t, nil)
	script := writeScript(t, t.TempDir(), "sleeper.sh", "sleep 30\n")

	result := m.RunScript(script, []string{"hello"}, RunOptions{})

	require.True(t, result.Success)
	assert.Equal(t, "tracked", result.Mode)
	assert.Equal(t, script, result.Script)
	assert.Equal(t, []string{"hello"}, result.Args)
	assert.NotZero(t, result.PID)
	assert.NotEmpty(t, result.ID)

	// The id is visible exactly once immediately after the call, still
	// running.
	var seen int
	for _, s := range m.ListScripts().Scripts {
		if s.ID == result.ID {
			seen++
			assert.Equal(t, "running", s.Status)
			assert.Equal(t, result.PID, s.PID)
		}
	}
	assert.Equal(t, 1, seen)
}

func TestRunScriptSpawnFailure(t *testing.T) {
	m := newTestManager(t, nil)

	result := m.RunScript(filepath.Join(t.TempDir(), "missing.sh"), nil, RunOptions{})

	require.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, m.ListScripts().Scripts)
}

func TestRunScriptOneTimeNotTracked(t *testing.T) {
	m := newTestManager(t, nil)
	script := writeScript(t, t.TempDir(), "quick.sh", "exit 0\n")

	result := m.RunScript(script, nil, RunOptions{OneTime: true})

	require.True(t, result.Success)
	assert.Equal(t, "oneTime", result.Mode)
	assert.NotEmpty(t, result.ID)
	assert.Empty(t, m.ListScripts().Scripts)

	// The returned id cannot be queried or stopped later.
	stop := m.StopScript(result.ID)
	require.False(t, stop.Success)
	assert.Equal(t, "Script not found", stop.Error)
}

func TestOutputCaptureAndExitCode(t *testing.T) {
	m := newTestManager(t, nil)
	script := writeScript(t, t.TempDir(), "noisy.sh", "echo out\necho err 1>&2\nexit 3\n")

	result := m.RunScript(script, nil, RunOptions{})
	require.True(t, result.Success)

	require.Eventually(t, func() bool {
		status, ok := taskStatus(m, result.ID)
		return ok && status == "completed"
	}, 5*time.Second, 10*time.Millisecond)

	detail, ok := m.TaskDetail(result.ID)
	require.True(t, ok)
	assert.Contains(t, detail.Stdout, "out")
	assert.Contains(t, detail.Stderr, "err")
	require.NotNil(t, detail.ExitCode)
	assert.Equal(t, 3, *detail.ExitCode)
	assert.NotNil(t, detail.EndTime)
}

func TestCompletedTaskEvictedAfterGracePeriod(t *testing.T) {
	mc := clock.NewMock()
	m := newTestManager(t, mc)
	script := writeScript(t, t.TempDir(), "echo.sh", "echo done\n")

	result := m.RunScript(script, nil, RunOptions{})
	require.True(t, result.Success)

	require.Eventually(t, func() bool {
		status, ok := taskStatus(m, result.ID)
		return ok && status == "completed"
	}, 5*time.Second, 10*time.Millisecond)

	// Survives until the 60s deadline, then disappears.
	mc.Add(59 * time.Second)
	_, ok := taskStatus(m, result.ID)
	assert.True(t, ok)

	mc.Add(2 * time.Second)
	_, ok = taskStatus(m, result.ID)
	assert.False(t, ok)
}

func TestStopScript(t *testing.T) {
	mc := clock.NewMock()
	m := newTestManager(t, mc)
	script := writeScript(t, t.TempDir(), "sleeper.sh", "sleep 30\n")

	result := m.RunScript(script, nil, RunOptions{})
	require.True(t, result.Success)

	stop := m.StopScript(result.ID)
	require.True(t, stop.Success)
	assert.Equal(t, result.ID, stop.ID)
	assert.Equal(t, result.PID, stop.PID)

	status, ok := taskStatus(m, result.ID)
	require.True(t, ok)
	assert.Equal(t, "stopped", status)

	// Second stop sees a terminal state, never crashes.
	again := m.StopScript(result.ID)
	require.False(t, again.Success)
	assert.Equal(t, "Script not running (status: stopped)", again.Error)

	// Stopped tasks evict after 5s.
	mc.Add(6 * time.Second)
	_, ok = taskStatus(m, result.ID)
	assert.False(t, ok)
}

func TestStopScriptNotFound(t *testing.T) {
	m := newTestManager(t, nil)

	stop := m.StopScript("no-such-id")

	require.False(t, stop.Success)
	assert.Equal(t, "Script not found", stop.Error)
}

func TestStopAfterCompletionIsRejected(t *testing.T) {
	m := newTestManager(t, clock.NewMock())
	script := writeScript(t, t.TempDir(), "echo.sh", "echo done\n")

	result := m.RunScript(script, nil, RunOptions{})
	require.True(t, result.Success)

	require.Eventually(t, func() bool {
		status, ok := taskStatus(m, result.ID)
		return ok && status == "completed"
	}, 5*time.Second, 10*time.Millisecond)

	stop := m.StopScript(result.ID)
	require.False(t, stop.Success)
	assert.Equal(t, "Script not running (status: completed)", stop.Error)

	// The completed state stands; stop must not rewind it.
	status, _ := taskStatus(m, result.ID)
	assert.Equal(t, "completed", status)
}

func TestExitAfterStopKeepsStoppedState(t *testing.T) {
	m := newTestManager(t, clock.NewMock())
	script := writeScript(t, t.TempDir(), "sleeper.sh", "sleep 30\n")

	result := m.RunScript(script, nil, RunOptions{})
	require.True(t, result.Success)
	require.True(t, m.StopScript(result.ID).Success)

	// SIGTERM makes the process exit shortly after; the exit callback
	// must not flip the task to completed.
	time.Sleep(200 * time.Millisecond)
	status, ok := taskStatus(m, result.ID)
	require.True(t, ok)
	assert.Equal(t, "stopped", status)
}

func TestGetStatusCounts(t *testing.T) {
	m := newTestManager(t, clock.NewMock())
	dir := t.TempDir()
	quick := writeScript(t, dir, "quick.sh", "echo hi\n")
	sleeper := writeScript(t, dir, "sleeper.sh", "sleep 30\n")

	done := m.RunScript(quick, nil, RunOptions{})
	running := m.RunScript(sleeper, nil, RunOptions{})
	stopped := m.RunScript(sleeper, nil, RunOptions{})
	require.True(t, done.Success)
	require.True(t, running.Success)
	require.True(t, stopped.Success)

	require.Eventually(t, func() bool {
		status, ok := taskStatus(m, done.ID)
		return ok && status == "completed"
	}, 5*time.Second, 10*time.Millisecond)
	require.True(t, m.StopScript(stopped.ID).Success)

	status := m.GetStatus()
	require.True(t, status.Success)
	assert.Equal(t, 1, status.Tasks.Running)
	assert.Equal(t, 1, status.Tasks.Completed)
	assert.Equal(t, 1, status.Tasks.Stopped)
	assert.Equal(t, 3, status.Tasks.Total)
	assert.Equal(t, status.Tasks.Total,
		status.Tasks.Running+status.Tasks.Completed+status.Tasks.Stopped)

	assert.Equal(t, runtime.GOOS, status.Platform)
	assert.Equal(t, os.Getpid(), status.PID)
	assert.NotZero(t, status.Memory.Alloc)
}

func TestListScriptsSnapshotIsACopy(t *testing.T) {
	m := newTestManager(t, nil)
	script := writeScript(t, t.TempDir(), "sleeper.sh", "sleep 30\n")

	result := m.RunScript(script, []string{"a", "b"}, RunOptions{})
	require.True(t, result.Success)

	list := m.ListScripts()
	require.Len(t, list.Scripts, 1)
	list.Scripts[0].Args[0] = "mutated"
	list.Scripts[0].Status = "bogus"

	fresh := m.ListScripts()
	assert.Equal(t, []string{"a", "b"}, fresh.Scripts[0].Args)
	assert.Equal(t, "running", fresh.Scripts[0].Status)
}
