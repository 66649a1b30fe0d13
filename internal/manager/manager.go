// Package manager owns the process-tracking core: it spawns child
// processes, records their lifecycle in an in-memory task table, and
// evicts terminal entries after a grace period.
package manager

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zxdong262/task-runner/pkg/api"
)

const (
	evictCompletedAfter = 60 * time.Second
	evictStoppedAfter   = 5 * time.Second
)

// Manager owns the task table. It is safe for concurrent use; every
// mutation happens under one lock so state transitions are atomic with
// respect to each other.
type Manager struct {
	mu    sync.Mutex
	tasks map[string]*Task

	registry *Registry
	clock    clock.Clock
	log      *zap.Logger
	workDir  string
	started  time.Time
}

// Options configures a Manager. Zero values fall back to the process
// working directory, a no-op logger and the real clock.
type Options struct {
	WorkDir string
	Logger  *zap.Logger
	Clock   clock.Clock
}

// RunOptions selects the execution mode for one invocation.
type RunOptions struct {
	OneTime bool
}

func New(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.WorkDir == "" {
		opts.WorkDir, _ = os.Getwd()
	}
	return &Manager{
		tasks:    make(map[string]*Task),
		registry: NewRegistry(),
		clock:    opts.Clock,
		log:      opts.Logger,
		workDir:  opts.WorkDir,
		started:  opts.Clock.Now(),
	}
}

// LaunchRegistry exposes the extension dispatch table so callers can
// register additional script kinds.
func (m *Manager) LaunchRegistry() *Registry {
	return m.registry
}

// RunScript launches a script and, in tracked mode, records it in the
// task table. It never returns an error: spawn failures come back as a
// result with Success=false.
func (m *Manager) RunScript(script string, args []string, opts RunOptions) api.RunResult {
	id := uuid.NewString()
	mode := ModeTracked
	if opts.OneTime {
		mode = ModeOneTime
	}

	argv := m.registry.Resolve(script, args)
	h, err := Spawn(SpawnSpec{Argv: argv, Dir: m.workDir, Detached: opts.OneTime})
	if err != nil {
		m.log.Warn("spawn failed",
			zap.String("script", script),
			zap.Strings("args", args),
			zap.Error(err))
		return api.RunResult{Success: false, Error: err.Error()}
	}

	start := m.clock.Now()
	argsCopy := make([]string, len(args))
	copy(argsCopy, args)

	m.log.Info("script started",
		zap.String("id", id),
		zap.String("script", script),
		zap.String("mode", string(mode)),
		zap.Int("pid", h.PID))

	if opts.OneTime {
		// Fire and forget: the table never sees this task. Completion
		// is only observable through the log.
		go m.reapDetached(id, script, h)
	} else {
		t := &Task{
			ID:         id,
			Script:     script,
			Args:       argsCopy,
			PID:        h.PID,
			Mode:       mode,
			Status:     StatusRunning,
			StartTime:  start,
			WorkingDir: m.workDir,
			handle:     h,
		}
		m.mu.Lock()
		m.tasks[id] = t
		m.mu.Unlock()

		go m.collect(id, h)
	}

	return api.RunResult{
		Success:   true,
		ID:        id,
		Mode:      string(mode),
		PID:       h.PID,
		Script:    script,
		Args:      argsCopy,
		StartTime: start,
	}
}

// StopScript sends a termination signal to a running tracked task and
// marks it stopped. The transition is recorded even if signal delivery
// fails, since the process may already have exited on its own.
func (m *Manager) StopScript(id string) api.StopResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return api.StopResult{Success: false, Error: "Script not found"}
	}
	if t.Status != StatusRunning {
		return api.StopResult{
			Success: false,
			Error:   fmt.Sprintf("Script not running (status: %s)", t.Status),
		}
	}

	if err := t.handle.Terminate(); err != nil {
		m.log.Warn("terminate failed",
			zap.String("id", id),
			zap.Int("pid", t.PID),
			zap.Error(err))
	}

	now := m.clock.Now()
	t.Status = StatusStopped
	t.EndTime = &now
	m.scheduleEvictionLocked(t, evictStoppedAfter)

	m.log.Info("script stopped",
		zap.String("id", id),
		zap.Int("pid", t.PID),
		zap.Int64("durationMs", t.duration(now)))

	return api.StopResult{
		Success:  true,
		ID:       id,
		PID:      t.PID,
		StopTime: now,
		Duration: t.duration(now),
	}
}

// ListScripts returns a snapshot of the task table. Order is
// unspecified.
func (m *Manager) ListScripts() api.ListResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	scripts := make([]api.ScriptInfo, 0, len(m.tasks))
	for _, t := range m.tasks {
		scripts = append(scripts, t.info(now))
	}
	return api.ListResult{Success: true, Scripts: scripts}
}

// TaskDetail returns one task including its captured output. The second
// return value is false when the id is unknown or already evicted.
func (m *Manager) TaskDetail(id string) (api.TaskDetail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return api.TaskDetail{}, false
	}

	var exitCode *int
	if t.ExitCode != nil {
		c := *t.ExitCode
		exitCode = &c
	}
	return api.TaskDetail{
		Success:    true,
		ScriptInfo: t.info(m.clock.Now()),
		ExitCode:   exitCode,
		Stdout:     joinChunks(t.Stdout),
		Stderr:     joinChunks(t.Stderr),
	}, true
}

// GetStatus reports server-level figures plus task counts by status.
// Pure read.
func (m *Manager) GetStatus() api.StatusResult {
	m.mu.Lock()
	counts := api.TaskCounts{Total: len(m.tasks)}
	for _, t := range m.tasks {
		switch t.Status {
		case StatusRunning:
			counts.Running++
		case StatusCompleted:
			counts.Completed++
		case StatusStopped:
			counts.Stopped++
		}
	}
	m.mu.Unlock()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	hostname, _ := os.Hostname()
	now := m.clock.Now()

	return api.StatusResult{
		Success:   true,
		Timestamp: now,
		Uptime:    now.Sub(m.started).Seconds(),
		Hostname:  hostname,
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
		GoVersion: runtime.Version(),
		PID:       os.Getpid(),
		Memory: api.MemoryUsage{
			Alloc:      mem.Alloc,
			TotalAlloc: mem.TotalAlloc,
			Sys:        mem.Sys,
			Goroutines: runtime.NumGoroutine(),
		},
		System: readSystemInfo(),
		Tasks:  counts,
	}
}

// Close terminates running tracked tasks and cancels pending eviction
// timers. Detached oneTime processes are left alone.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tasks {
		if t.Status == StatusRunning {
			if err := t.handle.Terminate(); err != nil {
				m.log.Warn("terminate on close failed", zap.String("id", t.ID), zap.Error(err))
			}
		}
		if t.eviction != nil {
			t.eviction.Stop()
		}
	}
}

// collect consumes a tracked task's output streams, then applies the
// exit transition. The ordering guarantee comes from Handle: Done only
// fires after both streams are drained, so every chunk is recorded
// before the task can turn completed.
func (m *Manager) collect(id string, h *Handle) {
	var streams sync.WaitGroup
	streams.Add(2)
	go func() {
		defer streams.Done()
		for chunk := range h.Stdout {
			m.appendOutput(id, chunk, false)
		}
	}()
	go func() {
		defer streams.Done()
		for chunk := range h.Stderr {
			m.appendOutput(id, chunk, true)
		}
	}()
	streams.Wait()

	m.onExit(id, <-h.Done)
}

func (m *Manager) appendOutput(id string, chunk []byte, isStderr bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// A stopped task can be evicted while its process still writes;
	// late chunks are dropped.
	t, ok := m.tasks[id]
	if !ok {
		return
	}
	if isStderr {
		t.Stderr = append(t.Stderr, chunk)
	} else {
		t.Stdout = append(t.Stdout, chunk)
	}
}

func (m *Manager) onExit(id string, res ExitResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return
	}
	// A stop that won the race keeps its terminal state.
	if !canTransition(t.Status, StatusCompleted) {
		return
	}

	now := m.clock.Now()
	t.Status = StatusCompleted
	t.EndTime = &now
	code := res.Code
	t.ExitCode = &code
	m.scheduleEvictionLocked(t, evictCompletedAfter)

	m.log.Info("script completed",
		zap.String("id", id),
		zap.Int("pid", t.PID),
		zap.Int("exitCode", res.Code),
		zap.Int64("durationMs", t.duration(now)),
		zap.Error(res.Err))
}

// reapDetached waits on a oneTime process purely for diagnostics; its
// outcome is never surfaced to the caller.
func (m *Manager) reapDetached(id, script string, h *Handle) {
	var stdoutBytes, stderrBytes int
	var streams sync.WaitGroup
	streams.Add(2)
	go func() {
		defer streams.Done()
		for chunk := range h.Stdout {
			stdoutBytes += len(chunk)
		}
	}()
	go func() {
		defer streams.Done()
		for chunk := range h.Stderr {
			stderrBytes += len(chunk)
		}
	}()
	streams.Wait()

	res := <-h.Done
	m.log.Info("one-time script finished",
		zap.String("id", id),
		zap.String("script", script),
		zap.Int("exitCode", res.Code),
		zap.Int("stdoutBytes", stdoutBytes),
		zap.Int("stderrBytes", stderrBytes),
		zap.Error(res.Err))
}

// scheduleEvictionLocked arms the delayed removal of a terminal task.
// Caller holds the lock.
func (m *Manager) scheduleEvictionLocked(t *Task, after time.Duration) {
	if t.eviction != nil {
		t.eviction.Stop()
	}
	id := t.ID
	t.eviction = m.clock.AfterFunc(after, func() {
		m.mu.Lock()
		delete(m.tasks, id)
		m.mu.Unlock()
		m.log.Debug("task evicted", zap.String("id", id))
	})
}

func joinChunks(chunks [][]byte) string {
	var n int
	for _, c := range chunks {
		n += len(c)
	}
	buf := make([]byte, 0, n)
	for _, c := range chunks {
		buf = append(buf, c...)
	}
	return string(buf)
}
