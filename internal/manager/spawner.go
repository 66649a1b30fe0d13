package manager

import (
	"errors"
	"io"
	"os/exec"
	"sync"
)

// SpawnSpec describes one process launch.
type SpawnSpec struct {
	Argv     []string
	Dir      string
	Detached bool
}

// ExitResult is delivered on a Handle's Done channel once the process
// has exited and both output streams are drained.
type ExitResult struct {
	// Code is the process exit code, or -1 when it could not be
	// determined (see Err).
	Code int
	Err  error
}

// Handle is a live spawned process: its pid, its output streams as
// ordered chunk channels, and a one-shot exit notification. Done fires
// strictly after both stream channels are closed, so a consumer that
// drains the streams first sees every chunk before the exit result.
type Handle struct {
	PID    int
	Stdout <-chan []byte
	Stderr <-chan []byte
	Done   <-chan ExitResult

	cmd *exec.Cmd
}

// Spawn launches argv[0] with the rest as arguments, working directory
// set to spec.Dir, stdout/stderr captured. Detached processes get a new
// session (POSIX) or a detached process group (Windows) so they survive
// the caller's exit.
func Spawn(spec SpawnSpec) (*Handle, error) {
	if len(spec.Argv) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := exec.Command(spec.Argv[0], spec.Argv[1:]...)
	cmd.Dir = spec.Dir
	cmd.SysProcAttr = sysProcAttr(spec.Detached)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	outCh := make(chan []byte)
	errCh := make(chan []byte)
	done := make(chan ExitResult, 1)

	var pumps sync.WaitGroup
	pumps.Add(2)
	go pump(stdout, outCh, &pumps)
	go pump(stderr, errCh, &pumps)

	go func() {
		pumps.Wait()
		werr := cmd.Wait()
		done <- exitResult(werr)
		close(done)
	}()

	return &Handle{
		PID:    cmd.Process.Pid,
		Stdout: outCh,
		Stderr: errCh,
		Done:   done,
		cmd:    cmd,
	}, nil
}

// pump forwards a stream to ch as copied chunks, preserving arrival
// order, and closes ch at EOF.
func pump(r io.Reader, ch chan<- []byte, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(ch)

	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			ch <- chunk
		}
		if err != nil {
			return
		}
	}
}

func exitResult(err error) ExitResult {
	if err == nil {
		return ExitResult{Code: 0}
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ExitResult{Code: ee.ExitCode()}
	}
	return ExitResult{Code: -1, Err: err}
}
