// Package proc implements the readiness-polling process controller used
// to start and stop per-site daemons.
//
// The engine never holds a live handle on a daemon. A daemon is launched
// detached from the controlling session, and from then on the only
// reference to it is its PID file. Start and stop are therefore defined
// as bounded waits on observable conditions: the PID file appearing with
// a live process behind it, or the PID file (or process) going away.
package proc

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Zigazou/DSM/internal/errors"
	"github.com/Zigazou/DSM/internal/logger"
)

// Polling parameters. Conditions are checked immediately, then every
// PollInterval until DefaultTimeout elapses.
const (
	PollInterval   = 500 * time.Millisecond
	DefaultTimeout = 5 * time.Second
)

// Daemon describes a detached process managed through its PID file.
type Daemon struct {
	Command []string // argv, Command[0] is the binary
	Dir     string   // working directory (may be empty)
	PIDFile string   // written by the daemon on successful start
	LogFile string   // receives the daemon's stdout and stderr
}

// WaitFor polls cond until it returns true or the timeout elapses.
// cond is evaluated immediately, then on every poll interval.
func WaitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(PollInterval)
	}
}

// ReadPIDFile parses the process id recorded in a PID file.
func ReadPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, "malformed pid file "+path, err)
	}
	return pid, nil
}

// Alive reports whether a process with the given pid currently exists.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 probes existence without touching the process. EPERM
	// means the process exists but belongs to another user.
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

// Running reports whether the PID file exists and references a live
// process. A stale PID file alone is not evidence of a running daemon.
func Running(pidFile string) bool {
	pid, err := ReadPIDFile(pidFile)
	if err != nil {
		return false
	}
	return Alive(pid)
}

// Start launches the daemon detached and waits for its PID file.
//
// Starting an already-running daemon is a no-op success: the PID file is
// checked for a live process before launching. On launch, stdout and
// stderr go to the daemon's log file, which is left intact on failure
// for diagnosis. Returns ErrStartTimeout if the PID file does not appear
// within the timeout.
func (d Daemon) Start(timeout time.Duration) error {
	if Running(d.PIDFile) {
		logger.Debug("daemon already running (pid file %s)", d.PIDFile)
		return nil
	}

	logFile, err := os.OpenFile(d.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "cannot open log file", err)
	}
	defer logFile.Close()

	cmd := exec.Command(d.Command[0], d.Command[1:]...)
	cmd.Dir = d.Dir
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	// New session: the daemon survives the controller's exit.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "cannot launch "+d.Command[0], err)
	}
	// Fire and forget: the path-based PID file is the only reference kept.
	if err := cmd.Process.Release(); err != nil {
		logger.Warn("release of %s failed: %v", d.Command[0], err)
	}

	if !WaitFor(func() bool { return Running(d.PIDFile) }, timeout) {
		return errors.Wrap(errors.ErrCodeTimeout,
			"process start timed out, check "+d.LogFile, errors.ErrStartTimeout)
	}
	return nil
}

// Stop terminates the daemon recorded in pidFile and waits for it to go
// away.
//
// A missing PID file means the daemon is already stopped and is a no-op
// success. On success the PID file is removed if the daemon left it
// behind. On timeout the PID file is kept so a retry or manual
// intervention remains possible.
func Stop(pidFile string, timeout time.Duration) error {
	pid, err := ReadPIDFile(pidFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	process, err := os.FindProcess(pid)
	if err == nil {
		err = process.Signal(syscall.SIGTERM)
	}
	if err != nil {
		if errors.Is(err, syscall.EPERM) {
			// Live process owned by someone else: not ours to stop,
			// and its PID file must stay.
			return errors.Wrap(errors.ErrCodeInternal,
				"no permission to signal pid "+strconv.Itoa(pid), err)
		}
		// Process already gone, only the stale PID file remains.
		logger.Debug("pid %d already gone: %v", pid, err)
		_ = os.Remove(pidFile)
		return nil
	}

	gone := func() bool {
		if _, err := os.Stat(pidFile); os.IsNotExist(err) {
			return true
		}
		return !Alive(pid)
	}
	if !WaitFor(gone, timeout) {
		return errors.Wrap(errors.ErrCodeTimeout,
			"process stop timed out for pid "+strconv.Itoa(pid), errors.ErrStopTimeout)
	}

	// Some daemons do not clean up their own PID file.
	_ = os.Remove(pidFile)
	return nil
}
