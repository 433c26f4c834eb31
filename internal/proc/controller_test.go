package proc

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/Zigazou/DSM/internal/errors"
)

func TestWaitFor(t *testing.T) {
	t.Run("immediate success", func(t *testing.T) {
		start := time.Now()
		if !WaitFor(func() bool { return true }, 5*time.Second) {
			t.Error("expected success")
		}
		if time.Since(start) > 100*time.Millisecond {
			t.Error("immediate condition should not wait for the poll interval")
		}
	})

	t.Run("eventual success", func(t *testing.T) {
		calls := 0
		ok := WaitFor(func() bool {
			calls++
			return calls >= 3
		}, 5*time.Second)
		if !ok {
			t.Error("expected success")
		}
		if calls != 3 {
			t.Errorf("expected 3 evaluations, got %d", calls)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		if WaitFor(func() bool { return false }, 100*time.Millisecond) {
			t.Error("expected timeout")
		}
	})
}

func TestReadPIDFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, "valid.pid")
		if err := os.WriteFile(path, []byte("12345\n"), 0644); err != nil {
			t.Fatal(err)
		}
		pid, err := ReadPIDFile(path)
		if err != nil {
			t.Fatalf("ReadPIDFile failed: %v", err)
		}
		if pid != 12345 {
			t.Errorf("expected pid 12345, got %d", pid)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := ReadPIDFile(filepath.Join(dir, "nope.pid"))
		if !os.IsNotExist(err) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.pid")
		if err := os.WriteFile(path, []byte("not a pid"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadPIDFile(path); err == nil {
			t.Error("expected error for malformed pid file")
		}
	})
}

func TestAlive(t *testing.T) {
	if !Alive(os.Getpid()) {
		t.Error("current process should be alive")
	}
	if Alive(0) {
		t.Error("pid 0 should not be reported alive")
	}
	if Alive(-1) {
		t.Error("negative pid should not be reported alive")
	}
	// pid 1 always exists; unprivileged probing yields EPERM, which
	// still means the process is there.
	if !Alive(1) {
		t.Error("pid 1 should be reported alive")
	}
}

func TestStopKeepsPIDFileWithoutPermission(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("requires an unprivileged user")
	}

	pidFile := filepath.Join(t.TempDir(), "init.pid")
	if err := os.WriteFile(pidFile, []byte("1"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Stop(pidFile, time.Second); err == nil {
		t.Fatal("stopping a foreign process should fail, not be treated as stale")
	}
	if _, err := os.Stat(pidFile); err != nil {
		t.Errorf("pid file of a live foreign process must be kept: %v", err)
	}
}

func TestRunning(t *testing.T) {
	dir := t.TempDir()

	t.Run("no pid file", func(t *testing.T) {
		if Running(filepath.Join(dir, "absent.pid")) {
			t.Error("absent pid file should not be running")
		}
	})

	t.Run("live process", func(t *testing.T) {
		path := filepath.Join(dir, "live.pid")
		if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
			t.Fatal(err)
		}
		if !Running(path) {
			t.Error("pid file with live pid should be running")
		}
	})

	t.Run("stale pid file", func(t *testing.T) {
		// PID 1 exists but cannot be signalled by an unprivileged test;
		// use an implausibly large pid instead.
		path := filepath.Join(dir, "stale.pid")
		if err := os.WriteFile(path, []byte("4194304"), 0644); err != nil {
			t.Fatal(err)
		}
		if Running(path) {
			t.Error("stale pid file should not be running")
		}
	})
}

func TestDaemonStartStop(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "test.pid")
	logFile := filepath.Join(dir, "test.log")

	// A stand-in daemon that writes its own pid file, like apache and
	// mysqld do.
	d := Daemon{
		Command: []string{"/bin/sh", "-c", "echo $$ > " + pidFile + "; sleep 30"},
		Dir:     dir,
		PIDFile: pidFile,
		LogFile: logFile,
	}

	if err := d.Start(DefaultTimeout); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !Running(pidFile) {
		t.Fatal("daemon should be running after Start")
	}

	// Double start is a no-op success.
	pidBefore, _ := ReadPIDFile(pidFile)
	if err := d.Start(DefaultTimeout); err != nil {
		t.Fatalf("second Start failed: %v", err)
	}
	pidAfter, _ := ReadPIDFile(pidFile)
	if pidBefore != pidAfter {
		t.Error("second Start should not relaunch a running daemon")
	}

	if err := Stop(pidFile, DefaultTimeout); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if _, err := os.Stat(pidFile); !os.IsNotExist(err) {
		t.Error("pid file should be removed after Stop")
	}
}

func TestDaemonStartTimeout(t *testing.T) {
	dir := t.TempDir()
	pidFile := filepath.Join(dir, "never.pid")
	logFile := filepath.Join(dir, "never.log")

	// This daemon never writes the pid file the controller polls for.
	// It records its pid elsewhere so the test can reap it.
	orphanFile := filepath.Join(dir, "orphan.pid")
	t.Cleanup(func() {
		if pid, err := ReadPIDFile(orphanFile); err == nil {
			_ = syscall.Kill(pid, syscall.SIGKILL)
		}
	})
	d := Daemon{
		Command: []string{"/bin/sh", "-c", "echo $$ > " + orphanFile + "; exec sleep 30"},
		Dir:     dir,
		PIDFile: pidFile,
		LogFile: logFile,
	}

	err := d.Start(200 * time.Millisecond)
	if !errors.Is(err, errors.ErrStartTimeout) {
		t.Errorf("expected start timeout, got %v", err)
	}

	// The log file is kept for diagnosis.
	if _, statErr := os.Stat(logFile); statErr != nil {
		t.Errorf("log file should survive a failed start: %v", statErr)
	}
}

func TestStopAlreadyStopped(t *testing.T) {
	dir := t.TempDir()

	// Missing pid file: no-op success.
	if err := Stop(filepath.Join(dir, "absent.pid"), DefaultTimeout); err != nil {
		t.Errorf("Stop of absent pid file should succeed, got %v", err)
	}

	// Stale pid file: removed, success.
	stale := filepath.Join(dir, "stale.pid")
	if err := os.WriteFile(stale, []byte("4194304"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Stop(stale, DefaultTimeout); err != nil {
		t.Errorf("Stop of stale pid file should succeed, got %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale pid file should be removed")
	}
}
