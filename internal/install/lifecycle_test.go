package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Zigazou/DSM/internal/errors"
	"github.com/Zigazou/DSM/internal/proc"
	"github.com/Zigazou/DSM/internal/site"
)

func TestStartStop(t *testing.T) {
	m, www, _ := testManager(t)

	s, err := m.Install("alpha")
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	pidFile := s.PIDFile(site.WWW)
	for _, dir := range []string{
		filepath.Join(s.WWWDir(), "run"),
		s.LogDir(site.WWW),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	www.DaemonFunc = func(s site.Site) (proc.Daemon, error) {
		return proc.Daemon{
			Command: []string{"/bin/sh", "-c", "echo $$ > " + pidFile + "; exec sleep 30"},
			Dir:     s.Dir,
			PIDFile: pidFile,
			LogFile: s.ErrorLog(site.WWW),
		}, nil
	}

	if err := m.Start("alpha", site.WWW); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !proc.Running(pidFile) {
		t.Fatal("service should be running after Start")
	}

	// starting a running service is a no-op success
	if err := m.Start("alpha", site.WWW); err != nil {
		t.Errorf("double Start should succeed: %v", err)
	}

	if err := m.Stop("alpha", site.WWW); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if proc.Running(pidFile) {
		t.Error("service should be stopped after Stop")
	}
	if _, err := os.Stat(pidFile); !os.IsNotExist(err) {
		t.Error("PID file should be removed after Stop")
	}

	// stopping a stopped service is a no-op success
	if err := m.Stop("alpha", site.WWW); err != nil {
		t.Errorf("double Stop should succeed: %v", err)
	}
}

func TestStartUnknownSite(t *testing.T) {
	m, _, _ := testManager(t)

	if err := m.Start("ghost", site.WWW); !errors.Is(err, errors.ErrSiteNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if err := m.Stop("ghost", site.DB); !errors.Is(err, errors.ErrSiteNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
