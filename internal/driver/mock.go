package driver

import (
	"github.com/Zigazou/DSM/internal/proc"
	"github.com/Zigazou/DSM/internal/site"
)

// MockDriver is a mock implementation of Database for testing the
// installer without real daemons. It satisfies Driver for both service
// kinds depending on ServiceKind.
type MockDriver struct {
	DriverName  string
	ServiceKind site.Service

	InstallFunc   func(s site.Site) error
	BootstrapFunc func(s site.Site) error
	DaemonFunc    func(s site.Site) (proc.Daemon, error)

	InstallCalls   []site.Site
	BootstrapCalls []site.Site
}

// Name returns the mock driver name.
func (m *MockDriver) Name() string {
	if m.DriverName == "" {
		return "mock"
	}
	return m.DriverName
}

// Service returns the configured service kind.
func (m *MockDriver) Service() site.Service {
	return m.ServiceKind
}

// Install records the call and delegates to InstallFunc if set.
func (m *MockDriver) Install(s site.Site) error {
	m.InstallCalls = append(m.InstallCalls, s)
	if m.InstallFunc != nil {
		return m.InstallFunc(s)
	}
	return nil
}

// Bootstrap records the call and delegates to BootstrapFunc if set.
func (m *MockDriver) Bootstrap(s site.Site) error {
	m.BootstrapCalls = append(m.BootstrapCalls, s)
	if m.BootstrapFunc != nil {
		return m.BootstrapFunc(s)
	}
	return nil
}

// Daemon delegates to DaemonFunc if set.
func (m *MockDriver) Daemon(s site.Site) (proc.Daemon, error) {
	if m.DaemonFunc != nil {
		return m.DaemonFunc(s)
	}
	return proc.Daemon{
		Command: []string{"/bin/true"},
		PIDFile: s.PIDFile(m.ServiceKind),
		LogFile: s.ErrorLog(m.ServiceKind),
	}, nil
}
