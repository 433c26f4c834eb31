package install

import (
	"github.com/Zigazou/DSM/internal/driver"
	"github.com/Zigazou/DSM/internal/proc"
	"github.com/Zigazou/DSM/internal/site"
)

// Start launches one service instance of a site and waits until its
// PID file references a live process. Starting an already-running
// service is a no-op success.
func (m *Manager) Start(id string, svc site.Service) error {
	s, err := m.reg.Find(id)
	if err != nil {
		return err
	}

	d, err := m.driverFor(svc).Daemon(s)
	if err != nil {
		return err
	}
	return d.Start(proc.DefaultTimeout)
}

// Stop terminates one service instance of a site and waits until its
// process is gone. Stopping a stopped service is a no-op success.
func (m *Manager) Stop(id string, svc site.Service) error {
	s, err := m.reg.Find(id)
	if err != nil {
		return err
	}
	return proc.Stop(s.PIDFile(svc), proc.DefaultTimeout)
}

func (m *Manager) driverFor(svc site.Service) driver.Driver {
	if svc == site.DB {
		return m.db
	}
	return m.www
}
