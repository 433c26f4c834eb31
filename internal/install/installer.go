// Package install orchestrates site provisioning and process lifecycle
// on top of the registry, the service drivers, and the process
// controller.
package install

import (
	"os"

	"github.com/Zigazou/DSM/internal/config"
	"github.com/Zigazou/DSM/internal/driver"
	"github.com/Zigazou/DSM/internal/errors"
	"github.com/Zigazou/DSM/internal/logger"
	"github.com/Zigazou/DSM/internal/site"
)

// Manager ties together the pieces needed to install, remove, start
// and stop sites. Drivers are injected so tests can substitute mocks.
type Manager struct {
	cfg *config.Config
	reg *site.Registry
	www driver.Driver
	db  driver.Database
}

// New creates a Manager over the configured base directory.
func New(cfg *config.Config, www driver.Driver, db driver.Database) *Manager {
	return &Manager{
		cfg: cfg,
		reg: site.NewRegistry(cfg.BaseDir),
		www: www,
		db:  db,
	}
}

// Registry exposes the site registry the manager operates on.
func (m *Manager) Registry() *site.Registry {
	return m.reg
}

// Install provisions a new site: allocates a port stride, creates the
// site directory, installs both service stacks, and bootstraps the
// database. The site directory creation is the atomicity boundary;
// any later failure rolls the whole directory back.
func (m *Manager) Install(id string) (site.Site, error) {
	if !site.ValidID(id) {
		return site.Site{}, errors.InvalidIdentifier(id)
	}

	if _, err := m.reg.Find(id); err == nil {
		return site.Site{}, errors.AlreadyExists(id)
	} else if !errors.Is(err, errors.ErrSiteNotFound) {
		return site.Site{}, err
	}

	if err := os.MkdirAll(m.cfg.BaseDir, 0755); err != nil {
		return site.Site{}, errors.Wrap(errors.ErrCodeInternal, "cannot create base directory", err)
	}

	s, err := m.claim(id)
	if err != nil {
		return site.Site{}, err
	}
	logger.Info("site %s: allocated ports %d-%d", id, s.Port, s.Port+m.cfg.PortStep-1)

	if err := m.provision(s); err != nil {
		logger.Warn("site %s: install failed, rolling back: %v", id, err)
		if rerr := os.RemoveAll(s.Dir); rerr != nil {
			logger.Error("site %s: rollback failed: %v", id, rerr)
		}
		return site.Site{}, err
	}

	return s, nil
}

// claim allocates a free port stride and creates the site directory.
// The exclusive Mkdir is what makes concurrent installs of the same
// identifier safe: the loser sees EEXIST and re-reads the registry.
func (m *Manager) claim(id string) (site.Site, error) {
	for {
		used, err := m.reg.UsedPorts()
		if err != nil {
			return site.Site{}, err
		}

		port, err := site.AllocatePort(used, m.cfg.PortMin, m.cfg.PortMax, m.cfg.PortStep)
		if err != nil {
			return site.Site{}, err
		}

		s, err := site.New(m.cfg.BaseDir, id, port)
		if err != nil {
			return site.Site{}, err
		}

		err = os.Mkdir(s.Dir, 0755)
		if err == nil {
			return s, nil
		}
		if !os.IsExist(err) {
			return site.Site{}, errors.Wrap(errors.ErrCodeInternal, "cannot create site directory", err)
		}
		// Only a site directory justifies re-allocation: the registry
		// will report its port on the next scan. Anything else (for
		// example a stray regular file with the site name) would keep
		// colliding on the same port forever.
		if info, serr := os.Stat(s.Dir); serr != nil || !info.IsDir() {
			return site.Site{}, errors.Wrap(errors.ErrCodeInternal,
				s.Dir+" is blocked by a non-site entry", err)
		}
		logger.Debug("site %s: directory collision on port %d, reallocating", id, port)
	}
}

// provision installs both service stacks, then bootstraps the database.
func (m *Manager) provision(s site.Site) error {
	if err := m.www.Install(s); err != nil {
		return err
	}
	if err := m.db.Install(s); err != nil {
		return err
	}
	return m.db.Bootstrap(s)
}
