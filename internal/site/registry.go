package site

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/Zigazou/DSM/internal/errors"
	"github.com/Zigazou/DSM/internal/logger"
	"github.com/Zigazou/DSM/internal/proc"
)

// Registry enumerates sites from the base directory. Every call reads
// the directory listing fresh; nothing is cached, so concurrent installs
// and removals are always observed.
type Registry struct {
	BaseDir string
}

// NewRegistry creates a registry over baseDir.
func NewRegistry(baseDir string) *Registry {
	return &Registry{BaseDir: baseDir}
}

// List returns all sites found under the base directory, sorted by
// identifier. Entries that do not follow the naming convention are
// skipped, not reported as errors.
func (r *Registry) List() ([]Site, error) {
	entries, err := os.ReadDir(r.BaseDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "cannot read "+r.BaseDir, err)
	}

	var sites []Site
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id, port, ok := ParseDirName(entry.Name())
		if !ok {
			continue
		}
		sites = append(sites, Site{
			ID:   id,
			Port: port,
			Dir:  filepath.Join(r.BaseDir, entry.Name()),
		})
	}

	sort.Slice(sites, func(i, j int) bool { return sites[i].ID < sites[j].ID })
	return sites, nil
}

// Find returns the site with the given identifier.
func (r *Registry) Find(id string) (Site, error) {
	if !ValidID(id) {
		return Site{}, errors.InvalidIdentifier(id)
	}

	sites, err := r.List()
	if err != nil {
		return Site{}, err
	}
	for _, s := range sites {
		if s.ID == id {
			return s, nil
		}
	}
	return Site{}, errors.NotFound(id)
}

// UsedPorts returns the base ports of all existing sites.
func (r *Registry) UsedPorts() ([]int, error) {
	sites, err := r.List()
	if err != nil {
		return nil, err
	}
	ports := make([]int, 0, len(sites))
	for _, s := range sites {
		ports = append(ports, s.Port)
	}
	return ports, nil
}

// State describes a site together with the running state of its two
// service instances.
type State struct {
	Site
	WWWRunning bool `json:"www_running"`
	DBRunning  bool `json:"db_running"`
}

// States returns all sites with their service states. A service is
// running iff its PID file exists and the recorded process is alive.
func (r *Registry) States() ([]State, error) {
	sites, err := r.List()
	if err != nil {
		return nil, err
	}

	states := make([]State, 0, len(sites))
	for _, s := range sites {
		state := State{
			Site:       s,
			WWWRunning: proc.Running(s.PIDFile(WWW)),
			DBRunning:  proc.Running(s.PIDFile(DB)),
		}
		logger.Debug("site %s: www=%v db=%v", s.ID, state.WWWRunning, state.DBRunning)
		states = append(states, state)
	}
	return states, nil
}
