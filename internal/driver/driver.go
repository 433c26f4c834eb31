// Package driver implements the per-daemon service drivers. A driver
// knows how to lay down one service instance of a site: its directory
// subtree, rendered configuration, control scripts, and the daemon
// command the process controller launches.
package driver

import (
	"fmt"
	"os"
	"os/user"

	"github.com/Zigazou/DSM/internal/config"
	"github.com/Zigazou/DSM/internal/executor"
	"github.com/Zigazou/DSM/internal/proc"
	"github.com/Zigazou/DSM/internal/site"
)

// Driver is the interface every service driver implements.
type Driver interface {
	// Name returns the driver name (apache2, mysql, pgsql)
	Name() string

	// Service returns which half of a site this driver provides
	Service() site.Service

	// Install creates the service subtree and renders its artifacts
	Install(s site.Site) error

	// Daemon describes the detached process for the controller
	Daemon(s site.Site) (proc.Daemon, error)
}

// Database is implemented by database drivers, which additionally
// bootstrap their data directory and default schema at install time.
type Database interface {
	Driver

	// Bootstrap initializes the data directory and default schema.
	// It must leave the database stopped.
	Bootstrap(s site.Site) error
}

// Env carries the shared dependencies of all drivers.
type Env struct {
	Exec     executor.CommandExecutor
	Binaries config.Binaries // binary path overrides from the config file
	BinDir   string          // <base>/bin, holds AppArmor-workaround daemon copies
	User     string          // user (and group) the daemons run as
	Self     string          // dsm binary path, embedded in control scripts
}

// NewEnv builds an Env for the running process.
func NewEnv(exec executor.CommandExecutor, cfg *config.Config) (Env, error) {
	u, err := user.Current()
	if err != nil {
		return Env{}, fmt.Errorf("cannot determine current user: %w", err)
	}

	self, err := os.Executable()
	if err != nil {
		return Env{}, fmt.Errorf("cannot locate own binary: %w", err)
	}

	return Env{
		Exec:     exec,
		Binaries: cfg.Binaries,
		BinDir:   cfg.BinDir(),
		User:     u.Username,
		Self:     self,
	}, nil
}

// NewWWW returns the web server driver with the given name.
func NewWWW(name string, env Env) (Driver, error) {
	switch name {
	case "apache2":
		return NewApache2(env), nil
	default:
		return nil, fmt.Errorf("unknown www driver: %s", name)
	}
}

// NewDB returns the database driver with the given name.
func NewDB(name string, env Env) (Database, error) {
	switch name {
	case "mysql":
		return NewMysql(env), nil
	case "pgsql":
		return NewPgsql(env), nil
	default:
		return nil, fmt.Errorf("unknown db driver: %s", name)
	}
}

// makeDirs creates a list of directories in order, parents first.
func makeDirs(dirs []string) error {
	for _, dir := range dirs {
		if err := os.Mkdir(dir, 0755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	return nil
}
