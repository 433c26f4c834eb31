package driver

import (
	"path/filepath"
	"strconv"

	"github.com/Zigazou/DSM/internal/platform"
	"github.com/Zigazou/DSM/internal/proc"
	"github.com/Zigazou/DSM/internal/site"
	"github.com/Zigazou/DSM/internal/template"
)

// Apache2Driver provides the web half of a site with a standalone
// Apache 2.4 instance running as the current user.
type Apache2Driver struct {
	env Env
}

// NewApache2 creates a new Apache2 driver.
func NewApache2(env Env) *Apache2Driver {
	return &Apache2Driver{env: env}
}

// Name returns the driver name.
func (a *Apache2Driver) Name() string {
	return "apache2"
}

// Service returns the service this driver provides.
func (a *Apache2Driver) Service() site.Service {
	return site.WWW
}

// confPath returns the rendered Apache configuration path.
func (a *Apache2Driver) confPath(s site.Site) string {
	return filepath.Join(s.Dir, "apache2.conf")
}

// lockDir returns the mutex directory required by the prefork MPM.
func (a *Apache2Driver) lockDir(s site.Site) string {
	return filepath.Join(s.WWWDir(), "lock")
}

// Install creates the web subtree and renders the Apache configuration
// and the www.start/www.stop control scripts.
func (a *Apache2Driver) Install(s site.Site) error {
	serverRoot := s.WWWDir()
	dirs := []string{
		serverRoot,
		s.LogDir(site.WWW),
		a.lockDir(s),
		filepath.Join(serverRoot, "run"),
		s.DocDir(),
	}
	if err := makeDirs(dirs); err != nil {
		return err
	}

	ctx := template.Context{
		"SITE":       s.ID,
		"SERVERROOT": serverRoot,
		"SERVERNAME": a.env.User + "-" + s.ID,
		"HTTP_PORT":  strconv.Itoa(s.HTTPPort()),
		"HTTPS_PORT": strconv.Itoa(s.HTTPSPort()),
		"USER":       a.env.User,
		"GROUP":      a.env.User,
		"LOCKDIR":    a.lockDir(s),
		"PIDPATH":    s.PIDFile(site.WWW),
		"LOGDIR":     s.LogDir(site.WWW),
		"ERRLOGFILE": "error.log",
		"ACCLOGFILE": "access.log",
		"DOCDIR":     s.DocDir(),
		"DSM":        a.env.Self,
	}

	files := []template.FileSpec{
		{Template: "conf", Dest: a.confPath(s), Mode: 0600},
		{Template: "start", Dest: s.ScriptPath(site.WWW, "start"), Mode: 0700},
		{Template: "stop", Dest: s.ScriptPath(site.WWW, "stop"), Mode: 0700},
	}

	return template.RenderFiles(a.Name(), files, ctx)
}

// Daemon describes the Apache process. Apache backgrounds itself and
// writes the PID file named in its configuration.
func (a *Apache2Driver) Daemon(s site.Site) (proc.Daemon, error) {
	binary := a.env.Binaries.Apache2
	if binary == "" {
		found, err := platform.Apache2(a.env.Exec)
		if err != nil {
			return proc.Daemon{}, err
		}
		binary = found
	}

	return proc.Daemon{
		Command: []string{binary, "-f", a.confPath(s), "-k", "start"},
		Dir:     s.Dir,
		PIDFile: s.PIDFile(site.WWW),
		LogFile: s.ErrorLog(site.WWW),
	}, nil
}
