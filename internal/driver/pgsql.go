package driver

import (
	"path/filepath"
	"strconv"

	"github.com/Zigazou/DSM/internal/errors"
	"github.com/Zigazou/DSM/internal/logger"
	"github.com/Zigazou/DSM/internal/platform"
	"github.com/Zigazou/DSM/internal/proc"
	"github.com/Zigazou/DSM/internal/site"
	"github.com/Zigazou/DSM/internal/template"
)

// PgsqlDriver provides the database half of a site with a standalone
// PostgreSQL instance running as the current user.
type PgsqlDriver struct {
	env Env
}

// NewPgsql creates a new PostgreSQL driver.
func NewPgsql(env Env) *PgsqlDriver {
	return &PgsqlDriver{env: env}
}

// Name returns the driver name.
func (p *PgsqlDriver) Name() string {
	return "pgsql"
}

// Service returns the service this driver provides.
func (p *PgsqlDriver) Service() site.Service {
	return site.DB
}

// runDir returns the socket and PID directory.
func (p *PgsqlDriver) runDir(s site.Site) string {
	return filepath.Join(s.DBDir(), "run")
}

// Install creates the database subtree and renders the db.start and
// db.stop control scripts. The PostgreSQL configuration itself is
// rendered into the data directory by Bootstrap, after initdb has
// populated it.
func (p *PgsqlDriver) Install(s site.Site) error {
	dirs := []string{
		s.DBDir(),
		p.runDir(s),
		s.LogDir(site.DB),
		s.DataDir(),
	}
	if err := makeDirs(dirs); err != nil {
		return err
	}

	ctx := template.Context{
		"SITE": s.ID,
		"DSM":  p.env.Self,
	}

	files := []template.FileSpec{
		{Template: "start", Dest: s.ScriptPath(site.DB, "start"), Mode: 0700},
		{Template: "stop", Dest: s.ScriptPath(site.DB, "stop"), Mode: 0700},
	}

	return template.RenderFiles(p.Name(), files, ctx)
}

// Daemon describes the postgres process.
func (p *PgsqlDriver) Daemon(s site.Site) (proc.Daemon, error) {
	binary := p.env.Binaries.Postgres
	if binary == "" {
		found, err := platform.Postgres(p.env.Exec)
		if err != nil {
			return proc.Daemon{}, err
		}
		binary = found
	}

	return proc.Daemon{
		Command: []string{binary, "-D", s.DataDir()},
		Dir:     s.Dir,
		PIDFile: s.PIDFile(site.DB),
		LogFile: s.ErrorLog(site.DB),
	}, nil
}

// Bootstrap initializes the cluster with initdb and renders the
// PostgreSQL configuration into the data directory. The developer
// becomes the cluster superuser and local access is trust-based, so no
// transient server round-trip is needed to set up credentials.
func (p *PgsqlDriver) Bootstrap(s site.Site) error {
	initdb := p.env.Binaries.Initdb
	if initdb == "" {
		found, err := platform.Initdb(p.env.Exec)
		if err != nil {
			return errors.Wrap(errors.ErrCodeBootstrap, "initdb not found", err)
		}
		initdb = found
	}

	out, err := p.env.Exec.Execute(initdb,
		"--pgdata="+s.DataDir(),
		"--username="+p.env.User,
		"--auth=trust")
	if err != nil {
		logger.Error("initdb output: %s", out)
		return errors.Wrap(errors.ErrCodeBootstrap, "cluster initialization", err)
	}

	ctx := template.Context{
		"SITE":    s.ID,
		"PORT":    strconv.Itoa(s.DBPort()),
		"USER":    p.env.User,
		"RUNDIR":  p.runDir(s),
		"PIDPATH": s.PIDFile(site.DB),
		"LOGDIR":  s.LogDir(site.DB),
		"LOGFILE": "error.log",
	}

	files := []template.FileSpec{
		{Template: "conf", Dest: filepath.Join(s.DataDir(), "postgresql.conf"), Mode: 0600},
		{Template: "pg_hba.conf", Dest: filepath.Join(s.DataDir(), "pg_hba.conf"), Mode: 0600},
		{Template: "pg_ident.conf", Dest: filepath.Join(s.DataDir(), "pg_ident.conf"), Mode: 0600},
	}

	return template.RenderFiles(p.Name(), files, ctx)
}
