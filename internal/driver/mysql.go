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

// MysqlDriver provides the database half of a site with a standalone
// MySQL instance running as the current user. The mysqld and
// mysql_install_db binaries are preferably the copies under <base>/bin,
// which exist to escape the system AppArmor profile.
type MysqlDriver struct {
	env Env
}

// NewMysql creates a new MySQL driver.
func NewMysql(env Env) *MysqlDriver {
	return &MysqlDriver{env: env}
}

// Name returns the driver name.
func (m *MysqlDriver) Name() string {
	return "mysql"
}

// Service returns the service this driver provides.
func (m *MysqlDriver) Service() site.Service {
	return site.DB
}

// confPath returns the rendered MySQL configuration path.
func (m *MysqlDriver) confPath(s site.Site) string {
	return filepath.Join(s.Dir, "mysql.conf")
}

// runDir returns the socket and PID directory.
func (m *MysqlDriver) runDir(s site.Site) string {
	return filepath.Join(s.DBDir(), "run")
}

// Install creates the database subtree and renders the MySQL
// configuration and the db.start/db.stop control scripts.
func (m *MysqlDriver) Install(s site.Site) error {
	dirs := []string{
		s.DBDir(),
		m.runDir(s),
		s.LogDir(site.DB),
		s.DataDir(),
	}
	if err := makeDirs(dirs); err != nil {
		return err
	}

	ctx := template.Context{
		"SITE":     s.ID,
		"PORT":     strconv.Itoa(s.DBPort()),
		"USER":     m.env.User,
		"SOCKPATH": filepath.Join(m.runDir(s), "mysqld.sock"),
		"PIDPATH":  s.PIDFile(site.DB),
		"DATADIR":  s.DataDir(),
		"LOGPATH":  s.ErrorLog(site.DB),
		"DSM":      m.env.Self,
	}

	files := []template.FileSpec{
		{Template: "conf", Dest: m.confPath(s), Mode: 0600},
		{Template: "start", Dest: s.ScriptPath(site.DB, "start"), Mode: 0700},
		{Template: "stop", Dest: s.ScriptPath(site.DB, "stop"), Mode: 0700},
	}

	return template.RenderFiles(m.Name(), files, ctx)
}

// Daemon describes the mysqld process.
func (m *MysqlDriver) Daemon(s site.Site) (proc.Daemon, error) {
	binary := m.env.Binaries.Mysqld
	if binary == "" {
		found, err := platform.Mysqld(m.env.Exec, m.env.BinDir)
		if err != nil {
			return proc.Daemon{}, err
		}
		binary = found
	}

	return proc.Daemon{
		Command: []string{binary, "--defaults-file=" + m.confPath(s)},
		Dir:     s.Dir,
		PIDFile: s.PIDFile(site.DB),
		LogFile: s.ErrorLog(site.DB),
	}, nil
}

// Bootstrap installs the MySQL system tables, starts the server
// transiently, creates the default database and user (both named after
// the site, password equal to the identifier), and stops the server
// again. The sequence must fully complete; any failure is reported as a
// bootstrap error and the installer rolls the site back.
func (m *MysqlDriver) Bootstrap(s site.Site) error {
	installDB := m.env.Binaries.MysqlInstallDB
	if installDB == "" {
		found, err := platform.MysqlInstallDB(m.env.Exec, m.env.BinDir)
		if err != nil {
			return errors.Wrap(errors.ErrCodeBootstrap, "mysql_install_db not found", err)
		}
		installDB = found
	}

	if out, err := m.env.Exec.Execute(installDB, "--defaults-file="+m.confPath(s)); err != nil {
		logger.Error("mysql_install_db output: %s", out)
		return errors.Wrap(errors.ErrCodeBootstrap, "mysql system tables", err)
	}

	daemon, err := m.Daemon(s)
	if err != nil {
		return errors.Wrap(errors.ErrCodeBootstrap, "mysqld not found", err)
	}
	if err := daemon.Start(proc.DefaultTimeout); err != nil {
		return errors.Wrap(errors.ErrCodeBootstrap, "transient mysqld start", err)
	}
	// The transient server must not outlive the bootstrap.
	defer func() {
		if err := proc.Stop(s.PIDFile(site.DB), proc.DefaultTimeout); err != nil {
			logger.Warn("transient mysqld stop failed: %v", err)
		}
	}()

	script, err := template.Render(m.Name(), "create", template.Context{
		"DATABASE": s.ID,
		"DBUSER":   s.ID,
		"PASSWORD": s.ID,
	})
	if err != nil {
		return err
	}

	client := m.env.Binaries.MysqlClient
	if client == "" {
		client = "mysql"
	}
	args := []string{"--defaults-file=" + m.confPath(s), "--user=root"}
	if out, err := m.env.Exec.ExecuteInput(script, client, args...); err != nil {
		logger.Error("mysql client output: %s", out)
		return errors.Wrap(errors.ErrCodeBootstrap, "default schema creation", err)
	}

	return nil
}
