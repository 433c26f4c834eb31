// Package platform locates the daemon binaries a site depends on.
//
// Daemons are frequently installed outside PATH (apache2 in /usr/sbin,
// postgres under a versioned lib directory), so detection searches PATH
// first and then a set of well-known hint globs. The MySQL binaries are
// the exception: an unconfined copy under <base>/bin takes precedence
// over anything on PATH.
package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Hint globs for daemons that commonly live outside PATH.
var (
	apache2Hints = []string{"/usr/sbin"}

	mysqlHints = []string{"/usr/sbin", "/usr/local/mysql/bin"}

	postgresHints = []string{
		"/usr/local/pgsql/bin",
		"/usr/lib/postgresql/*/bin",
		"/opt/pgsql-*/bin",
		"/Library/PostgreSQL/*",
		"/Applications/Postgres.app/Contents/MacOS/bin",
		"/opt/local/lib/postgresql*/bin",
	}
)

// Lookupper resolves an executable through PATH. Satisfied by
// executor.CommandExecutor; split out so detection is testable.
type Lookupper interface {
	LookPath(file string) (string, error)
}

// FindBinary returns the full path to an executable, searching PATH
// first and then the given directory globs.
func FindBinary(lookup Lookupper, exe string, hints ...string) (string, error) {
	if path, err := lookup.LookPath(exe); err == nil {
		return path, nil
	}

	for _, hint := range hints {
		matches, err := filepath.Glob(filepath.Join(hint, exe))
		if err != nil || len(matches) == 0 {
			continue
		}
		return matches[0], nil
	}

	return "", fmt.Errorf("%s not found in PATH or known locations", exe)
}

// Apache2 locates the apache2 binary.
func Apache2(lookup Lookupper) (string, error) {
	return FindBinary(lookup, "apache2", apache2Hints...)
}

// Mysqld locates the mysqld binary. The copy in binDir wins over any
// PATH hit: the AppArmor workaround puts mysqld there so it may run
// unconfined, and the system binary must not shadow it.
func Mysqld(lookup Lookupper, binDir string) (string, error) {
	if path, ok := binDirCopy(binDir, "mysqld"); ok {
		return path, nil
	}
	return FindBinary(lookup, "mysqld", mysqlHints...)
}

// MysqlInstallDB locates the mysql_install_db helper, preferring the
// copy in binDir for the same AppArmor reason as Mysqld.
func MysqlInstallDB(lookup Lookupper, binDir string) (string, error) {
	if path, ok := binDirCopy(binDir, "mysql_install_db"); ok {
		return path, nil
	}
	return FindBinary(lookup, "mysql_install_db", mysqlHints...)
}

// binDirCopy reports the workaround copy of exe in binDir, if any.
func binDirCopy(binDir, exe string) (string, bool) {
	if binDir == "" {
		return "", false
	}
	path := filepath.Join(binDir, exe)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Postgres locates the postgres binary across common install layouts.
func Postgres(lookup Lookupper) (string, error) {
	return FindBinary(lookup, "postgres", postgresHints...)
}

// Initdb locates the initdb helper next to postgres when possible.
func Initdb(lookup Lookupper) (string, error) {
	if postgres, err := Postgres(lookup); err == nil {
		candidate := filepath.Join(filepath.Dir(postgres), "initdb")
		if matches, _ := filepath.Glob(candidate); len(matches) > 0 {
			return matches[0], nil
		}
	}
	return FindBinary(lookup, "initdb", postgresHints...)
}

// ExecLookup adapts exec.LookPath to the Lookupper interface.
type ExecLookup struct{}

// LookPath delegates to exec.LookPath.
func (ExecLookup) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}
