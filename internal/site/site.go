// Package site defines the site model: the directory naming convention,
// identifier validation, the registry that enumerates sites from the
// filesystem, and the port allocator.
//
// A site directory name is the sole encoding of its identity. The name
// site-<id>-<port> carries both the identifier and the base port; no
// separate index is persisted, so the directory listing is always the
// source of truth.
package site

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/Zigazou/DSM/internal/errors"
)

// Port offsets within a site's stride.
const (
	OffsetHTTP  = 0
	OffsetHTTPS = 1
	OffsetDB    = 2
)

var (
	// validID matches acceptable site identifiers.
	validID = regexp.MustCompile(`^[a-zA-Z]\w{0,23}$`)

	// dirFormat matches site directory names and captures id and port.
	dirFormat = regexp.MustCompile(`^site-([a-zA-Z]\w{0,23})-(\d{4,5})$`)
)

// Site is one isolated web+database instance pair.
type Site struct {
	ID   string `json:"id"`
	Port int    `json:"port"` // base port of the stride
	Dir  string `json:"dir"`  // absolute site directory
}

// ValidID reports whether id is an acceptable site identifier.
func ValidID(id string) bool {
	return validID.MatchString(id)
}

// DirName returns the directory name encoding id and port.
func DirName(id string, port int) string {
	return fmt.Sprintf("site-%s-%d", id, port)
}

// ParseDirName decodes a directory name into id and port. ok is false
// for any name that does not follow the convention.
func ParseDirName(name string) (id string, port int, ok bool) {
	m := dirFormat.FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}
	port, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], port, true
}

// New builds a Site rooted under baseDir.
func New(baseDir, id string, port int) (Site, error) {
	if !ValidID(id) {
		return Site{}, errors.InvalidIdentifier(id)
	}
	return Site{
		ID:   id,
		Port: port,
		Dir:  filepath.Join(baseDir, DirName(id, port)),
	}, nil
}

// HTTPPort returns the site's HTTP port.
func (s Site) HTTPPort() int { return s.Port + OffsetHTTP }

// HTTPSPort returns the site's HTTPS port.
func (s Site) HTTPSPort() int { return s.Port + OffsetHTTPS }

// DBPort returns the site's database port.
func (s Site) DBPort() int { return s.Port + OffsetDB }

// WWWDir returns the web server root directory.
func (s Site) WWWDir() string { return filepath.Join(s.Dir, "www") }

// DocDir returns the served document root.
func (s Site) DocDir() string { return filepath.Join(s.WWWDir(), "doc") }

// DBDir returns the database directory.
func (s Site) DBDir() string { return filepath.Join(s.Dir, "db") }

// DataDir returns the database data directory.
func (s Site) DataDir() string { return filepath.Join(s.DBDir(), "data") }

// PIDFile returns the PID file path for a service. Every driver's
// rendered configuration points its daemon at this exact path so the
// registry can probe state without driver knowledge.
func (s Site) PIDFile(service Service) string {
	return filepath.Join(s.Dir, string(service), "run", string(service)+".pid")
}

// LogDir returns the log directory for a service.
func (s Site) LogDir(service Service) string {
	return filepath.Join(s.Dir, string(service), "log")
}

// ErrorLog returns the error log path for a service.
func (s Site) ErrorLog(service Service) string {
	return filepath.Join(s.LogDir(service), "error.log")
}

// AccessLog returns the web access log path.
func (s Site) AccessLog() string {
	return filepath.Join(s.LogDir(WWW), "access.log")
}

// ScriptPath returns the path of a rendered control script, for
// example www.start or db.stop.
func (s Site) ScriptPath(service Service, action string) string {
	return filepath.Join(s.Dir, string(service)+"."+action)
}

// Service identifies one half of a site.
type Service string

// The two service instances of every site.
const (
	WWW Service = "www"
	DB  Service = "db"
)

// ParseService validates a service name from the command line.
func ParseService(name string) (Service, error) {
	switch Service(name) {
	case WWW, DB:
		return Service(name), nil
	default:
		return "", errors.Validation(fmt.Sprintf("unknown service %q, must be www or db", name))
	}
}
