package install

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Zigazou/DSM/internal/errors"
	"github.com/Zigazou/DSM/internal/logger"
	"github.com/Zigazou/DSM/internal/proc"
	"github.com/Zigazou/DSM/internal/site"
)

// Remove stops a site's services and deletes its directory. Stops are
// best effort: a service that will not die is logged and removal
// proceeds anyway. Returns a not-found error when the site does not
// exist.
func (m *Manager) Remove(id string) error {
	s, err := m.reg.Find(id)
	if err != nil {
		return err
	}

	for _, svc := range []site.Service{site.WWW, site.DB} {
		if err := proc.Stop(s.PIDFile(svc), proc.DefaultTimeout); err != nil {
			logger.Warn("site %s: stopping %s before removal: %v", id, svc, err)
		}
	}

	// Database bootstraps leave read-only files behind; removal needs
	// the user write bit back on the whole tree.
	restoreWrite(s.Dir)

	if err := os.RemoveAll(s.Dir); err != nil {
		return errors.WrapSite(errors.ErrCodeInternal, id, err)
	}
	logger.Info("site %s: removed", id)
	return nil
}

// restoreWrite sets the user write bit on every entry under root.
func restoreWrite(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Mode().Perm()&0200 == 0 {
			_ = os.Chmod(path, info.Mode().Perm()|0200)
		}
		return nil
	})
}
