// Package credential handles teardown of credentials the host may have
// persisted during a run.
package credential

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/um-tesoreria/wikisync/internal/domain"
)

// Cache points at the git credential store file on the host. The run
// itself only carries the token inside the remote URL, but a configured
// credential helper may still have written it to disk; Purge removes
// that file as part of the mandatory teardown.
type Cache struct {
	path string
}

// Ensure Cache implements domain.CredentialCache.
var _ domain.CredentialCache = (*Cache)(nil)

// New creates a Cache for the default git credential store
// (~/.git-credentials). When the home directory cannot be determined
// there is nothing to purge.
func New() *Cache {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Cache{}
	}
	return &Cache{path: filepath.Join(home, ".git-credentials")}
}

// NewWithPath creates a Cache for a specific credential file. Useful
// for tests.
func NewWithPath(path string) *Cache {
	return &Cache{path: path}
}

// Purge removes the credential file. A file that does not exist is a
// success: the goal is that no credential survives the run.
func (c *Cache) Purge() error {
	if c.path == "" {
		return nil
	}
	err := os.Remove(c.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
