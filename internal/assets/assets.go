// Package assets serves stored objects with a placeholder-image fallback.
package assets

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ObjectStore is the storage boundary. The directory-backed implementation
// below is the only one in-tree; a bucket-backed one satisfies the same
// interface.
type ObjectStore interface {
	// Get returns the object body, or fs.ErrNotExist when the key is absent.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// DirStore serves objects from a local directory.
type DirStore struct {
	root string
}

func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

func (s *DirStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" || key == "." {
		return nil, fs.ErrNotExist
	}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
