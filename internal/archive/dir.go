package archive

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// DirSource treats a directory tree of extracted files as an archive. Entry
// names are slash-separated paths relative to the root.
type DirSource struct {
	root string
}

// NewDirSource wraps an existing directory as a Source.
func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

// Entries walks the tree and returns every regular file, relative to the
// root.
func (d *DirSource) Entries(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ReadEntry reads one file relative to the root.
func (d *DirSource) ReadEntry(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(d.root, filepath.FromSlash(name)))
}

// Close is a no-op; directories hold no handle between reads.
func (d *DirSource) Close() error {
	return nil
}
