package archive

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Source lists named entries and reads their bytes. Implementations must be
// safe for concurrent ReadEntry calls; the loader may fan reads out across
// workers.
type Source interface {
	// Entries returns the names of all entries in the container. Names use
	// forward slashes regardless of platform.
	Entries(ctx context.Context) ([]string, error)
	// ReadEntry returns the full contents of one entry.
	ReadEntry(ctx context.Context, name string) ([]byte, error)
	// Close releases the underlying handle. Safe to call once.
	Close() error
}

// OpenPath opens the right Source for a local path: a directory tree if path
// is a directory, otherwise a zip archive.
func OpenPath(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("archive: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return NewDirSource(path), nil
	}
	if !strings.HasSuffix(strings.ToLower(path), ".zip") {
		return nil, fmt.Errorf("archive: %s: not a directory and not a .zip file", path)
	}
	return OpenZip(path)
}
