package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
)

// ZipSource reads entries from a zip archive on disk.
type ZipSource struct {
	rc   *zip.ReadCloser
	path string
}

// OpenZip opens a zip archive as a Source.
func OpenZip(path string) (*ZipSource, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("archive: open zip %s: %w", path, err)
	}
	return &ZipSource{rc: rc, path: path}, nil
}

// Entries returns the names of all file entries; directory entries are
// skipped.
func (z *ZipSource) Entries(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(z.rc.File))
	for _, f := range z.rc.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
	}
	return names, nil
}

// ReadEntry returns the full contents of the named entry.
func (z *ZipSource) ReadEntry(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, f := range z.rc.File {
		if f.Name != name {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("archive: open entry %s in %s: %w", name, z.path, err)
		}
		defer r.Close()
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("archive: read entry %s in %s: %w", name, z.path, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("archive: entry %s not found in %s", name, z.path)
}

// Close closes the underlying zip reader.
func (z *ZipSource) Close() error {
	return z.rc.Close()
}
