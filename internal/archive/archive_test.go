package archive

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestZip creates a zip file at path with the given name -> content
// entries plus one explicit directory entry.
func writeTestZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := zip.NewWriter(f)
	_, err = w.Create("nested/")
	require.NoError(t, err)
	for name, content := range entries {
		ew, err := w.Create(name)
		require.NoError(t, err)
		_, err = ew.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
}

func TestZipSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.zip")
	writeTestZip(t, path, map[string]string{
		"ins_N3_K2_Freq1_sCap50.txt": "NodeSize 3\n",
		"nested/readme.txt":          "notes",
	})

	src, err := OpenZip(path)
	require.NoError(t, err)
	defer src.Close()

	names, err := src.Entries(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ins_N3_K2_Freq1_sCap50.txt", "nested/readme.txt"}, names)

	data, err := src.ReadEntry(context.Background(), "ins_N3_K2_Freq1_sCap50.txt")
	require.NoError(t, err)
	assert.Equal(t, "NodeSize 3\n", string(data))

	_, err = src.ReadEntry(context.Background(), "missing.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDirSource(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "SSND Instances"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "SSND Instances", "a.txt"), []byte("alpha"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("beta"), 0o644))

	src := NewDirSource(root)
	defer src.Close()

	names, err := src.Entries(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"SSND Instances/a.txt", "b.txt"}, names)

	data, err := src.ReadEntry(context.Background(), "SSND Instances/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "alpha", string(data))
}

func TestSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))

	dir := NewDirSource(root)
	_, err := dir.Entries(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = dir.ReadEntry(ctx, "a.txt")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenPath(t *testing.T) {
	t.Run("directory", func(t *testing.T) {
		src, err := OpenPath(t.TempDir())
		require.NoError(t, err)
		defer src.Close()
		assert.IsType(t, &DirSource{}, src)
	})

	t.Run("zip file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bench.zip")
		writeTestZip(t, path, map[string]string{"a.txt": "x"})

		src, err := OpenPath(path)
		require.NoError(t, err)
		defer src.Close()
		assert.IsType(t, &ZipSource{}, src)
	})

	t.Run("error - missing path", func(t *testing.T) {
		_, err := OpenPath(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})

	t.Run("error - regular file without zip suffix", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bench.tar")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, err := OpenPath(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a .zip file")
	})
}

func TestNewS3Source_Validation(t *testing.T) {
	base := S3Config{
		Endpoint:  "play.min.io",
		AccessKey: "ak",
		SecretKey: "sk",
		Bucket:    "bench",
	}

	t.Run("valid config builds a client", func(t *testing.T) {
		src, err := NewS3Source(base)
		require.NoError(t, err)
		defer src.Close()
		assert.Equal(t, "bench", src.bucket)
	})

	t.Run("prefix is normalized with a trailing slash", func(t *testing.T) {
		cfg := base
		cfg.Prefix = "/SSND Instances"
		src, err := NewS3Source(cfg)
		require.NoError(t, err)
		assert.Equal(t, "SSND Instances/", src.prefix)
	})

	t.Run("error - missing endpoint", func(t *testing.T) {
		cfg := base
		cfg.Endpoint = ""
		_, err := NewS3Source(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "endpoint")
	})

	t.Run("error - missing credentials", func(t *testing.T) {
		cfg := base
		cfg.SecretKey = " "
		_, err := NewS3Source(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key")
	})

	t.Run("error - missing bucket", func(t *testing.T) {
		cfg := base
		cfg.Bucket = ""
		_, err := NewS3Source(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket")
	})
}
