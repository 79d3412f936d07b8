package testutil

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/foldermgr/pkg/types"
)

// CreateFile creates a file with the given content in dir, creating
// parent directories as needed. It returns the file path.
func CreateFile(t *testing.T, fsys types.FS, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
	return path
}

// CreateSizedFile creates a file of exactly n bytes in dir.
func CreateSizedFile(t *testing.T, fsys types.FS, dir, name string, n int64) string {
	t.Helper()
	return CreateFile(t, fsys, dir, name, string(bytes.Repeat([]byte{'x'}, int(n))))
}

// CreateDir creates a directory in parent and returns its path.
func CreateDir(t *testing.T, fsys types.FS, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	if err := fsys.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
	return path
}

// FileExists checks if a file exists and is not a directory.
func FileExists(t *testing.T, fsys types.FS, path string) bool {
	t.Helper()

	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists.
func DirExists(t *testing.T, fsys types.FS, path string) bool {
	t.Helper()

	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// AssertFileContent checks that a file exists and has the expected content.
func AssertFileContent(t *testing.T, fsys types.FS, path, expected string) {
	t.Helper()

	content, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	if string(content) != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, string(content))
	}
}

// AssertNoFile checks that path does not exist.
func AssertNoFile(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	if _, err := fsys.Stat(path); err == nil {
		t.Errorf("File %s exists but should not", path)
	}
}

// ListDir returns the names of the entries of dir.
func ListDir(t *testing.T, fsys types.FS, dir string) []string {
	t.Helper()

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// Logger returns a logger writing JSON lines into buf, or discarding
// output when buf is nil.
func Logger(buf *bytes.Buffer) zerolog.Logger {
	var w io.Writer = io.Discard
	if buf != nil {
		w = buf
	}
	return zerolog.New(w).Level(zerolog.TraceLevel)
}
