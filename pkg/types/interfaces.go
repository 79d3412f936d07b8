package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for foldermgr operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (fs.File, error)
	Create(name string) (io.WriteCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// RowReader reads one sheet of a tabular rule source as rows of cells.
// Row 0 is the header row.
type RowReader interface {
	GetRows(path, sheet string) ([][]string, error)
}

// ContentTyper resolves the MIME type of a file from its name.
type ContentTyper interface {
	ContentType(path string) string
}

// ContentTyperFunc adapts a function to ContentTyper.
type ContentTyperFunc func(path string) string

func (f ContentTyperFunc) ContentType(path string) string { return f(path) }
