package types

import (
	"path/filepath"
	"strings"
)

// Candidate is a file being evaluated against the rule set.
type Candidate struct {
	Path        string
	Directory   string
	Name        string // base name including extension
	Extension   string // including the leading dot, as found on disk
	Stem        string // base name without extension
	ContentType string
	Size        int64
}

// NewCandidate splits path into its name parts. ContentType and Size are
// left for the caller to fill in.
func NewCandidate(path string) Candidate {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return Candidate{
		Path:      path,
		Directory: filepath.Dir(path),
		Name:      name,
		Extension: ext,
		Stem:      strings.TrimSuffix(name, ext),
	}
}

// InDirectory reports whether the candidate sits directly inside dir.
func (c Candidate) InDirectory(dir string) bool {
	return filepath.Clean(c.Directory) == filepath.Clean(dir)
}
