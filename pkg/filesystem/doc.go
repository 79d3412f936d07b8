// Package filesystem provides filesystem implementations for foldermgr.
//
// This package contains implementations of the types.FS interface backed
// by the operating system and by afero (used for in-memory tests), and the
// Move helper used to relocate files between directories.
package filesystem
