// Package testutil provides helpers for foldermgr tests: populating a
// types.FS with files of a given size, asserting on the resulting tree,
// and writing rule sources in the supported formats.
package testutil
