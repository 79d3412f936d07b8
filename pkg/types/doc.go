// Package types defines the interfaces shared by foldermgr packages: the
// filesystem abstraction, the tabular rule source, and the content-type
// lookup, along with the Candidate describing a file under evaluation.
package types
