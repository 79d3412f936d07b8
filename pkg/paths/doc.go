// Package paths resolves the locations foldermgr reads and writes outside
// the scanned directories.
//
// Configuration lives under the XDG config directory
// ($XDG_CONFIG_HOME/foldermgr), overridable with FOLDERMGR_CONFIG_DIR.
// The rule workbook defaults to rules.xlsx in that directory; when it is
// missing there, a rules.xlsx next to the foldermgr executable is used
// instead. Logs go to the XDG state directory.
package paths
