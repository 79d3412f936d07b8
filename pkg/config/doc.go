// Package config loads the foldermgr configuration.
//
// Values are layered: the embedded defaults, then the user config file
// (TOML), then FOLDERMGR_ environment variables. See
// embedded/defaults.toml for the available keys.
package config
