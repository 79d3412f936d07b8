package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/foldermgr/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for foldermgr
	EnvConfigDir = "FOLDERMGR_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for foldermgr
	EnvStateDir = "FOLDERMGR_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	AppDirName     = "foldermgr"
	ConfigFileName = "config.toml"
	RulesFileName  = "rules.xlsx"
	LogFileName    = "foldermgr.log"
)

// executable is replaced in tests.
var executable = os.Executable

// Paths provides the locations used by foldermgr
type Paths interface {
	ConfigDir() string
	StateDir() string
	ConfigFile() string
	RulesFile() string
	LogFilePath() string
}

type paths struct {
	configDir string
	stateDir  string
}

// New creates a Paths instance, honouring the environment overrides.
func New() (Paths, error) {
	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	for _, dir := range []*string{&p.configDir, &p.stateDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

// ConfigDir returns the XDG config directory for foldermgr
func (p *paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the XDG state directory for foldermgr
func (p *paths) StateDir() string {
	return p.stateDir
}

// ConfigFile returns the path of the optional user config file
func (p *paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// RulesFile returns the default rule workbook: the one in the config
// directory, or the one beside the executable when only that exists.
func (p *paths) RulesFile() string {
	preferred := filepath.Join(p.configDir, RulesFileName)
	if fileExists(preferred) {
		return preferred
	}
	if exe, err := executable(); err == nil {
		beside := filepath.Join(filepath.Dir(exe), RulesFileName)
		if fileExists(beside) {
			return beside
		}
	}
	return preferred
}

// LogFilePath returns the path of the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is left alone
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
