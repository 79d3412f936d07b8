package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/paths"
)

// EnvPrefix prefixes the environment variables read by Load.
const EnvPrefix = "FOLDERMGR_"

// Load builds the configuration. configFile names the user config file;
// when empty the file in the foldermgr config directory is used if it
// exists. overrides, keyed like the config file, are applied last.
func Load(configFile string, overrides map[string]interface{}) (*Config, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User config file
	source := configFile
	if source == "" {
		source = p.ConfigFile()
		if _, err := os.Stat(source); stderrors.Is(err, fs.ErrNotExist) {
			source = ""
		}
	}
	if source != "" {
		if err := k.Load(file.Provider(source), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", source).
				WithDetail("path", source)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal configuration")
	}
	cfg.Source = source

	// 6. Post-process
	cfg.RulesPath = paths.ExpandHome(cfg.RulesPath)
	if cfg.RulesPath == "" {
		cfg.RulesPath = p.RulesFile()
	}
	cfg.Log.File = paths.ExpandHome(cfg.Log.File)
	if cfg.Log.File == "" {
		cfg.Log.File = p.LogFilePath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps FOLDERMGR_SCAN_INTERVAL to scan_interval and
// FOLDERMGR_LOG__FILE to log.file.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
