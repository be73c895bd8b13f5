// Package config loads rolesmanifest configuration.
//
// Values are layered, later layers winning:
//
//	built-in defaults
//	YAML file (--config, else <root>/.rolesmanifest.yaml when present)
//	ROLES_MANIFEST_* environment variables
//	explicitly set CLI flags
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/NielsdaWheelz/rolesmanifest/internal/errors"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "ROLES_MANIFEST_"

// DefaultConfigFile is looked up in the root directory when --config is not given.
const DefaultConfigFile = ".rolesmanifest.yaml"

// Built-in defaults. Paths are relative to the root.
const (
	DefaultRoot       = "."
	DefaultInputDir   = "00_Canonical/roles"
	DefaultOutput     = "00_Canonical/roles/roles_manifest.jsonl"
	DefaultPathPrefix = "/Agent-Lab/00_Canonical/roles/"
	DefaultExtension  = ".json"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "console"
)

// Config is the effective configuration of a run.
type Config struct {
	Root       string    `koanf:"root" yaml:"root"`
	InputDir   string    `koanf:"input_dir" yaml:"input_dir"`
	Output     string    `koanf:"output" yaml:"output"`
	PathPrefix string    `koanf:"path_prefix" yaml:"path_prefix"`
	Extension  string    `koanf:"extension" yaml:"extension"`
	Log        LogConfig `koanf:"log" yaml:"log"`
}

// LogConfig configures the diagnostic logger.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level"`   // debug, info, warn, error
	Format string `koanf:"format" yaml:"format"` // console, json
}

// LoadOptions selects the sources consulted by Load.
type LoadOptions struct {
	// ConfigFile is an explicit config path. It must exist when set.
	ConfigFile string

	// Overrides holds flag values the user set explicitly, keyed by koanf path
	// (e.g. "input_dir", "log.level").
	Overrides map[string]any
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Root:       DefaultRoot,
		InputDir:   DefaultInputDir,
		Output:     DefaultOutput,
		PathPrefix: DefaultPathPrefix,
		Extension:  DefaultExtension,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds the effective configuration. The result is validated.
// The returned string is the config file that was read, or "" if none.
func Load(opts LoadOptions) (Config, string, error) {
	k := koanf.New(".")

	d := Default()
	_ = k.Set("root", d.Root)
	_ = k.Set("input_dir", d.InputDir)
	_ = k.Set("output", d.Output)
	_ = k.Set("path_prefix", d.PathPrefix)
	_ = k.Set("extension", d.Extension)
	_ = k.Set("log.level", d.Log.Level)
	_ = k.Set("log.format", d.Log.Format)

	envProvider := env.Provider(EnvPrefix, ".", envKey)

	configFile := opts.ConfigFile
	if configFile == "" {
		// The default file lives in the root, which may itself come from env or flags.
		root := d.Root
		if v, ok := os.LookupEnv(EnvPrefix + "ROOT"); ok && v != "" {
			root = v
		}
		if v, ok := opts.Overrides["root"].(string); ok && v != "" {
			root = v
		}
		candidate := filepath.Join(root, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
		}
	} else if _, err := os.Stat(configFile); err != nil {
		return Config{}, "", errors.WrapWithDetails(errors.EInvalidConfig, "config file not found: "+configFile, err,
			map[string]string{"config": configFile})
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return Config{}, "", errors.WrapWithDetails(errors.EInvalidConfig, "failed to load config file: "+err.Error(), err,
				map[string]string{"config": configFile})
		}
	}

	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, "", errors.Wrap(errors.EInvalidConfig, "failed to load environment: "+err.Error(), err)
	}

	for key, val := range opts.Overrides {
		if err := k.Set(key, val); err != nil {
			return Config{}, "", errors.Wrap(errors.EInvalidConfig, "invalid flag value for "+key, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, "", errors.WrapWithDetails(errors.EInvalidConfig, "failed to decode config: "+err.Error(), err,
			map[string]string{"config": configFile})
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, configFile, nil
}

// envKey maps ROLES_MANIFEST_INPUT_DIR to input_dir and ROLES_MANIFEST_LOG_LEVEL to log.level.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

// YAML renders the configuration in the config file format.
func (c Config) YAML() ([]byte, error) {
	return yamlv3.Marshal(c)
}
