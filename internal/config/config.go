// Package config loads the tool's TOML configuration file.
//
// The config file shapes build behavior that is not decided per-invocation:
// default parallelism, the target directory, extra compiler flags, and the
// unstable feature switches that control which optional document fields are
// emitted. Command-line flags always take precedence over file values.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/jwollen/cargo/pkg/errors"
)

// DefaultFileName is the config file looked up in the working directory
// when no explicit --config path is given.
const DefaultFileName = "cargo-config.toml"

// Config is the root of the tool configuration.
type Config struct {
	Build    Build    `toml:"build"`
	Unstable Unstable `toml:"unstable"`
}

// Build holds default build-shaping options.
type Build struct {
	// Jobs is the default parallelism level; 0 means "number of CPUs",
	// decided by the executor.
	Jobs int `toml:"jobs"`

	// TargetDir is the directory build output is placed in.
	TargetDir string `toml:"target-dir"`

	// Rustflags are extra compiler flags applied to every unit.
	Rustflags []string `toml:"rustflags"`

	// MessageFormat is the default diagnostic output format.
	MessageFormat string `toml:"message-format"`
}

// Unstable holds opt-in switches for unstable behavior.
type Unstable struct {
	// PublicDependency enables emission of the per-edge public and
	// noprelude document fields.
	PublicDependency bool `toml:"public-dependency"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Build: Build{
			TargetDir:     "target",
			MessageFormat: "human",
		},
	}
}

// Load reads the config file at path. An empty path falls back to
// [DefaultFileName] in the working directory, and its absence is not an
// error; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
		}
		return Default(), nil
	}

	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undec[0].String(), path)
	}
	if cfg.Build.TargetDir == "" {
		cfg.Build.TargetDir = Default().Build.TargetDir
	}
	return cfg, nil
}
