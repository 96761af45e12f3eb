// Package config loads the launcher's layered configuration: built-in
// defaults, editor settings, the workspace config file, then command-line
// flags, each layer overriding the one before it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
)

const (
	// FileName is the workspace config file read from the workspace root.
	FileName = "mo-lsp.yaml"

	// DefaultStandaloneBinary is the language server used when no project
	// manifest routes the launch through dfx and the user has not named a
	// binary of their own.
	DefaultStandaloneBinary = "mo-ide"
)

var log = commonlog.GetLogger("mo-lsp.config")

// Config is the merged launcher configuration.
//
// yaml tags bind the workspace config file, mapstructure tags bind the
// editor settings overlay.
type Config struct {
	// Dfx overrides how the dfx executable is found. When empty the
	// executable is looked up on PATH.
	Dfx string `yaml:"dfx" mapstructure:"dfx"`

	// Canister names the preferred language-server target. When set it
	// suppresses target selection entirely.
	Canister string `yaml:"canister" mapstructure:"canister"`

	// StandaloneBinary names a language server to launch directly instead of
	// going through dfx. Setting it switches the launch route even when a
	// project manifest is present.
	StandaloneBinary string `yaml:"standalone-binary" mapstructure:"standaloneBinary"`

	// StandaloneArguments carries extra arguments appended to every launch,
	// as a single string.
	StandaloneArguments string `yaml:"standalone-arguments" mapstructure:"standaloneArguments"`

	// Ignore lists glob patterns excluded from entry-point scanning.
	Ignore []string `yaml:"ignore" mapstructure:"ignore"`
}

// Load assembles the configuration for a workspace from defaults, the editor
// settings overlay and the workspace config file. Flag overrides are applied
// separately with ApplyFlags.
//
// Editor settings that fail to parse are skipped; a broken workspace config
// file is an error, since that file belongs to this tool and silence would
// hide the typo.
func Load(root string) (Config, error) {
	var cfg Config

	applySettings(&cfg, root)

	path := filepath.Join(root, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debugf("skipping %s: %s", FileName, err.Error())
		}

		return cfg, nil
	}

	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyFlags lays the given command-line flags over the configuration. Only
// flags the user actually set are applied.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) {
	if fs.Changed("dfx") {
		c.Dfx, _ = fs.GetString("dfx")
	}

	if fs.Changed("canister") {
		c.Canister, _ = fs.GetString("canister")
	}

	if fs.Changed("binary") {
		c.StandaloneBinary, _ = fs.GetString("binary")
	}

	if fs.Changed("args") {
		c.StandaloneArguments, _ = fs.GetString("args")
	}
}

// ExtraArgs splits the configured argument string into individual arguments.
// The split is plain whitespace tokenization: there is no shell quoting, so
// an argument cannot itself contain a space.
func (c Config) ExtraArgs() []string {
	return strings.Fields(c.StandaloneArguments)
}
