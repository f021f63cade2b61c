// Package config handles application configuration and command-line argument parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"gopkg.in/yaml.v3"

	"github.com/ade/merge-folders/pkg/fsys"
)

// DefaultSuffix is the folder-name suffix matched when none is configured.
const DefaultSuffix = "_old"

// ConflictMode represents how name collisions are resolved during a merge
type ConflictMode int

const (
	// Rename - keep both items, giving the incoming one a numbered name
	Rename ConflictMode = iota
	// Overwrite - replace the existing item with the incoming one
	Overwrite
	// Skip - leave the existing item alone and drop the incoming one
	Skip
)

// String returns the string representation of ConflictMode
func (cm ConflictMode) String() string {
	switch cm {
	case Rename:
		return "rename"
	case Overwrite:
		return "overwrite"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseConflictMode parses a string into a ConflictMode
func ParseConflictMode(s string) (ConflictMode, error) {
	s = strings.ToLower(s)
	switch s {
	case "rename":
		return Rename, nil
	case "overwrite":
		return Overwrite, nil
	case "skip":
		return Skip, nil
	default:
		return Rename, fmt.Errorf("invalid conflict mode: %s (valid: rename, overwrite, skip)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (cm *ConflictMode) UnmarshalText(text []byte) error {
	parsed, err := ParseConflictMode(string(text))
	if err != nil {
		return err
	}
	*cm = parsed
	return nil
}

// Config holds the application configuration
type Config struct {
	Root       string       `arg:"positional" help:"Root directory to scan (local path or sftp://user@host/path)"`
	Suffix     string       `arg:"-s,--suffix" help:"Folder-name suffix to merge away (default: _old)"`
	IgnoreCase bool         `arg:"--ignore-case" help:"Match the suffix case-insensitively"`
	Live       bool         `arg:"--live" help:"Apply changes for real (default is a dry run)"`
	Backup     bool         `arg:"-b,--backup" help:"Archive the root to a zip before merging"`
	Conflict   ConflictMode `arg:"-c,--conflict" help:"Conflict resolution: rename|overwrite|skip (default: rename)"`
	Exclude    []string     `arg:"--exclude,separate" help:"Glob pattern of paths to leave alone (repeatable)"`
	NoTUI      bool         `arg:"--no-tui" help:"Plain text output instead of the interactive UI"`
	LogFile    string       `arg:"--log" help:"Also append log lines to this file"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Merge suffixed folders (Project_old) into their unsuffixed siblings (Project)"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "merge-folders 1.0.0"
}

// ParseFlags parses command-line flags and returns configuration.
// Values from the optional config file act as defaults; flags override them.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	if err := applyFileDefaults(cfg, defaultConfigPath()); err != nil {
		return nil, err
	}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}

	// Root may come from the interactive UI instead of the command line,
	// so only validate it here when it was actually given.
	if cfg.Root != "" {
		if err := cfg.ValidateRoot(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// ValidateSuffix validates that the configured suffix is usable. An empty
// suffix would match nothing and strip nothing; refusing it here keeps a
// misconfigured run from quietly doing no work.
func (cfg *Config) ValidateSuffix() error {
	if cfg.Suffix == "" {
		return fmt.Errorf("suffix must not be empty")
	}

	return nil
}

// ValidateRoot validates that the configured root is usable
func (cfg *Config) ValidateRoot() error {
	if cfg.Root == "" {
		return fmt.Errorf("root path is required")
	}

	parsed, err := fsys.ParsePath(cfg.Root)
	if err != nil {
		return err
	}

	// Remote roots are checked at connect time.
	if parsed.IsRemote {
		return nil
	}

	info, err := os.Stat(parsed.LocalPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("root path does not exist: %s", parsed.LocalPath)
	}
	if err != nil {
		return fmt.Errorf("cannot access root path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path is not a directory: %s", parsed.LocalPath)
	}

	return nil
}

// fileConfig mirrors the subset of Config that may be set from the config file.
type fileConfig struct {
	Suffix     *string  `yaml:"suffix"`
	IgnoreCase *bool    `yaml:"ignore_case"`
	Backup     *bool    `yaml:"backup"`
	Conflict   *string  `yaml:"conflict"`
	Exclude    []string `yaml:"exclude"`
	NoTUI      *bool    `yaml:"no_tui"`
	LogFile    *string  `yaml:"log_file"`
}

// defaultConfigPath returns the per-user config file location.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", "merge-folders", "config.yaml")
}

// applyFileDefaults loads defaults from the YAML config file at path, if it
// exists, into cfg. A missing file is not an error.
func applyFileDefaults(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}

	if fc.Suffix != nil {
		cfg.Suffix = *fc.Suffix
	}
	if fc.IgnoreCase != nil {
		cfg.IgnoreCase = *fc.IgnoreCase
	}
	if fc.Backup != nil {
		cfg.Backup = *fc.Backup
	}
	if fc.Conflict != nil {
		mode, err := ParseConflictMode(*fc.Conflict)
		if err != nil {
			return fmt.Errorf("invalid config file %s: %w", path, err)
		}
		cfg.Conflict = mode
	}
	if len(fc.Exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, fc.Exclude...)
	}
	if fc.NoTUI != nil {
		cfg.NoTUI = *fc.NoTUI
	}
	if fc.LogFile != nil {
		cfg.LogFile = *fc.LogFile
	}

	return nil
}
