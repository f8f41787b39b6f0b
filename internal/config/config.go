// Package config resolves the options of a sync run from defaults, an
// optional config file and command-line flags, in that order of
// increasing precedence.
//
// The config file may be YAML (.yaml, .yml) or TOML (.toml):
//
//	settings_file: .zed/settings.json
//	update_existing: true
//	ignore_file: ~/dotfiles/gitignore
//	extra_patterns:
//	  - "*.local"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsFile is the project settings path Zed reads.
const DefaultSettingsFile = "./.zed/settings.json"

// Options are the resolved inputs of one sync run.
type Options struct {
	// SettingsFile is the Zed settings.json to update.
	SettingsFile string

	// UpdateExisting allows modifying a settings file that already exists.
	// Without it an existing file is left alone.
	UpdateExisting bool

	// DryRun reports what would change without writing.
	DryRun bool

	// IgnoreFile, when set, is read instead of discovering the global
	// gitignore.
	IgnoreFile string

	// ExtraPatterns are gitignore-style lines merged after the global ones.
	ExtraPatterns []string
}

// Defaults returns the options used when nothing is configured.
func Defaults() Options {
	return Options{SettingsFile: DefaultSettingsFile}
}

// File is the on-disk config. Pointer fields distinguish "unset" from an
// explicit false.
type File struct {
	SettingsFile   string   `yaml:"settings_file" toml:"settings_file"`
	UpdateExisting *bool    `yaml:"update_existing" toml:"update_existing"`
	DryRun         *bool    `yaml:"dry_run" toml:"dry_run"`
	IgnoreFile     string   `yaml:"ignore_file" toml:"ignore_file"`
	ExtraPatterns  []string `yaml:"extra_patterns" toml:"extra_patterns"`
}

// Apply overlays the values set in f onto opts.
func (f *File) Apply(opts *Options) {
	if f == nil {
		return
	}
	if f.SettingsFile != "" {
		opts.SettingsFile = f.SettingsFile
	}
	if f.UpdateExisting != nil {
		opts.UpdateExisting = *f.UpdateExisting
	}
	if f.DryRun != nil {
		opts.DryRun = *f.DryRun
	}
	if f.IgnoreFile != "" {
		opts.IgnoreFile = f.IgnoreFile
	}
	if len(f.ExtraPatterns) > 0 {
		opts.ExtraPatterns = append([]string{}, f.ExtraPatterns...)
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gentlegoose/config.yaml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("determining home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gentlegoose", "config.yaml"), nil
}

// Load reads the config file at path. When required is false a missing
// file yields (nil, nil); when true it is an error.
func Load(path string, required bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes config data in the format named by ext (".yaml", ".yml" or
// ".toml"). Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte, ext string) (*File, error) {
	var f File

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes as io.EOF.
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case ".toml":
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .yaml, .yml or .toml)", ext)
	}
	return &f, nil
}
