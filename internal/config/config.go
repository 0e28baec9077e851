package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docbind/internal/enumname"
	"git.home.luguber.info/inful/docbind/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "docbind.yaml"

// Config is the docbind configuration file.
type Config struct {
	Logging  LoggingConfig `yaml:"logging"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Profiles []Profile     `yaml:"profiles"`

	// baseDir is the directory relative paths are resolved against.
	baseDir string
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// MetricsConfig controls the Prometheus textfile written after a run.
type MetricsConfig struct {
	// Textfile is the node-exporter textfile collector target. Empty disables it.
	Textfile string `yaml:"textfile,omitempty"`
}

// Profile describes one API whose documentation is processed: its function
// list, documentation directories and naming rules.
type Profile struct {
	Name          string              `yaml:"name"`
	Functions     string              `yaml:"functions"`
	Documentation DocumentationConfig `yaml:"documentation"`
	Enums         EnumConfig          `yaml:"enums"`
	Compatibility CompatibilityConfig `yaml:"compatibility"`
}

// DocumentationConfig locates the documentation files of a profile.
type DocumentationConfig struct {
	Primary  string `yaml:"primary"`
	Fallback string `yaml:"fallback,omitempty"`
	// FilePrefix is prepended to function names to form file names ("gl"
	// for glBindBuffer.xml). Empty means file names are the bare function
	// names; it is not derived from the profile name.
	FilePrefix string `yaml:"file_prefix"`
}

// EnumConfig configures the enum name translator.
type EnumConfig struct {
	ConstantPrefix string   `yaml:"constant_prefix,omitempty"`
	Reserved       []string `yaml:"reserved,omitempty"`
}

// CompatibilityConfig holds switches for older binding layouts.
type CompatibilityConfig struct {
	RewriteConstants bool `yaml:"rewrite_constants"`
}

// TranslatorOptions returns the enumname options of the profile.
func (p Profile) TranslatorOptions() enumname.Options {
	return enumname.Options{ConstantPrefix: p.Enums.ConstantPrefix, Reserved: p.Enums.Reserved}
}

// Profile returns the named profile.
func (c *Config) Profile(name string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Load reads, expands, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(filepath.Dir(path)); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("configuration file not found").
				WithCause(err).
				WithContext("path", path).
				Build()
		}
		return nil, errors.FileSystemError("failed to read configuration file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if classified, ok := errors.AsClassified(err); ok {
			return nil, classified.WithContext("path", path)
		}
		return nil, err
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.FileSystemError("failed to resolve configuration directory").WithCause(err).Build()
	}
	cfg.baseDir = abs
	cfg.resolvePaths()
	return cfg, nil
}

// Parse decodes configuration YAML after expanding environment variables,
// then validates the result and applies defaults. Paths are left as written.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.ConfigError("failed to unmarshal configuration").WithCause(err).Build()
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Init writes an example configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(Example())
	if err != nil {
		return errors.InternalError("failed to marshal example configuration").WithCause(err).Build()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.FileSystemError("failed to create configuration directory").WithCause(err).Build()
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.FileSystemError("failed to write configuration file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

// Example returns the configuration written by Init.
func Example() *Config {
	return &Config{
		Logging: LoggingConfig{Level: string(LogLevelInfo), Format: string(LogFormatText)},
		Profiles: []Profile{
			{
				Name:      "gl4",
				Functions: "functions/gl4.yaml",
				Documentation: DocumentationConfig{
					Primary:    "docs/gl4",
					Fallback:   "docs/gl2",
					FilePrefix: "gl",
				},
				Enums:         EnumConfig{ConstantPrefix: "GL_"},
				Compatibility: CompatibilityConfig{RewriteConstants: true},
			},
		},
	}
}

func (c *Config) resolvePaths() {
	for i := range c.Profiles {
		p := &c.Profiles[i]
		p.Functions = c.resolve(p.Functions)
		p.Documentation.Primary = c.resolve(p.Documentation.Primary)
		p.Documentation.Fallback = c.resolve(p.Documentation.Fallback)
	}
	c.Metrics.Textfile = c.resolve(c.Metrics.Textfile)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.baseDir == "" {
		return path
	}
	return filepath.Join(c.baseDir, path)
}
