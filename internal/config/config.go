package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the workspace-relative config file name.
const DefaultFileName = ".javaxify.yaml"

// Config holds all javaxify configuration.
type Config struct {
	// Source root used to derive package names for generated classes.
	SourceRoot string `yaml:"source_root"`

	// Class name used when a script file name yields nothing usable.
	DefaultClassName string `yaml:"default_class_name"`

	// File extensions for the two forms (leading dot included).
	ScriptExt string `yaml:"script_ext"`
	ClassExt  string `yaml:"class_ext"`

	// Subdirectory (next to the class file) that receives generated scripts.
	ScriptDir string `yaml:"script_dir"`

	// Batch conversion concurrency.
	Workers int `yaml:"workers"`

	Watch WatchConfig `yaml:"watch"`

	Logging LoggingConfig `yaml:"logging"`
}

// WatchConfig configures the file watcher.
type WatchConfig struct {
	Debounce string `yaml:"debounce"` // duration string, e.g. "300ms"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		SourceRoot:       ".",
		DefaultClassName: "GeneratedClass",
		ScriptExt:        ".javax",
		ClassExt:         ".java",
		ScriptDir:        "javax",
		Workers:          4,
		Watch: WatchConfig{
			Debounce: "300ms",
		},
		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults (with environment overrides applied).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if root := os.Getenv("JAVAXIFY_SOURCE_ROOT"); root != "" {
		c.SourceRoot = root
	}
	if w := os.Getenv("JAVAXIFY_WORKERS"); w != "" {
		if n, err := strconv.Atoi(w); err == nil {
			c.Workers = n
		}
	}
	if lvl := os.Getenv("JAVAXIFY_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if dbg := os.Getenv("JAVAXIFY_DEBUG"); dbg != "" {
		if on, err := strconv.ParseBool(dbg); err == nil {
			c.Logging.DebugMode = on
		}
	}
}

// GetWatchDebounce returns the watcher debounce window as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 300 * time.Millisecond
	}
	return d
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	for name, ext := range map[string]string{"script_ext": c.ScriptExt, "class_ext": c.ClassExt} {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%s must start with a dot: %q", name, ext)
		}
	}
	if c.ScriptExt == c.ClassExt {
		return fmt.Errorf("script_ext and class_ext must differ (both %q)", c.ScriptExt)
	}
	if c.ScriptDir == "" || strings.ContainsAny(c.ScriptDir, `/\`) {
		return fmt.Errorf("script_dir must be a single directory name: %q", c.ScriptDir)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}
