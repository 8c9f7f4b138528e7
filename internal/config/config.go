package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/repocleaner/internal/cleaner"
	"github.com/harrison/repocleaner/internal/filter"
	"github.com/harrison/repocleaner/internal/logger"
)

// ConfigFileName is the name of the configuration file inside the home directory.
const ConfigFileName = "config.yaml"

// HistoryConfig represents run history configuration
type HistoryConfig struct {
	// Enabled records every clean invocation in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database (empty = <home>/history.db)
	DBPath string `yaml:"db_path"`
}

// Config represents repocleaner configuration options
type Config struct {
	// Repository is the local repository root (empty = resolved from the environment)
	Repository string `yaml:"repository"`

	// DeleteBuilds removes superseded snapshot builds
	DeleteBuilds bool `yaml:"delete_builds"`

	// DeleteVersions removes superseded version directories
	DeleteVersions bool `yaml:"delete_versions"`

	// ExecutionProbability is the chance in [0, 1] that an invocation runs at all
	ExecutionProbability float64 `yaml:"execution_probability"`

	// Whitelist entries are never removed
	Whitelist []string `yaml:"whitelist"`

	// PreserveLatest keeps the newest version matching each entry
	PreserveLatest []string `yaml:"preserve_latest"`

	// Blacklist entries are removed unless whitelisted or preserved
	Blacklist []string `yaml:"blacklist"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables per-run log files in this directory
	LogDir string `yaml:"log_dir"`

	// LockTimeout bounds the wait for another cleaner on the same repository
	LockTimeout time.Duration `yaml:"lock_timeout"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values.
// Nothing is deleted by default.
func DefaultConfig() *Config {
	return &Config{
		DeleteBuilds:         false,
		DeleteVersions:       false,
		ExecutionProbability: 1.0,
		LogLevel:             "info",
		LockTimeout:          30 * time.Second,
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointers tell an explicit false or zero apart from an absent key
	type yamlHistory struct {
		Enabled *bool   `yaml:"enabled"`
		DBPath  *string `yaml:"db_path"`
	}
	type yamlConfig struct {
		Repository           string      `yaml:"repository"`
		DeleteBuilds         *bool       `yaml:"delete_builds"`
		DeleteVersions       *bool       `yaml:"delete_versions"`
		ExecutionProbability *float64    `yaml:"execution_probability"`
		Whitelist            []string    `yaml:"whitelist"`
		PreserveLatest       []string    `yaml:"preserve_latest"`
		Blacklist            []string    `yaml:"blacklist"`
		LogLevel             string      `yaml:"log_level"`
		LogDir               string      `yaml:"log_dir"`
		LockTimeout          string      `yaml:"lock_timeout"`
		History              yamlHistory `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Repository != "" {
		cfg.Repository = yamlCfg.Repository
	}
	if yamlCfg.DeleteBuilds != nil {
		cfg.DeleteBuilds = *yamlCfg.DeleteBuilds
	}
	if yamlCfg.DeleteVersions != nil {
		cfg.DeleteVersions = *yamlCfg.DeleteVersions
	}
	if yamlCfg.ExecutionProbability != nil {
		cfg.ExecutionProbability = *yamlCfg.ExecutionProbability
	}
	cfg.Whitelist = yamlCfg.Whitelist
	cfg.PreserveLatest = yamlCfg.PreserveLatest
	cfg.Blacklist = yamlCfg.Blacklist
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.LockTimeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.LockTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid lock_timeout format %q: %w", yamlCfg.LockTimeout, err)
		}
		cfg.LockTimeout = timeout
	}
	if yamlCfg.History.Enabled != nil {
		cfg.History.Enabled = *yamlCfg.History.Enabled
	}
	if yamlCfg.History.DBPath != nil {
		cfg.History.DBPath = *yamlCfg.History.DBPath
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ConfigFileName))
}

// Overrides carries CLI flag values. Nil fields leave the configuration untouched.
type Overrides struct {
	Repository           *string
	DeleteBuilds         *bool
	DeleteVersions       *bool
	ExecutionProbability *float64
	Whitelist            []string
	PreserveLatest       []string
	Blacklist            []string
	LogLevel             *string
	LogDir               *string
	LockTimeout          *time.Duration
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values; filter flags
// replace the configured list when non-empty.
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Repository != nil {
		c.Repository = *o.Repository
	}
	if o.DeleteBuilds != nil {
		c.DeleteBuilds = *o.DeleteBuilds
	}
	if o.DeleteVersions != nil {
		c.DeleteVersions = *o.DeleteVersions
	}
	if o.ExecutionProbability != nil {
		c.ExecutionProbability = *o.ExecutionProbability
	}
	if len(o.Whitelist) > 0 {
		c.Whitelist = o.Whitelist
	}
	if len(o.PreserveLatest) > 0 {
		c.PreserveLatest = o.PreserveLatest
	}
	if len(o.Blacklist) > 0 {
		c.Blacklist = o.Blacklist
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
	if o.LockTimeout != nil {
		c.LockTimeout = *o.LockTimeout
	}
}

// Validate validates the configuration values and compiles every filter.
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if c.ExecutionProbability < 0 || c.ExecutionProbability > 1 {
		return fmt.Errorf("execution_probability must be within [0, 1], got %v", c.ExecutionProbability)
	}

	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.LockTimeout < 0 {
		return fmt.Errorf("lock_timeout must be >= 0, got %v", c.LockTimeout)
	}

	if _, err := c.Rules(); err != nil {
		return err
	}

	return nil
}

// Rules compiles the three filter lists.
func (c *Config) Rules() (cleaner.Rules, error) {
	whitelist, err := filter.CompileAll(c.Whitelist)
	if err != nil {
		return cleaner.Rules{}, fmt.Errorf("whitelist: %w", err)
	}
	preserve, err := filter.CompileAll(c.PreserveLatest)
	if err != nil {
		return cleaner.Rules{}, fmt.Errorf("preserve_latest: %w", err)
	}
	blacklist, err := filter.CompileAll(c.Blacklist)
	if err != nil {
		return cleaner.Rules{}, fmt.Errorf("blacklist: %w", err)
	}
	return cleaner.Rules{
		Whitelist:      whitelist,
		PreserveLatest: preserve,
		Blacklist:      blacklist,
	}, nil
}

// EngineOptions returns the cleaner options described by the configuration.
func (c *Config) EngineOptions() (cleaner.Options, error) {
	rules, err := c.Rules()
	if err != nil {
		return cleaner.Options{}, err
	}
	return cleaner.Options{
		DeleteBuilds:   c.DeleteBuilds,
		DeleteVersions: c.DeleteVersions,
		Rules:          rules,
	}, nil
}
