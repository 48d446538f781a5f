package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Lookup sources for commit provenance.
const (
	SourceExec  = "exec"
	SourceGoGit = "gogit"
	SourceAuto  = "auto"
	SourceNone  = "none"
)

// Log levels accepted by log_level.
const (
	LogLevelTerse   = "terse"
	LogLevelVerbose = "verbose"
)

const (
	configName = ".verstamp"
	envPrefix  = "VERSTAMP"
)

type Config struct {
	Name       string `mapstructure:"name"`
	Version    string `mapstructure:"version"`
	Major      string `mapstructure:"major"`
	Minor      string `mapstructure:"minor"`
	Patch      string `mapstructure:"patch"`
	CommitHash string `mapstructure:"commit_hash"`
	CommitDate string `mapstructure:"commit_date"`
	Lookup     bool   `mapstructure:"lookup"`
	Source     string `mapstructure:"source"`
	GitBinary  string `mapstructure:"git_binary"`
	RepoDir    string `mapstructure:"repo_dir"`
	LogLevel   string `mapstructure:"log_level"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Name:      "verstamp",
		Lookup:    true,
		Source:    SourceExec,
		GitBinary: "git",
		RepoDir:   ".",
		LogLevel:  LogLevelTerse,
	}
}

// HasComponents reports whether all three numeric components are configured.
func (c *Config) HasComponents() bool {
	return c.Major != "" && c.Minor != "" && c.Patch != ""
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name cannot be empty")
	}
	switch c.Source {
	case SourceExec, SourceGoGit, SourceAuto, SourceNone:
	default:
		return fmt.Errorf("invalid source: %s", c.Source)
	}
	switch c.LogLevel {
	case LogLevelTerse, LogLevelVerbose:
	default:
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	if (c.Source == SourceExec || c.Source == SourceAuto) && c.GitBinary == "" {
		return errors.New("git_binary cannot be empty")
	}
	if c.RepoDir == "" {
		return errors.New("repo_dir cannot be empty")
	}
	return nil
}

// LoadConfig reads configuration into a fresh viper instance.
func LoadConfig(path string) (*Config, error) {
	return LoadConfigWith(viper.New(), path)
}

// LoadConfigWith reads configuration from the config file, the environment
// and whatever v already has bound (typically command flags). An empty path
// searches for .verstamp.yaml in the working directory.
func LoadConfigWith(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	// Configure environment variables
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// BindEnv allows multiple env vars - it will check them in order
	bindings := map[string][]string{
		"commit_hash": {"VERSTAMP_COMMIT_HASH", "GIT_HASH"},
		"commit_date": {"VERSTAMP_COMMIT_DATE", "COMMIT_DATE"},
		"version":     {"VERSTAMP_VERSION", "VERSION"},
		"major":       {"VERSTAMP_MAJOR", "VERSION_MAJOR"},
		"minor":       {"VERSTAMP_MINOR", "VERSION_MINOR"},
		"patch":       {"VERSTAMP_PATCH", "VERSION_PATCH"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s env: %w", key, err)
		}
	}
	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("name", defaults.Name)
	v.SetDefault("lookup", defaults.Lookup)
	v.SetDefault("source", defaults.Source)
	v.SetDefault("git_binary", defaults.GitBinary)
	v.SetDefault("repo_dir", defaults.RepoDir)
	v.SetDefault("log_level", defaults.LogLevel)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}
