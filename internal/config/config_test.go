package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"GIT_HASH", "COMMIT_DATE", "VERSION", "VERSION_MAJOR", "VERSION_MINOR", "VERSION_PATCH",
		"VERSTAMP_COMMIT_HASH", "VERSTAMP_COMMIT_DATE", "VERSTAMP_VERSION", "VERSTAMP_NAME",
		"VERSTAMP_MAJOR", "VERSTAMP_MINOR", "VERSTAMP_PATCH", "VERSTAMP_SOURCE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), ".verstamp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Should apply defaults without a config file", func(t *testing.T) {
		clearEnv(t)
		chdir(t, t.TempDir())
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})
	t.Run("Should read values from file", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "name: clippy\nmajor: 0\nminor: 1\npatch: 300\nsource: gogit\nlookup: false\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "clippy", cfg.Name)
		assert.Equal(t, "0", cfg.Major)
		assert.Equal(t, "1", cfg.Minor)
		assert.Equal(t, "300", cfg.Patch)
		assert.Equal(t, SourceGoGit, cfg.Source)
		assert.False(t, cfg.Lookup)
		assert.True(t, cfg.HasComponents())
	})
	t.Run("Should read build step values from legacy env names", func(t *testing.T) {
		clearEnv(t)
		chdir(t, t.TempDir())
		t.Setenv("GIT_HASH", "abc123\n")
		t.Setenv("COMMIT_DATE", "2024-01-01")
		t.Setenv("VERSION", "v1.2.3")
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "abc123\n", cfg.CommitHash)
		assert.Equal(t, "2024-01-01", cfg.CommitDate)
		assert.Equal(t, "v1.2.3", cfg.Version)
		assert.False(t, cfg.HasComponents())
	})
	t.Run("Should prefer prefixed env over legacy names", func(t *testing.T) {
		clearEnv(t)
		chdir(t, t.TempDir())
		t.Setenv("GIT_HASH", "legacy")
		t.Setenv("VERSTAMP_COMMIT_HASH", "prefixed")
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "prefixed", cfg.CommitHash)
	})
	t.Run("Should let bound flags override the file", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "name: from-file\n")
		v := viper.New()
		v.Set("name", "from-flag")
		cfg, err := LoadConfigWith(v, path)
		require.NoError(t, err)
		assert.Equal(t, "from-flag", cfg.Name)
	})
	t.Run("Should fail for explicit missing file", func(t *testing.T) {
		clearEnv(t)
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
	t.Run("Should fail validation for unknown source", func(t *testing.T) {
		clearEnv(t)
		path := writeConfig(t, "source: svn\n")
		cfg, err := LoadConfig(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config validation failed")
		assert.Nil(t, cfg)
	})
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty name", mutate: func(c *Config) { c.Name = " " }, wantErr: "name cannot be empty"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log_level"},
		{name: "missing git binary", mutate: func(c *Config) { c.GitBinary = "" }, wantErr: "git_binary"},
		{name: "gogit needs no binary", mutate: func(c *Config) { c.Source = SourceGoGit; c.GitBinary = "" }},
		{name: "empty repo dir", mutate: func(c *Config) { c.RepoDir = "" }, wantErr: "repo_dir"},
		{name: "parent repo dir", mutate: func(c *Config) { c.RepoDir = ".." }},
		{name: "nested parent repo dir", mutate: func(c *Config) { c.RepoDir = "../../tool" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
