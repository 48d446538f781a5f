package cmd

import (
	"github.com/compozy/verstamp/internal/config"
	"github.com/compozy/verstamp/internal/logging"
	"github.com/compozy/verstamp/internal/repository"
	"github.com/compozy/verstamp/pkg/versioninfo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// flagKeys maps command flags to config keys.
var flagKeys = map[string]string{
	"log-level":   "log_level",
	"name":        "name",
	"version":     "version",
	"major":       "major",
	"minor":       "minor",
	"patch":       "patch",
	"commit-hash": "commit_hash",
	"commit-date": "commit_date",
	"lookup":      "lookup",
	"source":      "source",
	"git-binary":  "git_binary",
	"repo-dir":    "repo_dir",
}

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	logger *zap.Logger

	fsRepo repository.FileSystemRepository
	source versioninfo.Source
}

// newContainer creates a new container with all the dependencies.
func newContainer(cmd *cobra.Command) (*container, error) {
	v := viper.New()
	for flagName, key := range flagKeys {
		if flag := cmd.Flag(flagName); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, err
			}
		}
	}
	configPath := ""
	if flag := cmd.Flag("config"); flag != nil {
		configPath = flag.Value.String()
	}
	cfg, err := config.LoadConfigWith(v, configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return &container{
		cfg:    cfg,
		logger: logger,
		fsRepo: repository.FileSystemRepository(afero.NewOsFs()),
		source: newSource(cfg, logger),
	}, nil
}

// newSource picks the provenance lookup for the configured source. A
// repository that cannot be opened just means there is nothing to look up.
func newSource(cfg *config.Config, logger *zap.Logger) versioninfo.Source {
	command := &versioninfo.CommandSource{
		Binary: cfg.GitBinary,
		Dir:    cfg.RepoDir,
		Logger: logger,
	}
	switch cfg.Source {
	case config.SourceNone:
		return nil
	case config.SourceExec:
		return command
	}
	gitRepo, err := repository.NewGitRepository(cfg.RepoDir)
	if err != nil {
		logger.Debug("git repository unavailable", zap.String("dir", cfg.RepoDir), zap.Error(err))
		if cfg.Source == config.SourceAuto {
			return command
		}
		return nil
	}
	if cfg.Source == config.SourceAuto {
		return versioninfo.FirstOf(command, gitRepo)
	}
	return gitRepo
}

// InitCommands initializes all commands with their dependencies
func InitCommands() error {
	addCommands(rootCmd)
	return nil
}

func addCommands(root *cobra.Command) {
	root.AddCommand(
		newShowCmd(),
		newLdflagsCmd(),
		newGenerateCmd(),
		newVersionCmd(),
	)
}

// addAssembleFlags registers the flags every assembling command accepts.
func addAssembleFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("name", "", "Tool name printed before the version")
	flags.String("version", "", "Full semantic version, used when major/minor/patch are not all set")
	flags.String("major", "", "Major version component")
	flags.String("minor", "", "Minor version component")
	flags.String("patch", "", "Patch version component")
	flags.String("commit-hash", "", "Commit hash captured by the build step")
	flags.String("commit-date", "", "Commit date captured by the build step")
	flags.Bool("lookup", true, "Query source control for commit values the build step did not supply")
	flags.String("source", "", "Commit lookup source: exec, gogit, auto or none")
	flags.String("git-binary", "", "git executable used by the exec source")
	flags.String("repo-dir", "", "Directory to query for commit values")
}
