package versioninfo

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultGitBinary is the executable CommandSource runs when Binary is empty.
const DefaultGitBinary = "git"

// Source looks up source-control provenance for the current revision.
// Lookups are best effort: a failed lookup reports ok == false and never
// returns an error.
type Source interface {
	CommitHash(ctx context.Context) (string, bool)
	CommitDate(ctx context.Context) (string, bool)
}

// CommandSource queries provenance by running the git executable.
// Output is returned as produced, trailing newline included.
type CommandSource struct {
	// Binary is the executable to run. Defaults to DefaultGitBinary.
	Binary string
	// Dir is the working directory of the query. Empty means the current one.
	Dir string
	// Logger receives debug output about failed lookups. May be nil.
	Logger *zap.Logger
}

var defaultSource = &CommandSource{}

// CommitHash returns the abbreviated hash of HEAD in the current directory.
func CommitHash(ctx context.Context) (string, bool) {
	return defaultSource.CommitHash(ctx)
}

// CommitDate returns the short committer date of HEAD in the current directory.
func CommitDate(ctx context.Context) (string, bool) {
	return defaultSource.CommitDate(ctx)
}

// CommitHash runs `git rev-parse --short HEAD`.
func (s *CommandSource) CommitHash(ctx context.Context) (string, bool) {
	return s.query(ctx, "rev-parse", "--short", "HEAD")
}

// CommitDate runs `git log -1 --date=short --pretty=format:%cd`.
func (s *CommandSource) CommitDate(ctx context.Context) (string, bool) {
	return s.query(ctx, "log", "-1", "--date=short", "--pretty=format:%cd")
}

func (s *CommandSource) query(ctx context.Context, args ...string) (string, bool) {
	log := s.logger()
	binary := s.Binary
	if binary == "" {
		binary = DefaultGitBinary
	}
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = s.Dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			log.Debug("source-control query did not start",
				zap.String("binary", binary), zap.Strings("args", args), zap.Error(err))
			return "", false
		}
		// The process ran; whatever it printed is still usable.
		log.Debug("source-control query exited non-zero",
			zap.String("binary", binary), zap.Strings("args", args), zap.Int("exit_code", exitErr.ExitCode()))
	}
	out := stdout.Bytes()
	if !utf8.Valid(out) {
		log.Debug("source-control query produced non-UTF-8 output", zap.Strings("args", args))
		return "", false
	}
	if len(out) == 0 {
		return "", false
	}
	return string(out), true
}

func (s *CommandSource) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// FirstOf returns a Source that asks each source in order and keeps the
// first present answer. Hash and date are resolved independently.
func FirstOf(sources ...Source) Source {
	return chain(sources)
}

type chain []Source

func (c chain) CommitHash(ctx context.Context) (string, bool) {
	for _, s := range c {
		if v, ok := s.CommitHash(ctx); ok {
			return v, true
		}
	}
	return "", false
}

func (c chain) CommitDate(ctx context.Context) (string, bool) {
	for _, s := range c {
		if v, ok := s.CommitDate(ctx); ok {
			return v, true
		}
	}
	return "", false
}
