package versioninfo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepo(t *testing.T) (string, string) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "test.txt"), []byte("test content"), 0644)
	require.NoError(t, err)
	_, err = wt.Add("test.txt")
	require.NoError(t, err)
	sig := &object.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
	}
	hash, err := wt.Commit("Initial commit", &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(t, err)
	return dir, hash.String()
}

func TestCommandSource(t *testing.T) {
	ctx := context.Background()
	t.Run("Should return absent values for missing executable", func(t *testing.T) {
		src := &CommandSource{Binary: "verstamp-no-such-git-binary"}
		hash, ok := src.CommitHash(ctx)
		assert.False(t, ok)
		assert.Empty(t, hash)
		date, ok := src.CommitDate(ctx)
		assert.False(t, ok)
		assert.Empty(t, date)
	})
	t.Run("Should return absent values outside a repository", func(t *testing.T) {
		src := &CommandSource{Dir: t.TempDir()}
		_, ok := src.CommitHash(ctx)
		assert.False(t, ok)
		_, ok = src.CommitDate(ctx)
		assert.False(t, ok)
	})
	t.Run("Should return absent value for missing directory", func(t *testing.T) {
		src := &CommandSource{Dir: filepath.Join(t.TempDir(), "gone")}
		_, ok := src.CommitHash(ctx)
		assert.False(t, ok)
	})
	t.Run("Should return raw output inside a repository", func(t *testing.T) {
		if _, err := exec.LookPath(DefaultGitBinary); err != nil {
			t.Skip("git executable not available")
		}
		dir, full := setupTestRepo(t)
		src := &CommandSource{Dir: dir}
		hash, ok := src.CommitHash(ctx)
		require.True(t, ok)
		assert.True(t, strings.HasSuffix(hash, "\n"))
		assert.True(t, strings.HasPrefix(full, strings.TrimSpace(hash)))
		date, ok := src.CommitDate(ctx)
		require.True(t, ok)
		assert.Equal(t, "2024-01-02", date)
	})
}

type staticSource struct {
	hash, date string
}

func (s staticSource) CommitHash(context.Context) (string, bool) { return s.hash, s.hash != "" }
func (s staticSource) CommitDate(context.Context) (string, bool) { return s.date, s.date != "" }

func TestFirstOf(t *testing.T) {
	ctx := context.Background()
	t.Run("Should resolve each field from the first source that has it", func(t *testing.T) {
		src := FirstOf(staticSource{hash: "aaa"}, staticSource{hash: "bbb", date: "2024-01-01"})
		hash, ok := src.CommitHash(ctx)
		require.True(t, ok)
		assert.Equal(t, "aaa", hash)
		date, ok := src.CommitDate(ctx)
		require.True(t, ok)
		assert.Equal(t, "2024-01-01", date)
	})
	t.Run("Should report absent when no source answers", func(t *testing.T) {
		src := FirstOf(staticSource{}, &CommandSource{Binary: "verstamp-no-such-git-binary"})
		_, ok := src.CommitHash(ctx)
		assert.False(t, ok)
		_, ok = FirstOf().CommitDate(ctx)
		assert.False(t, ok)
	})
}
