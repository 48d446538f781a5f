package repository

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	// ShortHashLength matches git's default abbreviation length.
	ShortHashLength = 7
	// ShortDateLayout matches `git log --date=short`.
	ShortDateLayout = "2006-01-02"
)

// gitRepository is the implementation of the GitRepository interface.

type gitRepository struct {
	repo *git.Repository
}

// NewGitRepository opens the repository containing dir.
func NewGitRepository(dir string) (GitRepository, error) {
	if dir == "" {
		dir = "."
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo}, nil
}

// HeadCommit returns the SHA of the current HEAD commit.
func (r *gitRepository) HeadCommit(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// CommitHash returns the abbreviated SHA of HEAD, always ShortHashLength
// characters long. Unlike `git rev-parse --short`, the length is not
// extended when the prefix is ambiguous.
func (r *gitRepository) CommitHash(ctx context.Context) (string, bool) {
	sha, err := r.HeadCommit(ctx)
	if err != nil {
		return "", false
	}
	return sha[:ShortHashLength], true
}

// CommitDate returns the committer date of HEAD in the committer's zone.
func (r *gitRepository) CommitDate(_ context.Context) (string, bool) {
	commit, err := r.headCommitObject()
	if err != nil {
		return "", false
	}
	return commit.Committer.When.Format(ShortDateLayout), true
}

func (r *gitRepository) headCommitObject() (*object.Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD commit: %w", err)
	}
	return commit, nil
}
