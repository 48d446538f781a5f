package repository

import (
	"context"

	"github.com/compozy/verstamp/pkg/versioninfo"
)

// GitRepository reads provenance of HEAD straight from the repository
// storage, without a git executable.

type GitRepository interface {
	versioninfo.Source
	HeadCommit(ctx context.Context) (string, error)
}
