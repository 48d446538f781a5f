package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/compozy/verstamp/internal/config"
	"github.com/compozy/verstamp/pkg/versioninfo"
)

// ErrVersionNotConfigured is returned when neither a full version nor all
// three numeric components are configured.
var ErrVersionNotConfigured = errors.New("version is not configured: set version or major/minor/patch")

// AssembleVersionUseCase contains the logic shared by show, ldflags and generate.

type AssembleVersionUseCase struct {
	// Source fills in commit provenance the build step did not supply. May be nil.
	Source versioninfo.Source
}

// Execute runs the use case.
func (uc *AssembleVersionUseCase) Execute(ctx context.Context, cfg *config.Config) (*versioninfo.VersionInfo, error) {
	if !cfg.HasComponents() && cfg.Version == "" {
		return nil, ErrVersionNotConfigured
	}
	hash := optional(cfg.CommitHash)
	date := optional(cfg.CommitDate)
	if cfg.Lookup && uc.Source != nil {
		if hash == nil {
			if v, ok := uc.Source.CommitHash(ctx); ok {
				hash = &v
			}
		}
		if date == nil {
			if v, ok := uc.Source.CommitDate(ctx); ok {
				date = &v
			}
		}
	}
	var (
		info *versioninfo.VersionInfo
		err  error
	)
	if cfg.HasComponents() {
		info, err = versioninfo.New(versioninfo.BuildInput{
			Name:       cfg.Name,
			Major:      cfg.Major,
			Minor:      cfg.Minor,
			Patch:      cfg.Patch,
			CommitHash: hash,
			CommitDate: date,
		})
	} else {
		info, err = versioninfo.FromSemver(cfg.Name, cfg.Version, hash, date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assemble version: %w", err)
	}
	return info, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
