package versioninfo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInvalidComponent is returned when a numeric version component is
// missing or does not fit its field.
var ErrInvalidComponent = errors.New("invalid version component")

// BuildInput carries the raw build-time values the surrounding build system
// supplies. CommitHash and CommitDate stay nil when the build step did not
// populate them.
type BuildInput struct {
	Name       string
	Major      string
	Minor      string
	Patch      string
	CommitHash *string
	CommitDate *string
}

// New parses the build input into a VersionInfo. It performs no I/O besides
// reading the release channel override from the environment.
func New(in BuildInput) (*VersionInfo, error) {
	major, err := parseComponent("major", in.Major, 8)
	if err != nil {
		return nil, err
	}
	minor, err := parseComponent("minor", in.Minor, 8)
	if err != nil {
		return nil, err
	}
	patch, err := parseComponent("patch", in.Patch, 16)
	if err != nil {
		return nil, err
	}
	channel := Channel()
	return &VersionInfo{
		Name:         in.Name,
		Major:        uint8(major),
		Minor:        uint8(minor),
		Patch:        uint16(patch),
		HostCompiler: &channel,
		CommitHash:   clone(in.CommitHash),
		CommitDate:   clone(in.CommitDate),
	}, nil
}

// MustNew is like New but panics if the input is malformed. It is meant for
// package-level initialization where a bad version is a broken build.
func MustNew(in BuildInput) *VersionInfo {
	info, err := New(in)
	if err != nil {
		panic(fmt.Sprintf("versioninfo: %v", err))
	}
	return info
}

// FromSemver builds a VersionInfo from a full semantic version string such
// as "v1.2.3-rc.1". Pre-release and build metadata are dropped.
func FromSemver(name, version string, hash, date *string) (*VersionInfo, error) {
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return nil, fmt.Errorf("failed to parse version %q: %w", version, err)
	}
	return New(BuildInput{
		Name:       name,
		Major:      strconv.FormatUint(v.Major(), 10),
		Minor:      strconv.FormatUint(v.Minor(), 10),
		Patch:      strconv.FormatUint(v.Patch(), 10),
		CommitHash: hash,
		CommitDate: date,
	})
}

func parseComponent(field, raw string, bitSize int) (uint64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is not set", ErrInvalidComponent, field)
	}
	n, err := strconv.ParseUint(raw, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %w", ErrInvalidComponent, field, raw, err)
	}
	return n, nil
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
