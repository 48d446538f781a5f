// Package versioninfo assembles a build's version identity and renders it
// for --version output.
package versioninfo

import (
	"fmt"
	"strings"
)

// VersionInfo is the immutable version record of one build.
type VersionInfo struct {
	Name         string  `json:"name"`
	Major        uint8   `json:"major"`
	Minor        uint8   `json:"minor"`
	Patch        uint16  `json:"patch"`
	HostCompiler *string `json:"host_compiler,omitempty"`
	CommitHash   *string `json:"commit_hash,omitempty"`
	CommitDate   *string `json:"commit_date,omitempty"`
}

// SemverString returns the numeric triple as major.minor.patch.
func (v *VersionInfo) SemverString() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// String renders the record as a single line.
// The commit date is only shown alongside a commit hash, and the host
// compiler channel is never shown.
func (v *VersionInfo) String() string {
	if v.CommitHash == nil {
		return fmt.Sprintf("%s %s", v.Name, v.SemverString())
	}
	return fmt.Sprintf(
		"%s %s (%s %s)",
		v.Name,
		v.SemverString(),
		strings.TrimSpace(*v.CommitHash),
		strings.TrimSpace(valueOrEmpty(v.CommitDate)),
	)
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
