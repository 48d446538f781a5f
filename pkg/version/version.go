// Package version holds verstamp's own build metadata. The string variables
// are stamped at build time, for instance with the output of
// `verstamp ldflags --package github.com/compozy/verstamp/pkg/version`.
package version

import "github.com/compozy/verstamp/pkg/versioninfo"

// Name is the tool name printed by the version command.
const Name = "verstamp"

var (
	Major      = "0"
	Minor      = "1"
	Patch      = "0"
	CommitHash = ""
	CommitDate = ""
)

// Info assembles the version record from the stamped values. It panics if
// the stamped numbers are malformed, since that means the build is broken.
func Info() *versioninfo.VersionInfo {
	return versioninfo.MustNew(versioninfo.BuildInput{
		Name:       Name,
		Major:      Major,
		Minor:      Minor,
		Patch:      Patch,
		CommitHash: stamped(CommitHash),
		CommitDate: stamped(CommitDate),
	})
}

// Summary returns a human-friendly version string for CLI output.
func Summary() string {
	return Info().String()
}

func stamped(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
