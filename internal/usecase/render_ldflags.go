package usecase

import (
	"fmt"
	"strings"

	"github.com/compozy/verstamp/pkg/versioninfo"
)

// RenderLdflagsUseCase renders a version record as `go build -ldflags`
// assignments for the string variables Major, Minor, Patch, CommitHash and
// CommitDate of a target package.

type RenderLdflagsUseCase struct{}

// Execute runs the use case.
func (uc *RenderLdflagsUseCase) Execute(info *versioninfo.VersionInfo, pkgPath string) (string, error) {
	if err := validatePackagePath(pkgPath); err != nil {
		return "", err
	}
	flags := []string{
		assignment(pkgPath, "Major", fmt.Sprint(info.Major)),
		assignment(pkgPath, "Minor", fmt.Sprint(info.Minor)),
		assignment(pkgPath, "Patch", fmt.Sprint(info.Patch)),
	}
	optional := []struct {
		name  string
		value *string
	}{
		{"CommitHash", info.CommitHash},
		{"CommitDate", info.CommitDate},
	}
	for _, field := range optional {
		if field.value == nil {
			continue
		}
		value := strings.TrimSpace(*field.value)
		if err := validateValue(field.name, value); err != nil {
			return "", err
		}
		flags = append(flags, assignment(pkgPath, field.name, value))
	}
	return strings.Join(flags, " "), nil
}

func assignment(pkgPath, name, value string) string {
	return fmt.Sprintf("-X '%s.%s=%s'", pkgPath, name, value)
}

// validateValue rejects characters the -ldflags splitter cannot carry
// inside a single-quoted assignment.
func validateValue(name, value string) error {
	if strings.ContainsAny(value, "'\n") {
		return fmt.Errorf("invalid %s value: %q", name, value)
	}
	return nil
}

func validatePackagePath(pkgPath string) error {
	if pkgPath == "" {
		return fmt.Errorf("package path cannot be empty")
	}
	if strings.ContainsAny(pkgPath, " '\"\t\n") {
		return fmt.Errorf("invalid package path: %s", pkgPath)
	}
	return nil
}
