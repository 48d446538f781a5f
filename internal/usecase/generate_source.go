package usecase

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"text/template"

	"github.com/compozy/verstamp/pkg/versioninfo"
)

const sourceTemplate = `// Code generated by verstamp; DO NOT EDIT.

package {{.Package}}

import "github.com/compozy/verstamp/pkg/versioninfo"

// BuildVersion returns the version record stamped by verstamp.
func BuildVersion() *versioninfo.VersionInfo {
	in := versioninfo.BuildInput{
		Name:  {{printf "%q" .Name}},
		Major: "{{.Major}}",
		Minor: "{{.Minor}}",
		Patch: "{{.Patch}}",
	}
{{- if .HasHash}}
	hash := {{printf "%q" .Hash}}
	in.CommitHash = &hash
{{- end}}
{{- if .HasDate}}
	date := {{printf "%q" .Date}}
	in.CommitDate = &date
{{- end}}
	return versioninfo.MustNew(in)
}
`

var sourceTmpl = template.Must(template.New("source").Parse(sourceTemplate))

type sourceData struct {
	Package string
	Name    string
	Major   uint8
	Minor   uint8
	Patch   uint16
	HasHash bool
	Hash    string
	HasDate bool
	Date    string
}

// GenerateSourceUseCase renders a Go file that rebuilds a version record at
// runtime from values captured now.

type GenerateSourceUseCase struct{}

// Execute runs the use case.
func (uc *GenerateSourceUseCase) Execute(info *versioninfo.VersionInfo, pkgName string) ([]byte, error) {
	if !token.IsIdentifier(pkgName) {
		return nil, fmt.Errorf("invalid package name: %q", pkgName)
	}
	data := sourceData{
		Package: pkgName,
		Name:    info.Name,
		Major:   info.Major,
		Minor:   info.Minor,
		Patch:   info.Patch,
	}
	if info.CommitHash != nil {
		data.HasHash, data.Hash = true, *info.CommitHash
	}
	if info.CommitDate != nil {
		data.HasDate, data.Date = true, *info.CommitDate
	}
	var buf bytes.Buffer
	if err := sourceTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render source: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format source: %w", err)
	}
	return src, nil
}
