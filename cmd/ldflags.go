package cmd

import (
	"fmt"

	"github.com/compozy/verstamp/internal/usecase"
	"github.com/spf13/cobra"
)

func newLdflagsCmd() *cobra.Command {
	var pkgPath string
	cmd := &cobra.Command{
		Use:   "ldflags",
		Short: "Print -ldflags assignments stamping the version into a package",
		Example: `  go build -ldflags "$(verstamp ldflags --package example.com/tool/internal/version)" ./...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newContainer(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()
			assemble := &usecase.AssembleVersionUseCase{Source: c.source}
			info, err := assemble.Execute(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			render := &usecase.RenderLdflagsUseCase{}
			flags, err := render.Execute(info, pkgPath)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), flags)
			return err
		},
	}
	addAssembleFlags(cmd)
	cmd.Flags().StringVar(&pkgPath, "package", "", "Import path of the package holding the version variables")
	//nolint:errcheck // the flag is registered just above
	_ = cmd.MarkFlagRequired("package")
	return cmd
}
