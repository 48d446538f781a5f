package cmd

import (
	"github.com/compozy/verstamp/internal/repository"
	"github.com/compozy/verstamp/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd() *cobra.Command {
	var (
		output  string
		pkgName string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a Go file that rebuilds the version record at runtime",
		Example: `  //go:generate verstamp generate --package main --output zz_version.go`,
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
			generate := &usecase.GenerateSourceUseCase{}
			src, err := generate.Execute(info, pkgName)
			if err != nil {
				return err
			}
			writer := repository.NewStampWriter(c.fsRepo, "")
			if err := writer.Write(cmd.Context(), output, src); err != nil {
				return err
			}
			c.logger.Info("wrote version file", zap.String("path", output), zap.String("version", info.String()))
			return nil
		},
	}
	addAssembleFlags(cmd)
	cmd.Flags().StringVar(&output, "output", "zz_version.go", "Path of the generated file")
	cmd.Flags().StringVar(&pkgName, "package", "main", "Package name of the generated file")
	return cmd
}
