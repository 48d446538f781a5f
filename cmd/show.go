package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/compozy/verstamp/internal/usecase"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Assemble the version record and print it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newContainer(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = c.logger.Sync() }()
			uc := &usecase.AssembleVersionUseCase{Source: c.source}
			info, err := uc.Execute(cmd.Context(), c.cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err = fmt.Fprintln(out, info.String())
			return err
		},
	}
	addAssembleFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full record as JSON")
	return cmd
}
