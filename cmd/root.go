package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verstamp",
		Short: "Stamp build version identity into Go binaries",
		Long: `verstamp assembles a build's version, compiler release channel and commit provenance
into one record, and hands it to the build as -ldflags or a generated Go file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("config", "", "Config file (default is ./.verstamp.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log verbosity: terse or verbose")
	return cmd
}

func Execute() error {
	return rootCmd.Execute()
}
