package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"siteaudit-backend/internal/bootstrap"
	"siteaudit-backend/internal/shared/config"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "audit",
		Short:         "Run page audits from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newAnalyzersCommand())

	return rootCmd
}

func newAnalyzersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyzers",
		Short: "List available analyzers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.BuildCLI(config.Load())
			if err != nil {
				return err
			}
			for _, name := range app.AuditsService.Analyzers() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
