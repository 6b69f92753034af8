package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compass",
		Short: "Compass - a guided decision-making workbench",
		Long: `Compass walks a decision through a structured flow: frame it, list
alternatives, weight criteria, score the options, model the money at
stake, and audit the risks.

The analytics run locally. AI assistance is optional and never
required to finish a decision.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newNewCommand())
	cmd.AddCommand(newRankCommand())
	cmd.AddCommand(newSimulateCommand())
	cmd.AddCommand(newClassifyCommand())
	cmd.AddCommand(newParseCommand())
	cmd.AddCommand(newCheckCommand())
	cmd.AddCommand(newServeCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
