package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/decisionlab/compass/internal/risk"
)

func newClassifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <description>...",
		Short: "Classify a risk description into a theme",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := strings.Join(args, " ")
			fmt.Fprintln(cmd.OutOrStdout(), risk.Classify(description))
			return nil
		},
	}
	return cmd
}
