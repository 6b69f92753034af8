package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decisionlab/compass/internal/validation"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <decision.yaml>...",
		Short: "Validate decision files against the schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				violations, err := validation.ValidateDecisionFile(path)
				if err != nil {
					return err
				}
				if len(violations) == 0 {
					fmt.Fprintf(out, "%s: ok\n", path)
					continue
				}
				failed++
				fmt.Fprintf(out, "%s:\n", path)
				for _, v := range violations {
					fmt.Fprintf(out, "  %s\n", v)
				}
			}
			if failed > 0 {
				return &InvalidInputError{Message: fmt.Sprintf("%d file(s) failed validation", failed)}
			}
			return nil
		},
	}
	return cmd
}
