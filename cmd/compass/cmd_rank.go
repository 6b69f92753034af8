package main

import (
	"github.com/spf13/cobra"

	"github.com/decisionlab/compass/internal/models"
)

func newRankCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank <decision.yaml>",
		Short: "Rank the alternatives in a saved decision",
		Long: `Recompute the weighted ranking for a saved decision file and print
it with any scoring insights.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := models.LoadDecision(args[0])
			if err != nil {
				return err
			}
			printRanking(cmd.OutOrStdout(), *rec)
			return nil
		},
	}
	return cmd
}
