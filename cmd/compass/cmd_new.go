package main

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/decisionlab/compass/internal/advisor"
	"github.com/decisionlab/compass/internal/models"
	"github.com/decisionlab/compass/internal/wizard"
)

func newNewCommand() *cobra.Command {
	var (
		noAI   bool
		polish bool
		output string
		seed   int64
		trials int
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Work through a decision interactively",
		Long: `Start the interactive decision wizard.

The wizard walks through framing, alternatives, criteria, scoring,
outcome uncertainty, and (for larger decisions) a risk pre-mortem,
then prints a summary. AI assistance is offered at several steps and
can always be declined; --no-ai disables it entirely.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := wizard.NewSession(
				wizard.WithSeed(seed),
				wizard.WithTrials(trials),
			)

			var adv wizard.Advisor
			var client *advisor.Client
			if !noAI {
				c, err := advisor.New()
				if err != nil {
					slog.Debug("advisor unavailable", "error", err)
					fmt.Fprintln(cmd.OutOrStdout(), "AI assistance unavailable; running fully manual.")
				} else {
					client = c
					adv = c
				}
			}

			runner := wizard.NewRunner(session, cmd.InOrStdin(), cmd.OutOrStdout(), adv)
			rec, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			var memo bytes.Buffer
			printSynthesis(&memo, rec)
			text := memo.String()
			if polish && client != nil {
				polished, err := client.PolishMemo(cmd.Context(), text)
				if err != nil {
					slog.Debug("memo polish failed", "error", err)
				} else {
					text = polished + "\n"
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), text)

			if output != "" {
				if err := models.SaveDecision(&rec, output); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved decision to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Disable AI assistance")
	cmd.Flags().BoolVar(&polish, "polish", false, "Have the AI rewrite the final summary for clarity")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Save the finished decision to a YAML file")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Random seed for the simulation (negative for non-deterministic)")
	cmd.Flags().IntVar(&trials, "trials", 0, "Monte Carlo trial count (0 for the default)")

	return cmd
}
