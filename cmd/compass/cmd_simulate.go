package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/decisionlab/compass/internal/money"
	"github.com/decisionlab/compass/internal/montecarlo"
)

func newSimulateCommand() *cobra.Command {
	var (
		best   string
		likely string
		worst  string
		trials int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a Monte Carlo outcome simulation",
		Long: `Sample a triangular outcome distribution from three scenario values
and print summary statistics. Amounts accept shorthand like $2M or
-$500K.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := money.ParseAmount(best)
			l := money.ParseAmount(likely)
			w := money.ParseAmount(worst)
			for flag, v := range map[string]float64{"best": b, "likely": l, "worst": w} {
				if math.IsNaN(v) {
					return &InvalidInputError{Message: fmt.Sprintf("--%s is not a valid amount", flag)}
				}
			}
			if w > l || l > b {
				return &InvalidInputError{Message: "values must satisfy worst <= likely <= best"}
			}

			result := montecarlo.SimulateWithSeed(w, l, b, trials, seed)
			effective := trials
			if effective <= 0 {
				effective = montecarlo.DefaultTrials
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "trials:   %d\n", effective)
			fmt.Fprintf(out, "mean:     %s\n", money.FormatAmount(result.Mean))
			fmt.Fprintf(out, "median:   %s\n", money.FormatAmount(result.Median))
			fmt.Fprintf(out, "p10:      %s\n", money.FormatAmount(result.P10))
			fmt.Fprintf(out, "p90:      %s\n", money.FormatAmount(result.P90))
			fmt.Fprintf(out, "loss odds: %.1f%%\n", result.ProbLoss*100)
			return nil
		},
	}

	cmd.Flags().StringVar(&best, "best", "", "Best-case outcome")
	cmd.Flags().StringVar(&likely, "likely", "", "Most-likely outcome")
	cmd.Flags().StringVar(&worst, "worst", "", "Worst-case outcome")
	cmd.Flags().IntVar(&trials, "trials", montecarlo.DefaultTrials, "Number of samples to draw")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Random seed (negative for non-deterministic)")
	cmd.MarkFlagRequired("best")   //nolint:errcheck
	cmd.MarkFlagRequired("likely") //nolint:errcheck
	cmd.MarkFlagRequired("worst")  //nolint:errcheck

	return cmd
}
