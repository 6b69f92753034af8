package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/decisionlab/compass/internal/money"
)

func newParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <amount>",
		Short: "Parse an abbreviated currency amount",
		Long: `Parse an amount like "$2M" or "-$500K" and print both its numeric
value and its normalized abbreviated form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := money.ParseAmount(args[0])
			if math.IsNaN(v) {
				return &InvalidInputError{Message: fmt.Sprintf("%q is not a valid amount", args[0])}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.2f\t%s\n", v, money.FormatAmount(v))
			return nil
		},
	}
	return cmd
}
