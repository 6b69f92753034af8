package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/decisionlab/compass/internal/insights"
	"github.com/decisionlab/compass/internal/models"
	"github.com/decisionlab/compass/internal/money"
	"github.com/decisionlab/compass/internal/ranking"
)

// printRanking renders the ranked alternatives as an aligned table
// followed by any detector insights.
func printRanking(w io.Writer, rec models.DecisionRecord) {
	ranked := ranking.Rank(rec.Alternatives, rec.Criteria, rec.Scores)
	if len(ranked) == 0 {
		fmt.Fprintln(w, "No ranking available; the decision needs alternatives, criteria, and weights.")
		return
	}

	nameWidth := len("Alternative")
	for _, ra := range ranked {
		if cw := runewidth.StringWidth(ra.Name); cw > nameWidth {
			nameWidth = cw
		}
	}

	fmt.Fprintf(w, "  %s  %s\n", padRight("Alternative", nameWidth), "Score")
	for i, ra := range ranked {
		marker := "  "
		if i == 0 {
			marker = "> "
		}
		fmt.Fprintf(w, "%s%s  %5.1f\n", marker, padRight(ra.Name, nameWidth), ra.Score)
	}

	for _, in := range insights.Detect(ranked, rec.Alternatives, rec.Criteria, rec.Scores) {
		fmt.Fprintf(w, "  ! %s\n", in.Message)
	}
}

// printSynthesis renders the full end-of-wizard summary.
func printSynthesis(w io.Writer, rec models.DecisionRecord) {
	fmt.Fprintf(w, "\nDecision: %s\n", rec.Statement)
	if rec.Meta.ReversibilityLabel != "" {
		fmt.Fprintf(w, "Stakes: %s, %s\n", money.FormatAmount(rec.Meta.Threshold), rec.Meta.ReversibilityLabel)
	}
	fmt.Fprintln(w)

	printRanking(w, rec)

	if rec.TopChoice != nil && rec.MCResult != nil {
		mc := rec.MCResult
		fmt.Fprintf(w, "\nOutcome model for %q (%s worst, %s likely, %s best):\n",
			rec.TopChoice.Name,
			money.FormatAmount(rec.TopChoice.WorstCase),
			money.FormatAmount(rec.TopChoice.MostLikely),
			money.FormatAmount(rec.TopChoice.BestCase))
		fmt.Fprintf(w, "  mean %s, median %s, p10 %s, p90 %s, loss odds %.0f%%\n",
			money.FormatAmount(mc.Mean), money.FormatAmount(mc.Median),
			money.FormatAmount(mc.P10), money.FormatAmount(mc.P90), mc.ProbLoss*100)
	}

	if len(rec.Risks) > 0 {
		fmt.Fprintln(w, "\nRisks:")
		descWidth := 0
		for _, r := range rec.Risks {
			if cw := runewidth.StringWidth(r.Description); cw > descWidth {
				descWidth = cw
			}
		}
		for _, r := range rec.Risks {
			fmt.Fprintf(w, "  %s  [%s] %s likelihood, %s impact\n",
				padRight(r.Description, descWidth), r.Theme, r.Likelihood, r.Impact)
			if r.Mitigation != "" {
				fmt.Fprintf(w, "  %s  mitigation: %s\n", padRight("", descWidth), r.Mitigation)
			}
		}
	}
	fmt.Fprintln(w)
}

// padRight pads s with spaces so its terminal display width reaches
// width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
