// Package insights flags qualitative anomalies in a scored decision:
// clustered rankings, a single swing criterion, and inflated scoring.
package insights

import (
	"fmt"
	"log/slog"

	"github.com/decisionlab/compass/internal/models"
	"github.com/decisionlab/compass/internal/ranking"
)

// Kind identifies which detector rule produced an insight.
type Kind string

const (
	KindClustered Kind = "clustered"
	KindDominant  Kind = "dominant"
	KindInflated  Kind = "inflated"
)

// Insight is one detector finding.
type Insight struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// inflatedRatio is the fraction of entries scoring 7 or higher above
// which score differentiation is considered lost.
const inflatedRatio = 0.7

// Detect inspects a computed ranking and its raw scores and returns
// at most one insight per rule, in a fixed order: clustered, dominant,
// inflated. All applicable rules fire; identical inputs always give
// identical output. Detect never panics; an internal failure is
// logged and reported as no insights.
func Detect(rankings []ranking.RankedAlternative, alternatives []models.Alternative, criteria []models.Criterion, scores models.ScoreMatrix) (out []Insight) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("insight detection failed", "panic", r)
			out = nil
		}
	}()

	if in := detectClustered(rankings); in != nil {
		out = append(out, *in)
	}
	if in := detectDominant(rankings, alternatives, criteria, scores); in != nil {
		out = append(out, *in)
	}
	if in := detectInflated(scores); in != nil {
		out = append(out, *in)
	}
	return out
}

// detectClustered fires when the ranked scores span less than one
// point, meaning the numbers alone can't separate the options.
func detectClustered(rankings []ranking.RankedAlternative) *Insight {
	if len(rankings) < 2 {
		return nil
	}
	spread := rankings[0].Score - rankings[len(rankings)-1].Score
	if spread >= 1.0 {
		return nil
	}
	return &Insight{
		Kind: KindClustered,
		Message: fmt.Sprintf(
			"All options score within 1 point of each other (%.1f to %.1f). The numbers won't decide this one; consider a non-numeric tie-breaker like gut feel, team energy, or strategic fit.",
			rankings[len(rankings)-1].Score, rankings[0].Score),
	}
}

// detectDominant re-ranks with each criterion removed in the given
// order and fires on the first criterion whose removal changes the
// winner.
func detectDominant(rankings []ranking.RankedAlternative, alternatives []models.Alternative, criteria []models.Criterion, scores models.ScoreMatrix) *Insight {
	if len(alternatives) < 2 || len(criteria) < 2 || len(rankings) == 0 {
		return nil
	}
	top := rankings[0].ID

	for i, c := range criteria {
		rest := make([]models.Criterion, 0, len(criteria)-1)
		rest = append(rest, criteria[:i]...)
		rest = append(rest, criteria[i+1:]...)

		reranked := ranking.Rank(alternatives, rest, scores)
		if len(reranked) == 0 || reranked[0].ID == top {
			continue
		}
		return &Insight{
			Kind: KindDominant,
			Message: fmt.Sprintf(
				"%q is the swing factor: without it, %s would rank first. Make sure its weight reflects how much it really matters.",
				c.Name, reranked[0].Name),
		}
	}
	return nil
}

// detectInflated fires when more than 70% of the entered scores are 7
// or higher.
func detectInflated(scores models.ScoreMatrix) *Insight {
	total, high := 0, 0
	for _, row := range scores {
		for _, v := range row {
			total++
			if v >= 7 {
				high++
			}
		}
	}
	if total == 0 || float64(high)/float64(total) <= inflatedRatio {
		return nil
	}
	return &Insight{
		Kind: KindInflated,
		Message: fmt.Sprintf(
			"%d of %d scores are 7 or above. When everything scores high, differentiation is lost; consider spreading scores across the full 1-10 range.",
			high, total),
	}
}
