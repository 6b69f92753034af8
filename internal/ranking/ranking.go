// Package ranking computes weighted multi-criteria rankings of
// decision alternatives.
package ranking

import (
	"log/slog"
	"sort"

	"github.com/decisionlab/compass/internal/models"
)

// RankedAlternative pairs an alternative with its normalized weighted
// score on the 1-10 scale.
type RankedAlternative struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Rank computes a weighted score for each alternative over the given
// criteria and returns the alternatives sorted descending by score,
// ties keeping input order.
//
// The weighted sum is normalized by the sum of the given criteria's
// weights rather than assuming they total 1, so callers may pass a
// criteria subset (the insight detector relies on this). Missing
// score entries count as the neutral midpoint. Empty alternatives,
// empty criteria, or a zero total weight yield an empty slice. Rank
// never panics; an internal failure is logged and reported as empty.
func Rank(alternatives []models.Alternative, criteria []models.Criterion, scores models.ScoreMatrix) (ranked []RankedAlternative) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("ranking failed", "panic", r)
			ranked = nil
		}
	}()

	if len(alternatives) == 0 || len(criteria) == 0 {
		return nil
	}

	totalWeight := 0.0
	for _, c := range criteria {
		totalWeight += c.Weight
	}
	if totalWeight == 0 {
		return nil
	}

	ranked = make([]RankedAlternative, 0, len(alternatives))
	for _, alt := range alternatives {
		sum := 0.0
		for _, c := range criteria {
			sum += c.Weight * float64(scores.Get(alt.ID, c.ID))
		}
		ranked = append(ranked, RankedAlternative{
			ID:    alt.ID,
			Name:  alt.Name,
			Score: sum / totalWeight,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
