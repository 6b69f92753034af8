package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisionlab/compass/internal/models"
	"github.com/decisionlab/compass/internal/ranking"
)

func twoAlternatives(scoreA, scoreB int) ([]models.Alternative, []models.Criterion, models.ScoreMatrix) {
	alts := []models.Alternative{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
	}
	crits := []models.Criterion{{ID: "c", Name: "Overall", Weight: 1}}
	scores := models.ScoreMatrix{
		"a": {"c": scoreA},
		"b": {"c": scoreB},
	}
	return alts, crits, scores
}

func findKind(out []Insight, kind Kind) *Insight {
	for i := range out {
		if out[i].Kind == kind {
			return &out[i]
		}
	}
	return nil
}

func TestDetect_ClusteredFires(t *testing.T) {
	alts, crits, scores := twoAlternatives(8, 8)
	// Weighted scores of 8.0 and 8.5 via two criteria.
	crits = []models.Criterion{
		{ID: "c1", Name: "One", Weight: 0.5},
		{ID: "c2", Name: "Two", Weight: 0.5},
	}
	scores = models.ScoreMatrix{
		"a": {"c1": 8, "c2": 8},
		"b": {"c1": 9, "c2": 8},
	}
	ranked := ranking.Rank(alts, crits, scores)

	out := Detect(ranked, alts, crits, scores)
	require.NotNil(t, findKind(out, KindClustered), "expected clustered insight for 8.0 vs 8.5")
}

func TestDetect_ClusteredDoesNotFireOnWideSpread(t *testing.T) {
	alts, crits, scores := twoAlternatives(3, 9)
	ranked := ranking.Rank(alts, crits, scores)

	out := Detect(ranked, alts, crits, scores)
	assert.Nil(t, findKind(out, KindClustered))
}

func TestDetect_ClusteredNeedsTwoAlternatives(t *testing.T) {
	alts := []models.Alternative{{ID: "a", Name: "Alpha"}}
	crits := []models.Criterion{{ID: "c", Name: "Overall", Weight: 1}}
	scores := models.ScoreMatrix{"a": {"c": 5}}
	ranked := ranking.Rank(alts, crits, scores)

	out := Detect(ranked, alts, crits, scores)
	assert.Nil(t, findKind(out, KindClustered))
}

func TestDetect_DominantCriterionFlipsWinner(t *testing.T) {
	alts := []models.Alternative{
		{ID: "build", Name: "Build"},
		{ID: "buy", Name: "Buy"},
	}
	crits := []models.Criterion{
		{ID: "cost", Name: "Cost", Weight: 0.6},
		{ID: "fit", Name: "Fit", Weight: 0.4},
	}
	// Buy wins on cost; without cost, Build wins on fit.
	scores := models.ScoreMatrix{
		"build": {"cost": 2, "fit": 9},
		"buy":   {"cost": 9, "fit": 3},
	}
	ranked := ranking.Rank(alts, crits, scores)
	require.Equal(t, "buy", ranked[0].ID)

	out := Detect(ranked, alts, crits, scores)
	dominant := findKind(out, KindDominant)
	require.NotNil(t, dominant)
	assert.Contains(t, dominant.Message, "Cost")
	assert.Contains(t, dominant.Message, "Build")
}

func TestDetect_DominantStopsAtFirstCriterion(t *testing.T) {
	alts := []models.Alternative{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
	}
	// Both criteria individually decide the winner; only the first in
	// order may be reported.
	crits := []models.Criterion{
		{ID: "c1", Name: "One", Weight: 0.5},
		{ID: "c2", Name: "Two", Weight: 0.5},
	}
	scores := models.ScoreMatrix{
		"a": {"c1": 9, "c2": 2},
		"b": {"c1": 2, "c2": 8},
	}
	ranked := ranking.Rank(alts, crits, scores)

	out := Detect(ranked, alts, crits, scores)
	dominantCount := 0
	for _, in := range out {
		if in.Kind == KindDominant {
			dominantCount++
		}
	}
	assert.LessOrEqual(t, dominantCount, 1)
}

func TestDetect_InflatedScores(t *testing.T) {
	alts := []models.Alternative{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
	}
	crits := []models.Criterion{
		{ID: "c1", Name: "One", Weight: 0.5},
		{ID: "c2", Name: "Two", Weight: 0.5},
	}
	scores := models.ScoreMatrix{
		"a": {"c1": 9, "c2": 8},
		"b": {"c1": 8, "c2": 7},
	}
	ranked := ranking.Rank(alts, crits, scores)

	out := Detect(ranked, alts, crits, scores)
	require.NotNil(t, findKind(out, KindInflated))
}

func TestDetect_NoInflationAtSpreadScores(t *testing.T) {
	alts, crits, scores := twoAlternatives(3, 9)
	ranked := ranking.Rank(alts, crits, scores)

	out := Detect(ranked, alts, crits, scores)
	assert.Nil(t, findKind(out, KindInflated))
}

func TestDetect_Deterministic(t *testing.T) {
	alts := []models.Alternative{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
	}
	crits := []models.Criterion{
		{ID: "c1", Name: "One", Weight: 0.5},
		{ID: "c2", Name: "Two", Weight: 0.5},
	}
	scores := models.ScoreMatrix{
		"a": {"c1": 8, "c2": 9},
		"b": {"c1": 9, "c2": 8},
	}
	ranked := ranking.Rank(alts, crits, scores)

	first := Detect(ranked, alts, crits, scores)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Detect(ranked, alts, crits, scores))
	}
}

func TestDetect_EmptyInputs(t *testing.T) {
	assert.Empty(t, Detect(nil, nil, nil, nil))
}
