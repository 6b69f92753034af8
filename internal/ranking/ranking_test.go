package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisionlab/compass/internal/models"
)

func buildVsBuy() ([]models.Alternative, []models.Criterion, models.ScoreMatrix) {
	alts := []models.Alternative{
		{ID: "build", Name: "Build"},
		{ID: "buy", Name: "Buy"},
	}
	crits := []models.Criterion{
		{ID: "cost", Name: "Cost", Weight: 0.5},
		{ID: "time", Name: "Time", Weight: 0.3},
		{ID: "fit", Name: "Fit", Weight: 0.2},
	}
	scores := models.ScoreMatrix{
		"build": {"cost": 4, "time": 3, "fit": 9},
		"buy":   {"cost": 8, "time": 9, "fit": 5},
	}
	return alts, crits, scores
}

func TestRank_BuildVsBuy(t *testing.T) {
	alts, crits, scores := buildVsBuy()

	ranked := Rank(alts, crits, scores)
	require.Len(t, ranked, 2)

	assert.Equal(t, "Buy", ranked[0].Name)
	assert.InDelta(t, 7.7, ranked[0].Score, 1e-9)
	assert.Equal(t, "Build", ranked[1].Name)
	assert.InDelta(t, 4.7, ranked[1].Score, 1e-9)
}

func TestRank_SortedDescendingWithinBounds(t *testing.T) {
	alts, crits, scores := buildVsBuy()

	ranked := Rank(alts, crits, scores)
	require.Len(t, ranked, len(alts))
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}
	for _, ra := range ranked {
		assert.GreaterOrEqual(t, ra.Score, 1.0)
		assert.LessOrEqual(t, ra.Score, 10.0)
	}
}

func TestRank_EmptyInputs(t *testing.T) {
	alts, crits, scores := buildVsBuy()

	assert.Empty(t, Rank(nil, crits, scores))
	assert.Empty(t, Rank(alts, nil, scores))
}

func TestRank_ZeroTotalWeight(t *testing.T) {
	alts, _, scores := buildVsBuy()
	crits := []models.Criterion{
		{ID: "cost", Name: "Cost", Weight: 0},
		{ID: "time", Name: "Time", Weight: 0},
	}

	assert.Empty(t, Rank(alts, crits, scores))
}

func TestRank_MissingScoresDefaultToNeutral(t *testing.T) {
	alts := []models.Alternative{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}
	crits := []models.Criterion{{ID: "c", Name: "C", Weight: 1}}
	scores := models.ScoreMatrix{"a": {"c": 9}}

	ranked := Rank(alts, crits, scores)
	require.Len(t, ranked, 2)
	assert.Equal(t, "A", ranked[0].Name)
	assert.InDelta(t, float64(models.NeutralScore), ranked[1].Score, 1e-9)
}

func TestRank_SubsetOfCriteriaRenormalizes(t *testing.T) {
	alts, crits, scores := buildVsBuy()

	// Drop "cost": Build = (3*.3+9*.2)/.5 = 5.4, Buy = (9*.3+5*.2)/.5 = 7.4
	ranked := Rank(alts, crits[1:], scores)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Buy", ranked[0].Name)
	assert.InDelta(t, 7.4, ranked[0].Score, 1e-9)
	assert.InDelta(t, 5.4, ranked[1].Score, 1e-9)
}

func TestRank_TiesKeepInputOrder(t *testing.T) {
	alts := []models.Alternative{
		{ID: "first", Name: "First"},
		{ID: "second", Name: "Second"},
		{ID: "third", Name: "Third"},
	}
	crits := []models.Criterion{{ID: "c", Name: "C", Weight: 1}}
	scores := models.ScoreMatrix{
		"first":  {"c": 5},
		"second": {"c": 5},
		"third":  {"c": 5},
	}

	ranked := Rank(alts, crits, scores)
	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{ranked[0].ID, ranked[1].ID, ranked[2].ID})
}

func TestRank_NilScoreMatrix(t *testing.T) {
	alts, crits, _ := buildVsBuy()

	ranked := Rank(alts, crits, nil)
	require.Len(t, ranked, 2)
	for _, ra := range ranked {
		assert.InDelta(t, float64(models.NeutralScore), ra.Score, 1e-9)
	}
}
