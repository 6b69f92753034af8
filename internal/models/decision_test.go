package models

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreMatrix_GetDefaultsToNeutral(t *testing.T) {
	m := ScoreMatrix{"alt-1": {"crit-1": 8}}

	assert.Equal(t, 8, m.Get("alt-1", "crit-1"))
	assert.Equal(t, NeutralScore, m.Get("alt-1", "crit-2"))
	assert.Equal(t, NeutralScore, m.Get("alt-9", "crit-1"))

	var nilMatrix ScoreMatrix
	assert.Equal(t, NeutralScore, nilMatrix.Get("a", "c"))
}

func TestScoreMatrix_SetAllocatesRows(t *testing.T) {
	m := make(ScoreMatrix)
	m.Set("alt-1", "crit-1", 3)
	m.Set("alt-1", "crit-2", 7)

	assert.Equal(t, 3, m.Get("alt-1", "crit-1"))
	assert.Equal(t, 7, m.Get("alt-1", "crit-2"))
}

func TestDecisionRecord_CloneDoesNotAlias(t *testing.T) {
	rec := DecisionRecord{
		Statement:    "Build or buy",
		Alternatives: []Alternative{{ID: "alt-1", Name: "Build"}},
		Criteria:     []Criterion{{ID: "crit-1", Name: "Cost", Weight: 1}},
		Scores:       ScoreMatrix{"alt-1": {"crit-1": 6}},
		TopChoice:    &TopChoice{ID: "alt-1", Name: "Build", BestCase: 100},
		MCResult:     &SimulationResult{Mean: 42},
		Risks:        []Risk{{Description: "Scope creep", Theme: ThemeExecution, Likelihood: LevelHigh, Impact: LevelMedium}},
	}

	cp := rec.Clone()
	cp.Alternatives[0].Name = "changed"
	cp.Criteria[0].Weight = 0.5
	cp.Scores.Set("alt-1", "crit-1", 1)
	cp.TopChoice.BestCase = 999
	cp.MCResult.Mean = 0
	cp.Risks[0].Description = "changed"

	assert.Equal(t, "Build", rec.Alternatives[0].Name)
	assert.Equal(t, 1.0, rec.Criteria[0].Weight)
	assert.Equal(t, 6, rec.Scores.Get("alt-1", "crit-1"))
	assert.Equal(t, 100.0, rec.TopChoice.BestCase)
	assert.Equal(t, 42.0, rec.MCResult.Mean)
	assert.Equal(t, "Scope creep", rec.Risks[0].Description)
}

func TestSaveLoadDecision_RoundTrip(t *testing.T) {
	rec := &DecisionRecord{
		ID:         "crm",
		Statement:  "Build or buy a CRM",
		Objectives: "Ship by Q2",
		Alternatives: []Alternative{
			{ID: "alt-1", Name: "Build", Score: 4.7},
			{ID: "alt-2", Name: "Buy", Score: 8.7},
		},
		Criteria: []Criterion{{ID: "crit-1", Name: "Cost", Weight: 1}},
		Scores:   ScoreMatrix{"alt-1": {"crit-1": 5}, "alt-2": {"crit-1": 9}},
		TopChoice: &TopChoice{
			ID: "alt-2", Name: "Buy",
			BestCase: 500000, MostLikely: 200000, WorstCase: -50000,
		},
		MCResult: &SimulationResult{Mean: 216000, Median: 210000, P10: 40000, P90: 410000, ProbLoss: 0.04},
		Risks: []Risk{
			{Description: "Vendor lock-in", Theme: ThemeMarket, Likelihood: LevelMedium, Impact: LevelHigh, Mitigation: "Export clauses"},
		},
		Meta:      Meta{Threshold: 500000, Reversibility: 2, ReversibilityLabel: "Reversible with effort"},
		CreatedAt: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}

	path := filepath.Join(t.TempDir(), "crm.yaml")
	require.NoError(t, SaveDecision(rec, path))

	got, err := LoadDecision(path)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestLoadDecision_Missing(t *testing.T) {
	_, err := LoadDecision(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"low", LevelLow, false},
		{"Medium", LevelMedium, false},
		{"  HIGH  ", LevelHigh, false},
		{"severe", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestLevel_AtLeast(t *testing.T) {
	assert.True(t, LevelHigh.AtLeast(LevelMedium))
	assert.True(t, LevelMedium.AtLeast(LevelMedium))
	assert.False(t, LevelLow.AtLeast(LevelMedium))
}

func TestRisk_Complete(t *testing.T) {
	complete := Risk{Description: "Scope creep", Likelihood: LevelHigh, Impact: LevelLow}
	assert.True(t, complete.Complete())

	assert.False(t, Risk{Likelihood: LevelHigh, Impact: LevelLow}.Complete())
	assert.False(t, Risk{Description: "   ", Likelihood: LevelHigh, Impact: LevelLow}.Complete())
	assert.False(t, Risk{Description: "Scope creep", Impact: LevelLow}.Complete())
}
