package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/decisionlab/compass/internal/models"
)

func writeDecisionFile(t *testing.T, rec *models.DecisionRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decision.yaml")
	require.NoError(t, models.SaveDecision(rec, path))
	return path
}

func validRecord() *models.DecisionRecord {
	return &models.DecisionRecord{
		Statement:  "Build or buy a CRM",
		Objectives: "Ship by Q2",
		Alternatives: []models.Alternative{
			{ID: "alt-1", Name: "Build", Score: 4.7},
			{ID: "alt-2", Name: "Buy", Score: 8.7},
		},
		Criteria: []models.Criterion{
			{ID: "crit-1", Name: "Cost", Weight: 0.4},
			{ID: "crit-2", Name: "Strategic fit", Weight: 0.6},
		},
		Scores: models.ScoreMatrix{
			"alt-1": {"crit-1": 8, "crit-2": 3},
			"alt-2": {"crit-1": 4, "crit-2": 9},
		},
		Meta: models.Meta{Threshold: 500000, Reversibility: 2},
	}
}

func TestCheckCommand_ValidFile(t *testing.T) {
	path := writeDecisionFile(t, validRecord())

	out, err := runCommand(t, "check", path)
	require.NoError(t, err)
	require.Contains(t, out, path+": ok")
}

func TestCheckCommand_InvalidFile(t *testing.T) {
	rec := validRecord()
	rec.Risks = []models.Risk{
		{Description: "Vendor lock-in", Theme: "weather", Likelihood: models.LevelMedium, Impact: models.LevelHigh},
	}
	path := writeDecisionFile(t, rec)

	out, err := runCommand(t, "check", path)
	require.Error(t, err)

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	require.Contains(t, out, "/risks/0/theme")
}

func TestCheckCommand_MissingFile(t *testing.T) {
	_, err := runCommand(t, "check", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestCheckCommand_MixedFiles(t *testing.T) {
	good := writeDecisionFile(t, validRecord())

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("objectives: no statement here\nmeta:\n  threshold: 100\n  reversibility: 1\n"), 0o644))

	out, err := runCommand(t, "check", good, bad)
	require.Error(t, err)
	require.Contains(t, out, good+": ok")
	require.Contains(t, out, bad+":")
}

func TestRankCommand(t *testing.T) {
	path := writeDecisionFile(t, validRecord())

	out, err := runCommand(t, "rank", path)
	require.NoError(t, err)
	require.Contains(t, out, "> Buy")
	require.Contains(t, out, "Build")
	require.Contains(t, out, "Alternative")
}

func TestRankCommand_MissingFile(t *testing.T) {
	_, err := runCommand(t, "rank", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
