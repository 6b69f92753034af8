package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validDecisionYAML = `id: crm-platform
statement: Build or buy a CRM platform
objectives: Ship by Q2 within budget
alternatives:
  - id: alt-1
    name: Build
    score: 4.7
  - id: alt-2
    name: Buy
    score: 8.7
criteria:
  - id: crit-1
    name: Cost
    weight: 0.3
  - id: crit-2
    name: Strategic fit
    weight: 0.7
scores:
  alt-1:
    crit-1: 8
    crit-2: 3
  alt-2:
    crit-1: 2
    crit-2: 9
top_choice:
  id: alt-2
  name: Buy
  best_case: 500000
  most_likely: 200000
  worst_case: -50000
mc_result:
  mean: 216000
  median: 210000
  p10: 40000
  p90: 410000
  prob_loss: 0.04
risks:
  - description: Vendor lock-in raises switching costs
    theme: market
    likelihood: medium
    impact: high
    mitigation: Negotiate data export clauses
meta:
  threshold: 500000
  reversibility: 2
  reversibility_label: Reversible with effort
created_at: 2026-08-31T10:00:00Z
`

func TestValidateDecisionBytes_Valid(t *testing.T) {
	violations := ValidateDecisionBytes([]byte(validDecisionYAML))
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateDecisionBytes_MinimalValid(t *testing.T) {
	doc := `statement: Pick a database
objectives: Low operational burden
meta:
  threshold: 10000
  reversibility: 1
`
	violations := ValidateDecisionBytes([]byte(doc))
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestValidateDecisionBytes_Violations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantLoc string
	}{
		{
			name:    "missing statement",
			mutate:  func(s string) string { return strings.Replace(s, "statement: Build or buy a CRM platform\n", "", 1) },
			wantLoc: "/",
		},
		{
			name:    "bad risk theme",
			mutate:  func(s string) string { return strings.Replace(s, "theme: market", "theme: weather", 1) },
			wantLoc: "/risks/0/theme",
		},
		{
			name:    "score above range",
			mutate:  func(s string) string { return strings.Replace(s, "crit-2: 9", "crit-2: 11", 1) },
			wantLoc: "/scores/alt-2/crit-2",
		},
		{
			name:    "weight above one",
			mutate:  func(s string) string { return strings.Replace(s, "weight: 0.7", "weight: 1.7", 1) },
			wantLoc: "/criteria/1/weight",
		},
		{
			name:    "zero threshold",
			mutate:  func(s string) string { return strings.Replace(s, "threshold: 500000", "threshold: 0", 1) },
			wantLoc: "/meta/threshold",
		},
		{
			name:    "bad likelihood",
			mutate:  func(s string) string { return strings.Replace(s, "likelihood: medium", "likelihood: certain", 1) },
			wantLoc: "/risks/0/likelihood",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := ValidateDecisionBytes([]byte(tt.mutate(validDecisionYAML)))
			if len(violations) == 0 {
				t.Fatal("expected at least one violation")
			}
			found := false
			for _, v := range violations {
				if strings.HasPrefix(v, tt.wantLoc) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("no violation at %s, got %v", tt.wantLoc, violations)
			}
		})
	}
}

func TestValidateDecisionBytes_NotYAML(t *testing.T) {
	violations := ValidateDecisionBytes([]byte("{unbalanced"))
	if len(violations) != 1 || !strings.Contains(violations[0], "YAML parse error") {
		t.Fatalf("expected a single parse error, got %v", violations)
	}
}

func TestValidateDecisionFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decision.yaml")
	if err := os.WriteFile(path, []byte(validDecisionYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	violations, err := ValidateDecisionFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}

	if _, err := ValidateDecisionFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
