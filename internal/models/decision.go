package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Alternative is one candidate option being compared in a decision.
// Score is derived by the ranking engine and is zero until computed.
type Alternative struct {
	ID    string  `yaml:"id" json:"id"`
	Name  string  `yaml:"name" json:"name"`
	Score float64 `yaml:"score,omitempty" json:"score,omitempty"`
}

// Criterion is a weighted dimension of evaluation applied to every
// alternative. Weight is a fraction in [0,1]; user-facing entry happens
// in integer percentages and is normalized before ranking.
type Criterion struct {
	ID     string  `yaml:"id" json:"id"`
	Name   string  `yaml:"name" json:"name"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// ScoreMatrix maps alternative ID -> criterion ID -> integer score in [1,10].
type ScoreMatrix map[string]map[string]int

// Get returns the score for (altID, critID), or the neutral midpoint 5
// when no entry exists.
func (m ScoreMatrix) Get(altID, critID string) int {
	if row, ok := m[altID]; ok {
		if v, ok := row[critID]; ok {
			return v
		}
	}
	return NeutralScore
}

// Set records a score, allocating the row if needed.
func (m ScoreMatrix) Set(altID, critID string, score int) {
	row, ok := m[altID]
	if !ok {
		row = make(map[string]int)
		m[altID] = row
	}
	row[critID] = score
}

// NeutralScore is substituted for missing (alternative, criterion) entries.
const NeutralScore = 5

// TopChoice is the first-place alternative from the ranking, enriched
// with the three economic scenario values in the uncertainty stage.
type TopChoice struct {
	ID         string  `yaml:"id" json:"id"`
	Name       string  `yaml:"name" json:"name"`
	BestCase   float64 `yaml:"best_case" json:"best_case"`
	MostLikely float64 `yaml:"most_likely" json:"most_likely"`
	WorstCase  float64 `yaml:"worst_case" json:"worst_case"`
}

// SimulationResult summarizes a Monte Carlo run over the top choice's
// outcome range. Replaced wholesale by each new simulation.
type SimulationResult struct {
	Mean     float64 `yaml:"mean" json:"mean"`
	Median   float64 `yaml:"median" json:"median"`
	P10      float64 `yaml:"p10" json:"p10"`
	P90      float64 `yaml:"p90" json:"p90"`
	ProbLoss float64 `yaml:"prob_loss" json:"prob_loss"`
}

// Meta holds the framing-stage knobs that shape the rest of the flow.
type Meta struct {
	Threshold          float64 `yaml:"threshold" json:"threshold"`
	Reversibility      int     `yaml:"reversibility" json:"reversibility"`
	ReversibilityLabel string  `yaml:"reversibility_label,omitempty" json:"reversibility_label,omitempty"`
}

// DecisionRecord is the aggregate root for one wizard session. It is
// owned by exactly one session; stage reducers return updated copies
// rather than mutating in place.
type DecisionRecord struct {
	ID           string            `yaml:"id,omitempty" json:"id,omitempty"`
	Statement    string            `yaml:"statement" json:"statement"`
	Objectives   string            `yaml:"objectives" json:"objectives"`
	Alternatives []Alternative     `yaml:"alternatives,omitempty" json:"alternatives,omitempty"`
	Criteria     []Criterion       `yaml:"criteria,omitempty" json:"criteria,omitempty"`
	Scores       ScoreMatrix       `yaml:"scores,omitempty" json:"scores,omitempty"`
	TopChoice    *TopChoice        `yaml:"top_choice,omitempty" json:"top_choice,omitempty"`
	MCResult     *SimulationResult `yaml:"mc_result,omitempty" json:"mc_result,omitempty"`
	Risks        []Risk            `yaml:"risks,omitempty" json:"risks,omitempty"`
	Meta         Meta              `yaml:"meta" json:"meta"`
	CreatedAt    time.Time         `yaml:"created_at,omitempty" json:"created_at,omitempty"`
}

// Clone returns a deep copy of the record so reducers can update
// without aliasing the caller's slices and maps.
func (r DecisionRecord) Clone() DecisionRecord {
	out := r
	out.Alternatives = append([]Alternative(nil), r.Alternatives...)
	out.Criteria = append([]Criterion(nil), r.Criteria...)
	out.Risks = append([]Risk(nil), r.Risks...)
	if r.Scores != nil {
		out.Scores = make(ScoreMatrix, len(r.Scores))
		for altID, row := range r.Scores {
			cp := make(map[string]int, len(row))
			for critID, v := range row {
				cp[critID] = v
			}
			out.Scores[altID] = cp
		}
	}
	if r.TopChoice != nil {
		tc := *r.TopChoice
		out.TopChoice = &tc
	}
	if r.MCResult != nil {
		mc := *r.MCResult
		out.MCResult = &mc
	}
	return out
}

// LoadDecision loads a decision record from a YAML file.
func LoadDecision(path string) (*DecisionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec DecisionRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing decision file %s: %w", path, err)
	}
	return &rec, nil
}

// SaveDecision writes a decision record to a YAML file.
func SaveDecision(rec *DecisionRecord, path string) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding decision record: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing decision file %s: %w", path, err)
	}
	return nil
}
