package wizard

import (
	"fmt"
	"math"
	"strings"

	"github.com/decisionlab/compass/internal/models"
	"github.com/decisionlab/compass/internal/montecarlo"
	"github.com/decisionlab/compass/internal/ranking"
	"github.com/decisionlab/compass/internal/risk"
)

// Bounds for the alternatives and criteria lists.
const (
	MinAlternatives = 2
	MaxAlternatives = 5
	MinCriteria     = 2
	MaxCriteria     = 5
)

// FramingInput captures the framing stage: what is being decided and
// at what economic scale.
type FramingInput struct {
	Statement          string
	Objectives         string
	Threshold          float64
	Reversibility      int
	ReversibilityLabel string
}

// ApplyFraming validates the framing input and folds it into the
// record. On error the returned record is the input record unchanged.
func ApplyFraming(rec models.DecisionRecord, in FramingInput) (models.DecisionRecord, error) {
	if strings.TrimSpace(in.Statement) == "" {
		return rec, invalid(StageFraming, "decision statement is required")
	}
	if strings.TrimSpace(in.Objectives) == "" {
		return rec, invalid(StageFraming, "objectives are required")
	}
	if in.Threshold <= 0 {
		return rec, invalid(StageFraming, "economic-scale threshold must be greater than zero")
	}
	if in.Reversibility <= 0 {
		return rec, invalid(StageFraming, "a reversibility level must be selected")
	}

	out := rec.Clone()
	out.Statement = strings.TrimSpace(in.Statement)
	out.Objectives = strings.TrimSpace(in.Objectives)
	out.Meta = models.Meta{
		Threshold:          in.Threshold,
		Reversibility:      in.Reversibility,
		ReversibilityLabel: in.ReversibilityLabel,
	}
	return out, nil
}

// AlternativesInput lists the named candidate options.
type AlternativesInput struct {
	Names []string
}

// ApplyAlternatives validates the 2-5 alternative bound and assigns
// stable IDs. Alternatives whose names survive a re-entry keep their
// IDs so scores entered earlier stay attached.
func ApplyAlternatives(rec models.DecisionRecord, in AlternativesInput) (models.DecisionRecord, error) {
	names := make([]string, 0, len(in.Names))
	for _, n := range in.Names {
		if t := strings.TrimSpace(n); t != "" {
			names = append(names, t)
		}
	}
	if len(names) < MinAlternatives || len(names) > MaxAlternatives {
		return rec, invalid(StageAlternatives, "between %d and %d named alternatives required, got %d",
			MinAlternatives, MaxAlternatives, len(names))
	}

	existing := make(map[string]string, len(rec.Alternatives))
	used := make(map[string]bool, len(names))
	for _, a := range rec.Alternatives {
		existing[a.Name] = a.ID
	}
	for _, name := range names {
		if id, ok := existing[name]; ok {
			used[id] = true
		}
	}

	out := rec.Clone()
	out.Alternatives = make([]models.Alternative, 0, len(names))
	next := 1
	for _, name := range names {
		id, ok := existing[name]
		if !ok {
			for used[fmt.Sprintf("alt-%d", next)] {
				next++
			}
			id = fmt.Sprintf("alt-%d", next)
			used[id] = true
		}
		out.Alternatives = append(out.Alternatives, models.Alternative{ID: id, Name: name})
	}
	return out, nil
}

// CriterionInput is one weighted evaluation dimension as entered:
// weight is an integer percentage.
type CriterionInput struct {
	Name      string
	WeightPct int
}

// CriteriaInput lists the evaluation criteria for the decision.
type CriteriaInput struct {
	Items []CriterionInput
}

// DefaultCriteria is the editable starting set offered in the
// criteria stage.
func DefaultCriteria() []CriterionInput {
	return []CriterionInput{
		{Name: "Cost", WeightPct: 25},
		{Name: "Time to value", WeightPct: 25},
		{Name: "Strategic fit", WeightPct: 25},
		{Name: "Risk", WeightPct: 25},
	}
}

// ApplyCriteria validates the 2-5 criteria bound and that integer
// weights sum to exactly 100, then stores them as fractions.
func ApplyCriteria(rec models.DecisionRecord, in CriteriaInput) (models.DecisionRecord, error) {
	items := make([]CriterionInput, 0, len(in.Items))
	for _, c := range in.Items {
		if t := strings.TrimSpace(c.Name); t != "" {
			items = append(items, CriterionInput{Name: t, WeightPct: c.WeightPct})
		}
	}
	if len(items) < MinCriteria || len(items) > MaxCriteria {
		return rec, invalid(StageCriteria, "between %d and %d criteria required, got %d",
			MinCriteria, MaxCriteria, len(items))
	}

	total := 0
	for _, c := range items {
		if c.WeightPct < 0 {
			return rec, invalid(StageCriteria, "criterion %q has a negative weight", c.Name)
		}
		total += c.WeightPct
	}
	if total != 100 {
		return rec, invalid(StageCriteria, "weights must sum to exactly 100, got %d", total)
	}

	existing := make(map[string]string, len(rec.Criteria))
	used := make(map[string]bool, len(items))
	for _, c := range rec.Criteria {
		existing[c.Name] = c.ID
	}
	for _, c := range items {
		if id, ok := existing[c.Name]; ok {
			used[id] = true
		}
	}

	out := rec.Clone()
	out.Criteria = make([]models.Criterion, 0, len(items))
	next := 1
	for _, c := range items {
		id, ok := existing[c.Name]
		if !ok {
			for used[fmt.Sprintf("crit-%d", next)] {
				next++
			}
			id = fmt.Sprintf("crit-%d", next)
			used[id] = true
		}
		out.Criteria = append(out.Criteria, models.Criterion{
			ID:     id,
			Name:   c.Name,
			Weight: float64(c.WeightPct) / 100,
		})
	}
	return out, nil
}

// ScoringInput carries the full score matrix as entered.
type ScoringInput struct {
	Scores models.ScoreMatrix
}

// ApplyScoring stores the score matrix, computes the ranking, and
// selects the top-ranked alternative as the decision's top choice.
// Scenario values already entered for the same top choice survive a
// re-entry; a different winner resets them to zero.
func ApplyScoring(rec models.DecisionRecord, in ScoringInput) (models.DecisionRecord, error) {
	for altID, row := range in.Scores {
		for critID, v := range row {
			if v < 1 || v > 10 {
				return rec, invalid(StageScoring, "score %d for %s/%s is outside 1-10", v, altID, critID)
			}
		}
	}

	out := rec.Clone()
	out.Scores = make(models.ScoreMatrix, len(in.Scores))
	for altID, row := range in.Scores {
		for critID, v := range row {
			out.Scores.Set(altID, critID, v)
		}
	}
	ranked := ranking.Rank(out.Alternatives, out.Criteria, out.Scores)
	if len(ranked) == 0 {
		return rec, invalid(StageScoring, "ranking produced no result; check alternatives and criteria")
	}

	for i := range out.Alternatives {
		for _, r := range ranked {
			if r.ID == out.Alternatives[i].ID {
				out.Alternatives[i].Score = r.Score
			}
		}
	}

	top := models.TopChoice{ID: ranked[0].ID, Name: ranked[0].Name}
	if rec.TopChoice != nil && rec.TopChoice.ID == top.ID {
		top.BestCase = rec.TopChoice.BestCase
		top.MostLikely = rec.TopChoice.MostLikely
		top.WorstCase = rec.TopChoice.WorstCase
	}
	out.TopChoice = &top
	return out, nil
}

// UncertaintyInput carries the parsed scenario values for the top
// choice's economic outcome. Trials defaults to the simulator's
// standard count when zero; a negative Seed selects a
// non-deterministic source.
type UncertaintyInput struct {
	BestCase   float64
	MostLikely float64
	WorstCase  float64
	Trials     int
	Seed       int64
}

// ApplyUncertainty validates the scenario ordering, runs the Monte
// Carlo simulation, and stores both the scenario values and the
// simulation summary.
func ApplyUncertainty(rec models.DecisionRecord, in UncertaintyInput) (models.DecisionRecord, error) {
	if rec.TopChoice == nil {
		return rec, invalid(StageUncertainty, "no top choice selected; complete scoring first")
	}
	for _, v := range []float64{in.WorstCase, in.MostLikely, in.BestCase} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return rec, invalid(StageUncertainty, "scenario values must be finite numbers")
		}
	}
	if in.WorstCase > in.MostLikely || in.MostLikely > in.BestCase {
		return rec, invalid(StageUncertainty, "values must satisfy worst <= most likely <= best")
	}
	if in.BestCase <= in.WorstCase {
		return rec, invalid(StageUncertainty, "best case must exceed worst case")
	}

	trials := in.Trials
	if trials <= 0 {
		trials = montecarlo.DefaultTrials
	}
	result := montecarlo.SimulateWithSeed(in.WorstCase, in.MostLikely, in.BestCase, trials, in.Seed)

	out := rec.Clone()
	out.TopChoice.BestCase = in.BestCase
	out.TopChoice.MostLikely = in.MostLikely
	out.TopChoice.WorstCase = in.WorstCase
	out.MCResult = &result
	return out, nil
}

// RiskInput is one risk as entered: the theme is assigned by the
// classifier, not the caller.
type RiskInput struct {
	Description string
	Likelihood  models.Level
	Impact      models.Level
	Mitigation  string
}

// RisksInput carries the pre-mortem stage's output. Skip is the
// explicit escape hatch for finalizing with an empty list.
type RisksInput struct {
	Risks []RiskInput
	Skip  bool
}

// ApplyRisks classifies and stores the entered risks. Entries with a
// blank description are dropped; a described risk missing its
// likelihood or impact is rejected rather than stored, so every saved
// risk conforms to the decision schema. Finalizing with no risk at
// all requires the explicit skip flag.
func ApplyRisks(rec models.DecisionRecord, in RisksInput) (models.DecisionRecord, error) {
	risks := make([]models.Risk, 0, len(in.Risks))
	for _, r := range in.Risks {
		desc := strings.TrimSpace(r.Description)
		if desc == "" {
			continue
		}
		entry := models.Risk{
			Description: desc,
			Theme:       risk.Classify(desc),
			Likelihood:  r.Likelihood,
			Impact:      r.Impact,
			Mitigation:  strings.TrimSpace(r.Mitigation),
		}
		if !entry.Complete() {
			return rec, invalid(StageRisks, "risk %q needs a likelihood and an impact", desc)
		}
		risks = append(risks, entry)
	}

	if len(risks) == 0 && !in.Skip {
		return rec, invalid(StageRisks, "at least one risk with likelihood and impact is required, or skip explicitly")
	}

	out := rec.Clone()
	out.Risks = risks
	return out, nil
}
