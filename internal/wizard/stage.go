// Package wizard implements the staged decision-making flow: an
// ordered sequence of stages, the validation gates between them, and
// pure reducers that fold each stage's input into the decision record.
package wizard

import "fmt"

// Stage identifies one step of the decision flow.
type Stage int

const (
	StageFraming Stage = iota
	StageAlternatives
	StageCriteria
	StageScoring
	StageUncertainty
	StageRisks
	StageSynthesis
)

// RiskStageCutoff is the economic-scale threshold above which the
// risks stage is included in the flow. At or below it, the stage is
// skipped in both directions.
const RiskStageCutoff = 100000

var stageNames = map[Stage]string{
	StageFraming:      "framing",
	StageAlternatives: "alternatives",
	StageCriteria:     "criteria",
	StageScoring:      "scoring",
	StageUncertainty:  "uncertainty",
	StageRisks:        "risks",
	StageSynthesis:    "synthesis",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// next returns the stage after s, skipping risks when the decision's
// threshold does not warrant it.
func next(s Stage, threshold float64) Stage {
	n := s + 1
	if n == StageRisks && threshold <= RiskStageCutoff {
		n++
	}
	if n > StageSynthesis {
		return StageSynthesis
	}
	return n
}

// prev returns the stage before s, skipping risks under the same rule
// as forward navigation.
func prev(s Stage, threshold float64) Stage {
	p := s - 1
	if p == StageRisks && threshold <= RiskStageCutoff {
		p--
	}
	if p < StageFraming {
		return StageFraming
	}
	return p
}

// ValidationError reports why a stage gate rejected a transition. The
// record is left untouched when one is returned.
type ValidationError struct {
	Stage  Stage
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
}

func invalid(stage Stage, format string, args ...any) *ValidationError {
	return &ValidationError{Stage: stage, Reason: fmt.Sprintf(format, args...)}
}
