package wizard

import (
	"log/slog"
	"time"

	"github.com/decisionlab/compass/internal/models"
)

// Session drives a single decision through the staged flow. It owns
// the record exclusively; each completed stage replaces the record
// with the reducer's output and advances the stage pointer.
//
// Sessions are not safe for concurrent use. The flow is driven by
// one user interaction at a time, and the generation counter exists
// only to let late asynchronous results detect that the session has
// moved on.
type Session struct {
	stage  Stage
	record models.DecisionRecord
	gen    uint64

	trials int
	seed   int64
}

// Option configures a Session.
type Option func(*Session)

// WithTrials overrides the Monte Carlo trial count.
func WithTrials(trials int) Option {
	return func(s *Session) { s.trials = trials }
}

// WithSeed fixes the simulation's random seed. Negative means
// non-deterministic.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.seed = seed }
}

// NewSession starts a fresh session at the framing stage.
func NewSession(opts ...Option) *Session {
	s := &Session{
		stage: StageFraming,
		seed:  -1,
		record: models.DecisionRecord{
			Scores:    make(models.ScoreMatrix),
			CreatedAt: time.Now(),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stage returns the session's current stage.
func (s *Session) Stage() Stage {
	return s.stage
}

// Record returns a copy of the current decision record.
func (s *Session) Record() models.DecisionRecord {
	return s.record.Clone()
}

// Generation returns a counter that increments on every stage change.
// A caller that starts an asynchronous request captures the value and
// compares it on completion; a mismatch means the session moved on
// and the result must be discarded.
func (s *Session) Generation() uint64 {
	return s.gen
}

// Current reports whether gen still matches the session, i.e. no
// stage transition happened since gen was captured.
func (s *Session) Current(gen uint64) bool {
	return s.gen == gen
}

func (s *Session) advanceTo(stage Stage, record models.DecisionRecord) {
	slog.Debug("stage transition", "from", s.stage, "to", stage)
	s.stage = stage
	s.record = record
	s.gen++
}

// CompleteFraming applies the framing input and advances. The record
// is untouched when validation fails.
func (s *Session) CompleteFraming(in FramingInput) error {
	return s.complete(StageFraming, func(rec models.DecisionRecord) (models.DecisionRecord, error) {
		return ApplyFraming(rec, in)
	})
}

// CompleteAlternatives applies the alternatives input and advances.
func (s *Session) CompleteAlternatives(in AlternativesInput) error {
	return s.complete(StageAlternatives, func(rec models.DecisionRecord) (models.DecisionRecord, error) {
		return ApplyAlternatives(rec, in)
	})
}

// CompleteCriteria applies the criteria input and advances.
func (s *Session) CompleteCriteria(in CriteriaInput) error {
	return s.complete(StageCriteria, func(rec models.DecisionRecord) (models.DecisionRecord, error) {
		return ApplyCriteria(rec, in)
	})
}

// CompleteScoring applies the score matrix, computing the ranking and
// top choice, and advances.
func (s *Session) CompleteScoring(in ScoringInput) error {
	return s.complete(StageScoring, func(rec models.DecisionRecord) (models.DecisionRecord, error) {
		return ApplyScoring(rec, in)
	})
}

// CompleteUncertainty applies the scenario values, runs the
// simulation with the session's trial and seed settings, and
// advances.
func (s *Session) CompleteUncertainty(in UncertaintyInput) error {
	in.Trials = s.trials
	in.Seed = s.seed
	return s.complete(StageUncertainty, func(rec models.DecisionRecord) (models.DecisionRecord, error) {
		return ApplyUncertainty(rec, in)
	})
}

// CompleteRisks applies the pre-mortem risks and advances.
func (s *Session) CompleteRisks(in RisksInput) error {
	return s.complete(StageRisks, func(rec models.DecisionRecord) (models.DecisionRecord, error) {
		return ApplyRisks(rec, in)
	})
}

func (s *Session) complete(stage Stage, apply func(models.DecisionRecord) (models.DecisionRecord, error)) error {
	if s.stage != stage {
		return invalid(stage, "session is at the %s stage", s.stage)
	}
	rec, err := apply(s.record)
	if err != nil {
		return err
	}
	s.advanceTo(next(stage, rec.Meta.Threshold), rec)
	return nil
}

// Back re-enters the previous stage without discarding data already
// collected for later stages. The risks stage is skipped backward
// under the same threshold rule as forward navigation.
func (s *Session) Back() {
	if s.stage == StageFraming {
		return
	}
	s.advanceTo(prev(s.stage, s.record.Meta.Threshold), s.record)
}

// Reset clears the decision record and returns to framing,
// unconditionally valid from any stage.
func (s *Session) Reset() {
	s.advanceTo(StageFraming, models.DecisionRecord{
		Scores:    make(models.ScoreMatrix),
		CreatedAt: time.Now(),
	})
}
