package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/decisionlab/compass/internal/advisor"
	"github.com/decisionlab/compass/internal/insights"
	"github.com/decisionlab/compass/internal/models"
	"github.com/decisionlab/compass/internal/money"
	"github.com/decisionlab/compass/internal/ranking"
	"github.com/decisionlab/compass/internal/spinner"
)

// Advisor is the slice of the AI collaborator the interactive flow
// uses. Nil disables AI assistance entirely.
type Advisor interface {
	SuggestAlternatives(ctx context.Context, statement, objectives string) ([]advisor.Suggestion, error)
	ScoringInsight(ctx context.Context, rec models.DecisionRecord) (string, error)
	SuggestRisks(ctx context.Context, rec models.DecisionRecord) ([]advisor.RiskSuggestion, error)
}

// Runner drives a Session through huh forms on a terminal.
type Runner struct {
	session *Session
	in      io.Reader
	out     io.Writer
	advisor Advisor
}

// NewRunner creates a Runner over the given streams. advisor may be
// nil to run without AI assistance.
func NewRunner(session *Session, in io.Reader, out io.Writer, adv Advisor) *Runner {
	return &Runner{session: session, in: in, out: out, advisor: adv}
}

// Run walks the user through every stage and returns the finished
// record. Advisor failures are reported and skipped; they never stop
// the flow.
func (r *Runner) Run(ctx context.Context) (models.DecisionRecord, error) {
	for r.session.Stage() != StageSynthesis {
		var err error
		switch r.session.Stage() {
		case StageFraming:
			err = r.runFraming()
		case StageAlternatives:
			err = r.runAlternatives(ctx)
		case StageCriteria:
			err = r.runCriteria()
		case StageScoring:
			err = r.runScoring(ctx)
		case StageUncertainty:
			err = r.runUncertainty()
		case StageRisks:
			err = r.runRisks(ctx)
		}
		if err != nil {
			return models.DecisionRecord{}, err
		}
	}
	return r.session.Record(), nil
}

// thresholdOptions are the selectable economic-scale levels.
var thresholdOptions = []float64{10000, 50000, 100000, 500000, 1000000, 10000000}

func (r *Runner) runFraming() error {
	var in FramingInput
	var threshold string
	var reversibility string

	opts := make([]huh.Option[string], 0, len(thresholdOptions))
	for _, v := range thresholdOptions {
		s := strconv.FormatFloat(v, 'f', 0, 64)
		opts = append(opts, huh.NewOption(money.FormatAmount(v), s))
	}

	form := r.prepare(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Decision statement").
				Description("What are you deciding? One sentence.").
				Placeholder("Build vs buy a CRM").
				Value(&in.Statement).
				Validate(requireNonEmpty("a decision statement")),
			huh.NewText().
				Title("Objectives").
				Description("What does a good outcome look like?").
				Value(&in.Objectives).
				Validate(requireNonEmpty("at least one objective")),
			huh.NewSelect[string]().
				Title("Economic scale").
				Description("Roughly how much money rides on this decision?").
				Options(opts...).
				Value(&threshold),
			huh.NewSelect[string]().
				Title("Reversibility").
				Options(
					huh.NewOption("Easily reversible (two-way door)", "1"),
					huh.NewOption("Reversible at a cost", "2"),
					huh.NewOption("Effectively irreversible (one-way door)", "3"),
				).
				Value(&reversibility),
		),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("framing form failed: %w", err)
	}

	in.Threshold, _ = strconv.ParseFloat(threshold, 64)
	in.Reversibility, _ = strconv.Atoi(reversibility)
	switch in.Reversibility {
	case 1:
		in.ReversibilityLabel = "easily reversible"
	case 2:
		in.ReversibilityLabel = "reversible at a cost"
	case 3:
		in.ReversibilityLabel = "effectively irreversible"
	}
	return r.complete(r.session.CompleteFraming(in))
}

func (r *Runner) runAlternatives(ctx context.Context) error {
	rec := r.session.Record()

	suggestions := r.brainstormAlternatives(ctx, rec)
	if suggestions != "" {
		fmt.Fprintln(r.out, suggestions)
	}

	var raw string
	form := r.prepare(huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Alternatives").
				Description("2 to 5 options, one per line.").
				Value(&raw).
				Validate(func(s string) error {
					n := len(splitAndTrim(s))
					if n < MinAlternatives || n > MaxAlternatives {
						return fmt.Errorf("enter between %d and %d alternatives", MinAlternatives, MaxAlternatives)
					}
					return nil
				}),
		),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("alternatives form failed: %w", err)
	}
	return r.complete(r.session.CompleteAlternatives(AlternativesInput{Names: splitAndTrim(raw)}))
}

// brainstormAlternatives consults the advisor if available and the
// user wants it. The result is advisory text only; a failure or a
// stage change while the call was pending discards it.
func (r *Runner) brainstormAlternatives(ctx context.Context, rec models.DecisionRecord) string {
	if r.advisor == nil || !r.confirm("Brainstorm alternatives with AI?") {
		return ""
	}

	gen := r.session.Generation()
	stop := spinner.Start(r.out, "Asking for suggestions...")
	suggestions, err := r.advisor.SuggestAlternatives(ctx, rec.Statement, rec.Objectives)
	stop()

	if !r.session.Current(gen) {
		return ""
	}
	if err != nil {
		fmt.Fprintln(r.out, "AI unavailable; continuing without suggestions.")
		return ""
	}

	var b strings.Builder
	b.WriteString("Suggested alternatives:\n")
	for _, s := range suggestions {
		fmt.Fprintf(&b, "  - %s: %s\n", s.Name, s.Rationale)
	}
	return b.String()
}

func (r *Runner) runCriteria() error {
	var b strings.Builder
	for _, c := range DefaultCriteria() {
		fmt.Fprintf(&b, "%s: %d\n", c.Name, c.WeightPct)
	}
	raw := b.String()

	form := r.prepare(huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Criteria and weights").
				Description("One per line as \"Name: weight\". Integer weights must sum to 100.").
				Value(&raw).
				Validate(func(s string) error {
					_, err := parseCriteriaLines(s)
					return err
				}),
		),
	))
	if err := form.Run(); err != nil {
		return fmt.Errorf("criteria form failed: %w", err)
	}

	items, err := parseCriteriaLines(raw)
	if err != nil {
		return err
	}
	return r.complete(r.session.CompleteCriteria(CriteriaInput{Items: items}))
}

func (r *Runner) runScoring(ctx context.Context) error {
	rec := r.session.Record()
	scores := make(models.ScoreMatrix)
	values := make(map[string]*string)

	groups := make([]*huh.Group, 0, len(rec.Alternatives))
	for _, alt := range rec.Alternatives {
		fields := make([]huh.Field, 0, len(rec.Criteria)+1)
		fields = append(fields, huh.NewNote().Title(fmt.Sprintf("Score %q", alt.Name)))
		for _, crit := range rec.Criteria {
			key := alt.ID + "/" + crit.ID
			v := strconv.Itoa(models.NeutralScore)
			values[key] = &v
			fields = append(fields, huh.NewInput().
				Title(crit.Name).
				Description("1 (poor) to 10 (excellent)").
				Value(values[key]).
				Validate(validateScore))
		}
		groups = append(groups, huh.NewGroup(fields...))
	}

	form := r.prepare(huh.NewForm(groups...))
	if err := form.Run(); err != nil {
		return fmt.Errorf("scoring form failed: %w", err)
	}

	for _, alt := range rec.Alternatives {
		for _, crit := range rec.Criteria {
			v, _ := strconv.Atoi(strings.TrimSpace(*values[alt.ID+"/"+crit.ID]))
			scores.Set(alt.ID, crit.ID, v)
		}
	}

	if err := r.complete(r.session.CompleteScoring(ScoringInput{Scores: scores})); err != nil {
		return err
	}

	scored := r.session.Record()
	ranked := ranking.Rank(scored.Alternatives, scored.Criteria, scored.Scores)
	fmt.Fprintln(r.out, "\nRanking:")
	for i, ra := range ranked {
		fmt.Fprintf(r.out, "  %d. %s (%.1f)\n", i+1, ra.Name, ra.Score)
	}
	for _, in := range insights.Detect(ranked, scored.Alternatives, scored.Criteria, scored.Scores) {
		fmt.Fprintf(r.out, "  ! %s\n", in.Message)
	}
	r.scoringInsight(ctx, scored)
	fmt.Fprintln(r.out)
	return nil
}

// scoringInsight prints one advisor observation about the scores, if
// the advisor is available and willing.
func (r *Runner) scoringInsight(ctx context.Context, rec models.DecisionRecord) {
	if r.advisor == nil {
		return
	}
	gen := r.session.Generation()
	stop := spinner.Start(r.out, "Reviewing scores...")
	text, err := r.advisor.ScoringInsight(ctx, rec)
	stop()
	if err != nil || !r.session.Current(gen) {
		return
	}
	fmt.Fprintf(r.out, "  AI: %s\n", text)
}

func (r *Runner) runUncertainty() error {
	rec := r.session.Record()
	title := "the top choice"
	if rec.TopChoice != nil {
		title = fmt.Sprintf("%q", rec.TopChoice.Name)
	}

	for {
		var best, likely, worst string
		form := r.prepare(huh.NewForm(
			huh.NewGroup(
				huh.NewNote().Title(fmt.Sprintf("Economic outcome of %s", title)).
					Description("Amounts accept shorthand like $2M or -$500K."),
				huh.NewInput().Title("Best case").Value(&best).Validate(validateAmount),
				huh.NewInput().Title("Most likely").Value(&likely).Validate(validateAmount),
				huh.NewInput().Title("Worst case").Value(&worst).Validate(validateAmount),
			),
		))
		if err := form.Run(); err != nil {
			return fmt.Errorf("uncertainty form failed: %w", err)
		}

		err := r.session.CompleteUncertainty(UncertaintyInput{
			BestCase:   money.ParseAmount(best),
			MostLikely: money.ParseAmount(likely),
			WorstCase:  money.ParseAmount(worst),
		})
		if err == nil {
			break
		}
		fmt.Fprintf(r.out, "  %v\n", err)
	}

	if mc := r.session.Record().MCResult; mc != nil {
		fmt.Fprintf(r.out, "\nSimulated %s outcomes:\n", title)
		fmt.Fprintf(r.out, "  mean %s, median %s\n", money.FormatAmount(mc.Mean), money.FormatAmount(mc.Median))
		fmt.Fprintf(r.out, "  p10 %s, p90 %s\n", money.FormatAmount(mc.P10), money.FormatAmount(mc.P90))
		fmt.Fprintf(r.out, "  chance of a loss: %.0f%%\n\n", mc.ProbLoss*100)
	}
	return nil
}

func (r *Runner) runRisks(ctx context.Context) error {
	in := RisksInput{}

	for _, rs := range r.premortemSuggestions(ctx) {
		if r.confirm(fmt.Sprintf("Add suggested risk: %q (%s likelihood, %s impact)?", rs.Description, rs.Likelihood, rs.Impact)) {
			risk := rs.Risk()
			in.Risks = append(in.Risks, RiskInput{
				Description: risk.Description,
				Likelihood:  risk.Likelihood,
				Impact:      risk.Impact,
			})
		}
	}

	for {
		prompt := "Add a risk?"
		if len(in.Risks) > 0 {
			prompt = "Add another risk?"
		}
		if !r.confirm(prompt) {
			if len(in.Risks) > 0 {
				break
			}
			if r.confirm("No risks recorded. Skip the pre-mortem?") {
				in.Skip = true
				break
			}
			continue
		}
		risk, err := r.riskForm()
		if err != nil {
			return err
		}
		in.Risks = append(in.Risks, risk)
	}
	return r.complete(r.session.CompleteRisks(in))
}

// premortemSuggestions consults the advisor for candidate risks.
func (r *Runner) premortemSuggestions(ctx context.Context) []advisor.RiskSuggestion {
	if r.advisor == nil || !r.confirm("Run an AI pre-mortem for suggested risks?") {
		return nil
	}
	gen := r.session.Generation()
	stop := spinner.Start(r.out, "Imagining failure modes...")
	suggestions, err := r.advisor.SuggestRisks(ctx, r.session.Record())
	stop()
	if !r.session.Current(gen) {
		return nil
	}
	if err != nil {
		fmt.Fprintln(r.out, "AI unavailable; continuing without suggested risks.")
		return nil
	}
	return suggestions
}

func (r *Runner) riskForm() (RiskInput, error) {
	var in RiskInput
	var likelihood, impact string

	levelOpts := []huh.Option[string]{
		huh.NewOption("low", "low"),
		huh.NewOption("medium", "medium"),
		huh.NewOption("high", "high"),
	}

	form := r.prepare(huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Risk description").
				Value(&in.Description).
				Validate(requireNonEmpty("a description")),
			huh.NewSelect[string]().Title("Likelihood").Options(levelOpts...).Value(&likelihood),
			huh.NewSelect[string]().Title("Impact").Options(levelOpts...).Value(&impact),
			huh.NewInput().
				Title("Mitigation (optional)").
				Value(&in.Mitigation),
		),
	))
	if err := form.Run(); err != nil {
		return in, fmt.Errorf("risk form failed: %w", err)
	}

	in.Likelihood, _ = models.ParseLevel(likelihood)
	in.Impact, _ = models.ParseLevel(impact)
	return in, nil
}

// confirm asks a yes/no question, defaulting to no on form failure.
func (r *Runner) confirm(title string) bool {
	var yes bool
	form := r.prepare(huh.NewForm(
		huh.NewGroup(huh.NewConfirm().Title(title).Value(&yes)),
	))
	if err := form.Run(); err != nil {
		return false
	}
	return yes
}

// prepare applies shared form settings. Accessible mode keeps forms
// usable over pipes and in tests.
func (r *Runner) prepare(form *huh.Form) *huh.Form {
	form = form.WithInput(r.in).WithOutput(r.out)
	if f, ok := r.in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}
	return form
}

// complete surfaces a validation error to the user without aborting
// the flow; the stage loop re-runs the unfinished stage. Other errors
// pass through.
func (r *Runner) complete(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintf(r.out, "  %v\n", ve)
		return nil
	}
	return err
}

func requireNonEmpty(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func validateScore(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > 10 {
		return fmt.Errorf("enter a whole number from 1 to 10")
	}
	return nil
}

func validateAmount(s string) error {
	if math.IsNaN(money.ParseAmount(s)) {
		return fmt.Errorf("enter an amount like 250000, $250K, or -$1.5M")
	}
	return nil
}

// parseCriteriaLines parses "Name: weight" lines into criterion
// inputs, checking the 100-point budget.
func parseCriteriaLines(s string) ([]CriterionInput, error) {
	var items []CriterionInput
	total := 0
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, weight, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("line %q is not in \"Name: weight\" form", line)
		}
		pct, err := strconv.Atoi(strings.TrimSpace(weight))
		if err != nil {
			return nil, fmt.Errorf("weight in %q is not a whole number", line)
		}
		items = append(items, CriterionInput{Name: strings.TrimSpace(name), WeightPct: pct})
		total += pct
	}
	if len(items) < MinCriteria || len(items) > MaxCriteria {
		return nil, fmt.Errorf("enter between %d and %d criteria", MinCriteria, MaxCriteria)
	}
	if total != 100 {
		return nil, fmt.Errorf("weights sum to %d, need exactly 100", total)
	}
	return items, nil
}

// splitAndTrim splits on newlines and commas, dropping empties.
func splitAndTrim(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == ','
	})
	var result []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
