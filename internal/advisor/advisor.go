// Package advisor is the boundary to the generative-AI collaborator.
// Every call is optional: the wizard degrades to manual entry on any
// error, timeout, or malformed response, and a result arriving after
// the session has moved on is discarded by the caller.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/go-viper/mapstructure/v2"

	"github.com/decisionlab/compass/internal/models"
)

// DefaultTimeout bounds each advisor call. A single failed attempt
// surfaces the error; there is no retry.
const DefaultTimeout = 20 * time.Second

// ErrNoAPIKey is returned by New when the environment holds no key.
var ErrNoAPIKey = errors.New("ANTHROPIC_API_KEY not set")

// Messager is the subset of the Anthropic client the advisor uses.
// It exists so tests can inject a fake.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client issues advisor calls against a Messager.
type Client struct {
	messages Messager
	model    anthropic.Model
	timeout  time.Duration
}

// New creates a Client backed by the real Anthropic API, keyed from
// the environment.
func New() (*Client, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return NewWithMessager(&client.Messages), nil
}

// NewWithMessager creates a Client over an injected Messager.
func NewWithMessager(m Messager) *Client {
	return &Client{
		messages: m,
		model:    anthropic.ModelClaudeSonnet4_20250514,
		timeout:  DefaultTimeout,
	}
}

// Suggestion is one brainstormed alternative with its rationale.
type Suggestion struct {
	Name      string `mapstructure:"name"`
	Rationale string `mapstructure:"rationale"`
}

// RiskSuggestion is one candidate risk from the pre-mortem prompt.
// Likelihood and impact arrive as free text and are normalized at
// this boundary.
type RiskSuggestion struct {
	Description string `mapstructure:"description"`
	Likelihood  string `mapstructure:"likelihood"`
	Impact      string `mapstructure:"impact"`
}

// Risk converts the suggestion into a typed risk, defaulting
// unparseable levels to medium. The theme is left for the classifier.
func (rs RiskSuggestion) Risk() models.Risk {
	likelihood, err := models.ParseLevel(rs.Likelihood)
	if err != nil {
		likelihood = models.LevelMedium
	}
	impact, err := models.ParseLevel(rs.Impact)
	if err != nil {
		impact = models.LevelMedium
	}
	return models.Risk{
		Description: rs.Description,
		Likelihood:  likelihood,
		Impact:      impact,
	}
}

const suggestAlternativesSystem = `You are a decision-making coach. Given a decision statement and objectives,
suggest additional alternatives the person may not have considered.

Respond with JSON only, no markdown and no prose outside the JSON:
{"alternatives": [{"name": "<short name>", "rationale": "<one sentence>"}]}

Suggest 2 to 4 alternatives. Favor options that reframe the decision
(hybrid approaches, deferral, smaller pilots) over minor variations.`

// SuggestAlternatives asks the collaborator for candidate options.
func (c *Client) SuggestAlternatives(ctx context.Context, statement, objectives string) ([]Suggestion, error) {
	prompt := fmt.Sprintf("Decision: %s\n\nObjectives: %s", statement, objectives)
	raw, err := c.call(ctx, suggestAlternativesSystem, prompt)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Alternatives []map[string]any `json:"alternatives"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("malformed alternatives payload: %w", err)
	}

	out := make([]Suggestion, 0, len(payload.Alternatives))
	for _, m := range payload.Alternatives {
		var s Suggestion
		if err := mapstructure.Decode(m, &s); err != nil || strings.TrimSpace(s.Name) == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, errors.New("no usable suggestions in response")
	}
	return out, nil
}

const scoringInsightSystem = `You are a decision-making coach reviewing a weighted scoring exercise.
Point out the single most useful observation about the scores in 2-3 plain sentences.
Respond with the observation text only, no JSON and no markdown.`

// ScoringInsight asks for one short free-text observation about the
// scored decision.
func (c *Client) ScoringInsight(ctx context.Context, rec models.DecisionRecord) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Decision: %s\n\nCriteria and weights:\n", rec.Statement)
	for _, crit := range rec.Criteria {
		fmt.Fprintf(&b, "- %s: %.0f%%\n", crit.Name, crit.Weight*100)
	}
	b.WriteString("\nScores (1-10):\n")
	for _, alt := range rec.Alternatives {
		fmt.Fprintf(&b, "- %s:", alt.Name)
		for _, crit := range rec.Criteria {
			fmt.Fprintf(&b, " %s=%d", crit.Name, rec.Scores.Get(alt.ID, crit.ID))
		}
		b.WriteString("\n")
	}

	text, err := c.call(ctx, scoringInsightSystem, b.String())
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty insight response")
	}
	return text, nil
}

const suggestRisksSystem = `You are running a pre-mortem: imagine the decision below has already failed
and name the most plausible causes.

Respond with JSON only, no markdown and no prose outside the JSON:
{"risks": [{"description": "<one sentence>", "likelihood": "<low|medium|high>", "impact": "<low|medium|high>"}]}

Suggest 3 to 5 risks specific to this decision, not generic project risks.`

// SuggestRisks asks for candidate pre-mortem risks for the chosen
// alternative.
func (c *Client) SuggestRisks(ctx context.Context, rec models.DecisionRecord) ([]RiskSuggestion, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Decision: %s\n\nObjectives: %s\n", rec.Statement, rec.Objectives)
	if rec.TopChoice != nil {
		fmt.Fprintf(&b, "\nChosen direction: %s\n", rec.TopChoice.Name)
	}

	raw, err := c.call(ctx, suggestRisksSystem, b.String())
	if err != nil {
		return nil, err
	}

	var payload struct {
		Risks []map[string]any `json:"risks"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("malformed risks payload: %w", err)
	}

	out := make([]RiskSuggestion, 0, len(payload.Risks))
	for _, m := range payload.Risks {
		var rs RiskSuggestion
		if err := mapstructure.Decode(m, &rs); err != nil || strings.TrimSpace(rs.Description) == "" {
			continue
		}
		out = append(out, rs)
	}
	if len(out) == 0 {
		return nil, errors.New("no usable risks in response")
	}
	return out, nil
}

const polishMemoSystem = `You are an editor. Rewrite the decision memo below so it reads clearly and
confidently. Keep every fact and number unchanged. Respond with the polished
plain text only, no markdown formatting.`

// PolishMemo asks for a polished rendition of the memo's plain text.
func (c *Client) PolishMemo(ctx context.Context, draft string) (string, error) {
	text, err := c.call(ctx, polishMemoSystem, draft)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty memo response")
	}
	return text, nil
}

// call sends one prompt and returns the concatenated text blocks with
// any markdown code fences stripped.
func (c *Client) call(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("advisor call failed: %w", err)
	}

	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	raw := strings.TrimSpace(strings.Join(parts, ""))
	if raw == "" {
		return "", errors.New("empty response")
	}
	return stripFences(raw), nil
}

// stripFences removes a wrapping markdown code fence if present.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
