// Package risk assigns thematic categories to free-text risk
// descriptions with keyword heuristics.
package risk

import (
	"strings"

	"github.com/decisionlab/compass/internal/models"
)

// keywordGroup maps a set of signal words to a theme. Groups are
// checked in order and the first hit wins, so broader themes must
// come after the more specific ones that share vocabulary.
type keywordGroup struct {
	theme    models.Theme
	keywords []string
}

var keywordGroups = []keywordGroup{
	{models.ThemeOrganizational, []string{"executive", "sponsor", "politics", "reorg", "budget", "priority", "competitive pressure"}},
	{models.ThemeOrganizational, []string{"regulatory", "compliance", "legal", "audit"}},
	{models.ThemeOrganizational, []string{"talent", "hiring", "team", "skill", "capacity"}},
	{models.ThemeTechnical, []string{"tech", "integration", "scalability", "infrastructure", "legacy"}},
	{models.ThemeMarket, []string{"market", "competitor", "customer", "demand"}},
}

// Classify maps a risk description to a theme. Matching is
// case-insensitive and deterministic; descriptions that hit no group
// fall through to ThemeOther.
func Classify(description string) models.Theme {
	lower := strings.ToLower(description)
	for _, g := range keywordGroups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.theme
			}
		}
	}
	return models.ThemeOther
}
