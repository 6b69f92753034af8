package models

import (
	"fmt"
	"strings"
)

// Theme is the coarse thematic category assigned to a risk by the
// keyword classifier.
type Theme string

const (
	ThemeExecution      Theme = "execution"
	ThemeMarket         Theme = "market"
	ThemeTechnical      Theme = "technical"
	ThemeOrganizational Theme = "organizational"
	ThemeFinancial      Theme = "financial"
	ThemeOther          Theme = "other"
)

func (t Theme) String() string {
	return string(t)
}

// Level grades a risk's likelihood or impact.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

var levelRank = map[Level]int{
	LevelLow:    0,
	LevelMedium: 1,
	LevelHigh:   2,
}

// AtLeast returns true if l is at or above the target level.
func (l Level) AtLeast(target Level) bool {
	return levelRank[l] >= levelRank[target]
}

// ParseLevel converts a string flag value to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return LevelLow, nil
	case "medium":
		return LevelMedium, nil
	case "high":
		return LevelHigh, nil
	default:
		return LevelLow, fmt.Errorf("invalid level %q: must be low, medium, or high", s)
	}
}

// Risk is one identified threat to the decision's outcome. Theme is
// assigned by the classifier from the description text.
type Risk struct {
	Description string `yaml:"description" json:"description"`
	Theme       Theme  `yaml:"theme" json:"theme"`
	Likelihood  Level  `yaml:"likelihood" json:"likelihood"`
	Impact      Level  `yaml:"impact" json:"impact"`
	Mitigation  string `yaml:"mitigation,omitempty" json:"mitigation,omitempty"`
}

// Complete reports whether the risk has the fields the synthesis gate
// requires: a description plus graded likelihood and impact.
func (r Risk) Complete() bool {
	return strings.TrimSpace(r.Description) != "" && r.Likelihood != "" && r.Impact != ""
}
