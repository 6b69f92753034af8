// Package money parses and formats abbreviated currency amounts such
// as "$2M" or "-$500K".
package money

import (
	"math"
	"strconv"
	"strings"
)

// suffix multipliers, matched case-insensitively.
var multipliers = map[byte]float64{
	'k': 1e3,
	'm': 1e6,
	'b': 1e9,
}

// ParseAmount converts a currency-like string into a signed numeric
// value. Currency symbols, commas, and whitespace are stripped; a
// trailing k/m/b multiplies by 1e3/1e6/1e9. Returns NaN when the
// remainder does not parse as a number.
func ParseAmount(text string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', '€', '£', ',', ' ', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(text))
	cleaned = strings.ToLower(cleaned)

	if cleaned == "" {
		return math.NaN()
	}

	mult := 1.0
	if m, ok := multipliers[cleaned[len(cleaned)-1]]; ok {
		mult = m
		cleaned = cleaned[:len(cleaned)-1]
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return math.NaN()
	}
	return v * mult
}

// FormatAmount renders a value as an abbreviated currency string:
// one decimal place with a B or M suffix at or above 1e9 and 1e6,
// a whole-number K form at or above 1e3, and plain dollars below
// that. Sign is preserved; NaN and infinities format as "$0".
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
	}
	abs := math.Abs(v)

	switch {
	case abs >= 1e9:
		return sign + "$" + strconv.FormatFloat(abs/1e9, 'f', 1, 64) + "B"
	case abs >= 1e6:
		return sign + "$" + strconv.FormatFloat(abs/1e6, 'f', 1, 64) + "M"
	case abs >= 1e3:
		return sign + "$" + strconv.FormatFloat(abs/1e3, 'f', 0, 64) + "K"
	default:
		return sign + "$" + strconv.FormatFloat(abs, 'f', 0, 64)
	}
}
