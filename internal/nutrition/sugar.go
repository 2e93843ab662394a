package nutrition

// Sugar preference modes: the authoritative value is either a percentage of
// daily calories or an explicit gram amount.
const (
	SugarModePercentage = "percentage"
	SugarModeGrams      = "grams"
)

// SugarPreference holds a sugar target in both representations. The field
// matching Mode is authoritative; the other is a denormalized convenience
// value kept in sync via Recompute whenever the calorie target changes.
type SugarPreference struct {
	Mode       string  `json:"mode"`
	Percentage float64 `json:"percentage"`
	Grams      int     `json:"grams"`
}

// Sugar guidance bands, keyed on the share of daily calories from sugar.
const (
	SugarBandVeryLow  = "Very Low (Ketosis-friendly)"
	SugarBandWHO      = "WHO Recommended"
	SugarBandModerate = "Moderate"
	SugarBandHigh     = "High (Consider reducing)"
)

// SugarTarget resolves the daily sugar gram target for a calorie budget.
func SugarTarget(calories int, pref SugarPreference) int {
	if pref.Mode == SugarModeGrams {
		return pref.Grams
	}
	return gramsForShare(calories, pref.Percentage, KcalPerGramSugar)
}

// Recompute refreshes the denormalized twin field from the authoritative one
// for the given calorie budget.
func (p SugarPreference) Recompute(calories int) SugarPreference {
	if p.Mode == SugarModeGrams {
		p.Percentage = round1(caloriePercent(calories, float64(p.Grams), KcalPerGramSugar))
	} else {
		p.Grams = gramsForShare(calories, p.Percentage, KcalPerGramSugar)
	}
	return p
}

// SugarBand classifies a preference for display. The band is always computed
// from the percent-of-calories view, regardless of the preference's native
// mode.
func SugarBand(calories int, pref SugarPreference) string {
	pct := pref.Percentage
	if pref.Mode == SugarModeGrams {
		pct = caloriePercent(calories, float64(pref.Grams), KcalPerGramSugar)
	}
	switch {
	case pct <= 5:
		return SugarBandVeryLow
	case pct <= 10:
		return SugarBandWHO
	case pct <= 20:
		return SugarBandModerate
	default:
		return SugarBandHigh
	}
}
