package nutrition

import "math"

// Macro allocation modes.
const (
	MacroModePercentage = "percentage"
	MacroModeCustom     = "custom"
)

// Macro identifiers, used to address a single component of a split.
const (
	MacroProtein = "protein"
	MacroCarbs   = "carbs"
	MacroFat     = "fat"
)

// MacroSplit is a percentage allocation of daily calories across the three
// macronutrients. A valid split sums to 100.
type MacroSplit struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// GramTargets holds daily gram targets per macronutrient.
type GramTargets struct {
	Protein int `json:"protein_g"`
	Carbs   int `json:"carbs_g"`
	Fat     int `json:"fat_g"`
}

// splitTolerance absorbs the one-decimal rounding that RescaleSplit applies;
// a stored split may legitimately sum to 99.9 or 100.1. splitEpsilon keeps
// float64 addition noise from tipping a sum sitting exactly on the tolerance
// boundary (33.3+33.3+33.3 adds up to 99.89999...).
const (
	splitTolerance = 0.1
	splitEpsilon   = 1e-9
)

// ValidateSplit reports whether a split is acceptable: every component
// non-negative and the total within rounding distance of 100. A split that is
// off by a whole point (e.g. 25/45/29) fails.
func ValidateSplit(s MacroSplit) bool {
	if s.Protein < 0 || s.Carbs < 0 || s.Fat < 0 {
		return false
	}
	return math.Abs(s.Protein+s.Carbs+s.Fat-100) <= splitTolerance+splitEpsilon
}

// SplitToGrams converts a percentage split of a calorie budget into whole-gram
// targets using the 4/4/9 kcal-per-gram constants.
func SplitToGrams(calories int, s MacroSplit) GramTargets {
	return GramTargets{
		Protein: gramsForShare(calories, s.Protein, KcalPerGramProtein),
		Carbs:   gramsForShare(calories, s.Carbs, KcalPerGramCarbs),
		Fat:     gramsForShare(calories, s.Fat, KcalPerGramFat),
	}
}

// MacroTargets resolves the active gram targets for a calorie budget. In
// custom mode the stored gram targets are returned verbatim; a nil custom
// target (never set) falls back to the percentage computation, which is also
// the first-time default.
func MacroTargets(calories int, mode string, split MacroSplit, custom *GramTargets) GramTargets {
	if mode == MacroModeCustom && custom != nil {
		return *custom
	}
	return SplitToGrams(calories, split)
}

// RescaleSplit sets one component of a split to value and rebalances the
// other two so the total stays at 100: the first absorbs its share of the
// change proportionally to its current relative weight, rounded to one
// decimal and floored at 0, and the second takes whatever keeps the sum at
// 100, so one-decimal rounding never leaks out of the total. When both
// others are zero the change is split evenly between them. The requested
// value is clamped to [0, 100].
func RescaleSplit(s MacroSplit, macro string, value float64) MacroSplit {
	value = math.Min(100, math.Max(0, value))

	get := func(m string) float64 {
		switch m {
		case MacroProtein:
			return s.Protein
		case MacroCarbs:
			return s.Carbs
		default:
			return s.Fat
		}
	}
	set := func(out *MacroSplit, m string, v float64) {
		switch m {
		case MacroProtein:
			out.Protein = v
		case MacroCarbs:
			out.Carbs = v
		default:
			out.Fat = v
		}
	}

	var others []string
	for _, m := range []string{MacroProtein, MacroCarbs, MacroFat} {
		if m != macro {
			others = append(others, m)
		}
	}

	delta := value - get(macro)
	a, b := get(others[0]), get(others[1])

	var da float64
	if sum := a + b; sum > 0 {
		da = round1(a / sum * delta)
	} else {
		da = round1(delta / 2)
	}

	edited := round1(value)
	newA := math.Max(0, round1(a-da))
	// The second component absorbs the rounding residual so the three values
	// re-sum to 100 exactly.
	newB := math.Max(0, round1(100-edited-newA))

	out := s
	set(&out, macro, edited)
	set(&out, others[0], newA)
	set(&out, others[1], newB)
	return out
}
