package nutrition

import "math"

// Energy density per gram of each macronutrient (kcal/g). Fixed physiological
// constants; every percentage↔gram conversion in the repo goes through this
// file so the rounding rules stay in one place.
const (
	KcalPerGramProtein = 4.0
	KcalPerGramCarbs   = 4.0
	KcalPerGramFat     = 9.0
	KcalPerGramSugar   = 4.0
)

// gramsForShare converts a percentage share of a calorie budget into whole
// grams of a macronutrient.
func gramsForShare(calories int, percent, kcalPerGram float64) int {
	return int(math.Round(float64(calories) * percent / 100 / kcalPerGram))
}

// caloriePercent returns the share of a calorie budget that the given grams
// of a macronutrient represent, as a percentage. Zero budget yields 0.
func caloriePercent(calories int, grams, kcalPerGram float64) float64 {
	if calories <= 0 {
		return 0
	}
	return grams * kcalPerGram / float64(calories) * 100
}

// round1 rounds to one decimal place, the precision used for macro split
// percentages.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
