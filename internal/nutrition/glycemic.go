package nutrition

// Glycemic load guidance bands, relative to a daily GL target.
const (
	GLBandNone     = "No food logged"
	GLBandVeryLow  = "Very Low GL"
	GLBandLow      = "Low GL"
	GLBandModerate = "Moderate GL"
	GLBandHigh     = "High GL"
	GLBandVeryHigh = "Very High GL"
)

// GlycemicLoad estimates the blood-sugar impact of one food item from its
// glycemic index and carbohydrate grams: GI × carbs / 100.
func GlycemicLoad(glycemicIndex, carbsG float64) float64 {
	return glycemicIndex * carbsG / 100
}

// CarbSource is the slice of a logged item that glycemic-load aggregation
// needs.
type CarbSource struct {
	GlycemicIndex float64
	CarbsG        float64
}

// DailyGlycemicLoad sums the glycemic load of all items logged on a day.
func DailyGlycemicLoad(items []CarbSource) float64 {
	var total float64
	for _, it := range items {
		total += GlycemicLoad(it.GlycemicIndex, it.CarbsG)
	}
	return total
}

// GlycemicLoadBand classifies a daily GL total against a daily target.
func GlycemicLoadBand(current, target float64) string {
	switch {
	case current == 0:
		return GLBandNone
	case current <= 0.6*target:
		return GLBandVeryLow
	case current <= 0.8*target:
		return GLBandLow
	case current <= target:
		return GLBandModerate
	case current <= 1.2*target:
		return GLBandHigh
	default:
		return GLBandVeryHigh
	}
}
