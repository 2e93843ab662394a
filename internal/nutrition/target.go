package nutrition

import (
	"math"
	"strconv"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used
// for input validation at the HTTP layer.
var activityMultipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// ValidActivityLevel reports whether s is a recognized activity level. The
// calculator itself tolerates unknown values (sedentary fallback); input
// validation at the edges uses this instead.
func ValidActivityLevel(s string) bool {
	_, ok := activityMultipliers[s]
	return ok
}

// BMI categories, non-overlapping, evaluated low to high.
const (
	CategorySeverelyUnderweight = "severely_underweight"
	CategoryUnderweight         = "underweight"
	CategoryNormal              = "normal"
	CategoryOverweight          = "overweight"
	CategoryObese               = "obese"
)

// CalorieResult is the output of CalculateCalorieTarget. BMR and TDEE are the
// pre-goal-adjustment figures; Calories is the final daily target after goal
// and BMI adjustments. BMI is formatted with one fraction digit for display.
type CalorieResult struct {
	Calories    int    `json:"calories"`
	BMI         string `json:"bmi"`
	BMICategory string `json:"bmi_category"`
	BMIWarning  string `json:"bmi_warning,omitempty"`
	BMR         int    `json:"bmr"`
	TDEE        int    `json:"tdee"`
}

// bmiBand returns the category and its display warning for a BMI value.
func bmiBand(bmi float64) (category, warning string) {
	switch {
	case bmi < 16.5:
		return CategorySeverelyUnderweight, "Severely underweight - Please consult a healthcare professional"
	case bmi < 18.5:
		return CategoryUnderweight, "Underweight"
	case bmi < 25:
		return CategoryNormal, ""
	case bmi < 30:
		return CategoryOverweight, "Overweight"
	default:
		return CategoryObese, "Obese - Please consult a healthcare professional"
	}
}

// CalculateCalorieTarget computes BMI, BMR (Mifflin-St Jeor), TDEE, and the
// final daily calorie target for a profile. An incomplete profile yields the
// defined empty result (all zeros, category "normal") rather than an error.
//
// All arithmetic stays in float64; each returned figure is rounded exactly
// once at the end, so TDEE is round(bmr×multiplier), not round(bmr)×multiplier.
func CalculateCalorieTarget(p Profile) CalorieResult {
	if !p.Complete() {
		return CalorieResult{BMI: "0.0", BMICategory: CategoryNormal}
	}

	heightM := p.HeightCM / 100
	bmi := p.WeightKG / (heightM * heightM)
	category, warning := bmiBand(bmi)

	bmr := 10*p.WeightKG + 6.25*p.HeightCM - 5*float64(p.Age)
	if p.Gender == GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	mult, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		mult = activityMultipliers[ActivitySedentary]
	}
	tdee := bmr * mult

	target := tdee
	switch p.FitnessGoal {
	case GoalLose:
		target -= 500
	case GoalGain:
		target += 500
	}

	// Safety adjustments for extreme BMI, applied after the goal adjustment.
	switch {
	case category == CategorySeverelyUnderweight && p.FitnessGoal == GoalGain:
		target += 300
	case category == CategorySeverelyUnderweight && p.FitnessGoal == GoalLose:
		// Negate the deficit entirely: back to maintenance.
		target = tdee
		warning += " - Weight loss not recommended"
	case category == CategoryUnderweight && p.FitnessGoal == GoalGain:
		target += 200
	case (category == CategoryOverweight || category == CategoryObese) && p.FitnessGoal == GoalLose:
		target -= 300
	case (category == CategoryOverweight || category == CategoryObese) && p.FitnessGoal == GoalGain:
		warning += " - Weight gain may not be advisable"
	}

	return CalorieResult{
		Calories:    int(math.Round(target)),
		BMI:         strconv.FormatFloat(bmi, 'f', 1, 64),
		BMICategory: category,
		BMIWarning:  warning,
		BMR:         int(math.Round(bmr)),
		TDEE:        int(math.Round(tdee)),
	}
}
