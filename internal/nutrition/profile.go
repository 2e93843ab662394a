// Package nutrition implements the calorie, macro, sugar, and glycemic-load
// target calculations. Everything here is a pure function of its inputs;
// callers wire in the stored profile and preferences.
package nutrition

// Gender values accepted in a profile. Any value other than GenderMale uses
// the female Mifflin-St Jeor constant.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Activity levels. Unknown values fall back to the sedentary multiplier.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// Fitness goals.
const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

// Profile holds the biometric inputs for a target calculation. A profile with
// any required field missing still produces a defined result (all zeros) from
// CalculateCalorieTarget rather than an error.
type Profile struct {
	Gender        string  `json:"gender"`
	Age           int     `json:"age"`
	HeightCM      float64 `json:"height_cm"`
	WeightKG      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	FitnessGoal   string  `json:"fitness_goal"`
}

// Complete reports whether every field needed for a meaningful calculation is
// present.
func (p Profile) Complete() bool {
	return p.Age > 0 && p.HeightCM > 0 && p.WeightKG > 0 &&
		p.Gender != "" && p.ActivityLevel != ""
}
