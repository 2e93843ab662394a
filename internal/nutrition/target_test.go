package nutrition

import "testing"

// profileWithBMI returns a complete male maintain-goal profile at 175cm whose
// weight is chosen to hit the requested BMI exactly.
func profileWithBMI(bmi float64, goal string) Profile {
	const heightCM = 175.0
	heightM := heightCM / 100
	return Profile{
		Gender:        GenderMale,
		Age:           30,
		HeightCM:      heightCM,
		WeightKG:      bmi * heightM * heightM,
		ActivityLevel: ActivityModerate,
		FitnessGoal:   goal,
	}
}

// TestCalculateCalorieTarget_Reference pins the worked example: male, 30y,
// 175cm, 70kg, moderate activity, maintain goal.
//
// BMR = 10×70 + 6.25×175 − 5×30 + 5 = 1648.75 → 1649
// TDEE = 1648.75 × 1.55 = 2555.5625 → 2556
func TestCalculateCalorieTarget_Reference(t *testing.T) {
	p := Profile{
		Gender:        GenderMale,
		Age:           30,
		HeightCM:      175,
		WeightKG:      70,
		ActivityLevel: ActivityModerate,
		FitnessGoal:   GoalMaintain,
	}
	got := CalculateCalorieTarget(p)

	if got.BMI != "22.9" {
		t.Errorf("BMI = %q, want %q", got.BMI, "22.9")
	}
	if got.BMICategory != CategoryNormal {
		t.Errorf("category = %q, want %q", got.BMICategory, CategoryNormal)
	}
	if got.BMIWarning != "" {
		t.Errorf("warning = %q, want empty", got.BMIWarning)
	}
	if got.BMR != 1649 {
		t.Errorf("BMR = %d, want 1649", got.BMR)
	}
	if got.TDEE != 2556 {
		t.Errorf("TDEE = %d, want 2556", got.TDEE)
	}
	if got.Calories != 2556 {
		t.Errorf("calories = %d, want 2556", got.Calories)
	}
}

// TestCalculateCalorieTarget_IncompleteProfile verifies the defined empty
// result when any required field is missing.
func TestCalculateCalorieTarget_IncompleteProfile(t *testing.T) {
	base := profileWithBMI(22, GoalMaintain)
	cases := []struct {
		name  string
		mutFn func(p *Profile)
	}{
		{"zero age", func(p *Profile) { p.Age = 0 }},
		{"zero height", func(p *Profile) { p.HeightCM = 0 }},
		{"zero weight", func(p *Profile) { p.WeightKG = 0 }},
		{"empty gender", func(p *Profile) { p.Gender = "" }},
		{"empty activity", func(p *Profile) { p.ActivityLevel = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mutFn(&p)
			got := CalculateCalorieTarget(p)
			want := CalorieResult{BMI: "0.0", BMICategory: CategoryNormal}
			if got != want {
				t.Errorf("CalculateCalorieTarget() = %+v, want %+v", got, want)
			}
		})
	}
}

// TestBMIBand_Boundaries checks the category thresholds at exactly 16.5,
// 18.5, 25, and 30, plus a value inside each band.
func TestBMIBand_Boundaries(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{15.0, CategorySeverelyUnderweight},
		{16.4999, CategorySeverelyUnderweight},
		{16.5, CategoryUnderweight},
		{17.9, CategoryUnderweight},
		{18.5, CategoryNormal},
		{22.0, CategoryNormal},
		{24.9999, CategoryNormal},
		{25.0, CategoryOverweight},
		{29.9999, CategoryOverweight},
		{30.0, CategoryObese},
		{45.0, CategoryObese},
	}
	for _, tc := range cases {
		got, _ := bmiBand(tc.bmi)
		if got != tc.want {
			t.Errorf("bmiBand(%.4f) = %q, want %q", tc.bmi, got, tc.want)
		}
	}
}

// TestCalculateCalorieTarget_GoalAdjustment verifies the ±500 goal shift for
// a normal-BMI profile.
func TestCalculateCalorieTarget_GoalAdjustment(t *testing.T) {
	maintain := CalculateCalorieTarget(profileWithBMI(22, GoalMaintain))
	lose := CalculateCalorieTarget(profileWithBMI(22, GoalLose))
	gain := CalculateCalorieTarget(profileWithBMI(22, GoalGain))

	if lose.Calories != maintain.Calories-500 {
		t.Errorf("lose calories = %d, want %d", lose.Calories, maintain.Calories-500)
	}
	if gain.Calories != maintain.Calories+500 {
		t.Errorf("gain calories = %d, want %d", gain.Calories, maintain.Calories+500)
	}
}

// TestCalculateCalorieTarget_SeverelyUnderweightLose verifies that the weight
// loss deficit is fully negated below BMI 16.5: the target falls back to
// maintenance (TDEE) and the warning gains the not-recommended suffix.
func TestCalculateCalorieTarget_SeverelyUnderweightLose(t *testing.T) {
	for _, bmi := range []float64{12, 14.5, 16.4} {
		got := CalculateCalorieTarget(profileWithBMI(bmi, GoalLose))
		if got.Calories != got.TDEE {
			t.Errorf("bmi %.1f: calories = %d, want TDEE %d", bmi, got.Calories, got.TDEE)
		}
		want := "Severely underweight - Please consult a healthcare professional - Weight loss not recommended"
		if got.BMIWarning != want {
			t.Errorf("bmi %.1f: warning = %q, want %q", bmi, got.BMIWarning, want)
		}
	}
}

// TestCalculateCalorieTarget_BMIAdjustments covers the remaining BMI-based
// shifts, each expressed relative to the maintain-goal result at the same BMI.
func TestCalculateCalorieTarget_BMIAdjustments(t *testing.T) {
	cases := []struct {
		name        string
		bmi         float64
		goal        string
		wantShift   int
		wantWarning string
	}{
		{"severely underweight gain stacks +300", 15, GoalGain, 500 + 300,
			"Severely underweight - Please consult a healthcare professional"},
		{"underweight gain stacks +200", 17.5, GoalGain, 500 + 200, "Underweight"},
		{"overweight lose stacks -300", 27, GoalLose, -500 - 300, "Overweight"},
		{"obese lose stacks -300", 33, GoalLose, -500 - 300,
			"Obese - Please consult a healthcare professional"},
		{"overweight gain advisory only", 27, GoalGain, 500,
			"Overweight - Weight gain may not be advisable"},
		{"obese gain advisory only", 33, GoalGain, 500,
			"Obese - Please consult a healthcare professional - Weight gain may not be advisable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			maintain := CalculateCalorieTarget(profileWithBMI(tc.bmi, GoalMaintain))
			got := CalculateCalorieTarget(profileWithBMI(tc.bmi, tc.goal))
			if got.Calories != maintain.Calories+tc.wantShift {
				t.Errorf("calories = %d, want %d", got.Calories, maintain.Calories+tc.wantShift)
			}
			if got.BMIWarning != tc.wantWarning {
				t.Errorf("warning = %q, want %q", got.BMIWarning, tc.wantWarning)
			}
		})
	}
}

// TestCalculateCalorieTarget_FemaleConstant verifies the −161 female constant:
// the male and female BMR differ by exactly 166 for identical biometrics.
func TestCalculateCalorieTarget_FemaleConstant(t *testing.T) {
	male := profileWithBMI(22, GoalMaintain)
	female := male
	female.Gender = GenderFemale

	m := CalculateCalorieTarget(male)
	f := CalculateCalorieTarget(female)
	if m.BMR-f.BMR != 166 {
		t.Errorf("male BMR − female BMR = %d, want 166", m.BMR-f.BMR)
	}
}

// TestCalculateCalorieTarget_UnknownActivityFallsBack verifies the sedentary
// fallback multiplier for unrecognized activity strings.
func TestCalculateCalorieTarget_UnknownActivityFallsBack(t *testing.T) {
	p := profileWithBMI(22, GoalMaintain)
	p.ActivityLevel = "extreme"
	got := CalculateCalorieTarget(p)

	sedentary := p
	sedentary.ActivityLevel = ActivitySedentary
	want := CalculateCalorieTarget(sedentary)
	if got.TDEE != want.TDEE || got.Calories != want.Calories {
		t.Errorf("unknown activity TDEE/calories = %d/%d, want sedentary %d/%d",
			got.TDEE, got.Calories, want.TDEE, want.Calories)
	}
}
