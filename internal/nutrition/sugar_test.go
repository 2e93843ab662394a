package nutrition

import "testing"

// TestSugarTarget verifies both preference modes: percentage converts at
// 4 kcal/g, grams pass through verbatim.
func TestSugarTarget(t *testing.T) {
	cases := []struct {
		name     string
		calories int
		pref     SugarPreference
		want     int
	}{
		{"10% of 2000 kcal", 2000, SugarPreference{Mode: SugarModePercentage, Percentage: 10}, 50},
		{"5% of 2556 kcal", 2556, SugarPreference{Mode: SugarModePercentage, Percentage: 5}, 32},
		{"explicit grams", 2000, SugarPreference{Mode: SugarModeGrams, Grams: 36}, 36},
		{"grams ignore calories", 0, SugarPreference{Mode: SugarModeGrams, Grams: 25}, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SugarTarget(tc.calories, tc.pref); got != tc.want {
				t.Errorf("SugarTarget(%d, %+v) = %d, want %d", tc.calories, tc.pref, got, tc.want)
			}
		})
	}
}

// TestSugarPreference_Recompute verifies the denormalized twin field is
// refreshed from the authoritative one when the calorie budget changes.
func TestSugarPreference_Recompute(t *testing.T) {
	p := SugarPreference{Mode: SugarModePercentage, Percentage: 10, Grams: 50}
	got := p.Recompute(1600)
	if got.Grams != 40 {
		t.Errorf("percentage mode grams = %d, want 40", got.Grams)
	}
	if got.Percentage != 10 {
		t.Errorf("percentage mode percentage changed: %.1f", got.Percentage)
	}

	g := SugarPreference{Mode: SugarModeGrams, Grams: 50, Percentage: 99}
	got = g.Recompute(2000)
	if got.Percentage != 10 {
		t.Errorf("grams mode percentage = %.1f, want 10", got.Percentage)
	}
	if got.Grams != 50 {
		t.Errorf("grams mode grams changed: %d", got.Grams)
	}
}

// TestSugarBand verifies banding boundaries on percent-of-calories, including
// normalization of gram-mode preferences.
func TestSugarBand(t *testing.T) {
	cases := []struct {
		name     string
		calories int
		pref     SugarPreference
		want     string
	}{
		{"5% exactly", 2000, SugarPreference{Mode: SugarModePercentage, Percentage: 5}, SugarBandVeryLow},
		{"10% exactly", 2000, SugarPreference{Mode: SugarModePercentage, Percentage: 10}, SugarBandWHO},
		{"15%", 2000, SugarPreference{Mode: SugarModePercentage, Percentage: 15}, SugarBandModerate},
		{"25%", 2000, SugarPreference{Mode: SugarModePercentage, Percentage: 25}, SugarBandHigh},
		// 50g × 4 kcal/g = 200 kcal of 2000 = 10%
		{"grams normalized to percent", 2000, SugarPreference{Mode: SugarModeGrams, Grams: 50}, SugarBandWHO},
		{"grams high share", 2000, SugarPreference{Mode: SugarModeGrams, Grams: 150}, SugarBandHigh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SugarBand(tc.calories, tc.pref); got != tc.want {
				t.Errorf("SugarBand(%d, %+v) = %q, want %q", tc.calories, tc.pref, got, tc.want)
			}
		})
	}
}
