package nutrition

import (
	"math"
	"testing"
)

// TestDailyGlycemicLoad pins the aggregation example:
// (70×30/100) + (50×20/100) = 21 + 10 = 31.
func TestDailyGlycemicLoad(t *testing.T) {
	items := []CarbSource{
		{GlycemicIndex: 70, CarbsG: 30},
		{GlycemicIndex: 50, CarbsG: 20},
	}
	if got := DailyGlycemicLoad(items); math.Abs(got-31) > 1e-9 {
		t.Errorf("DailyGlycemicLoad = %.2f, want 31", got)
	}
	if got := DailyGlycemicLoad(nil); got != 0 {
		t.Errorf("DailyGlycemicLoad(nil) = %.2f, want 0", got)
	}
}

// TestGlycemicLoadBand verifies the banding thresholds relative to a daily
// target of 100, including the boundaries themselves.
func TestGlycemicLoadBand(t *testing.T) {
	const target = 100
	cases := []struct {
		current float64
		want    string
	}{
		{0, GLBandNone},
		{30, GLBandVeryLow},
		{60, GLBandVeryLow},
		{70, GLBandLow},
		{80, GLBandLow},
		{90, GLBandModerate},
		{100, GLBandModerate},
		{110, GLBandHigh},
		{120, GLBandHigh},
		{121, GLBandVeryHigh},
		{300, GLBandVeryHigh},
	}
	for _, tc := range cases {
		if got := GlycemicLoadBand(tc.current, target); got != tc.want {
			t.Errorf("GlycemicLoadBand(%.0f, %d) = %q, want %q", tc.current, target, got, tc.want)
		}
	}
}
