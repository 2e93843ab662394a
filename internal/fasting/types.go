// Package fasting implements the fasting timer: a small Idle/Active state
// machine driven by an injected clock, plus the static catalog of fast
// presets and the display helpers for progress and durations.
package fasting

// FastType describes one fasting preset.
type FastType struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	DurationHours float64 `json:"duration_hours"`
	Description   string  `json:"description"`
}

// catalog is the fixed set of fasting presets.
var catalog = []FastType{
	{ID: "12-12", Name: "12:12", DurationHours: 12, Description: "12 hours fasting, 12 hours eating window"},
	{ID: "16-8", Name: "16:8", DurationHours: 16, Description: "16 hours fasting, 8 hours eating window"},
	{ID: "1-day", Name: "1-Day Fast", DurationHours: 24, Description: "Full day water fast"},
	{ID: "3-day", Name: "3-Day Fast", DurationHours: 72, Description: "Extended 72 hour fast"},
	{ID: "5-day", Name: "5-Day Fast", DurationHours: 120, Description: "Extended 120 hour fast"},
}

// Catalog returns the fasting presets. The returned slice is a copy.
func Catalog() []FastType {
	out := make([]FastType, len(catalog))
	copy(out, catalog)
	return out
}

// TypeByID looks up a preset by its ID.
func TypeByID(id string) (FastType, bool) {
	for _, ft := range catalog {
		if ft.ID == id {
			return ft, true
		}
	}
	return FastType{}, false
}

// DefaultType is the preset a fresh timer starts with.
func DefaultType() FastType {
	return catalog[1] // 16:8
}
