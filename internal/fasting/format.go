package fasting

import (
	"fmt"
	"strings"
	"time"
)

// ProgressPercent maps elapsed fast time to a display percentage. The curve
// is a heuristic, not tied to the goal duration: 1%/min for the first hour,
// 0.5%/min to the four-hour mark, 0.25%/min after that. The result is not
// capped; callers clamp to [0, 100] for display.
func ProgressPercent(elapsed time.Duration) float64 {
	minutes := elapsed.Minutes()
	switch {
	case minutes <= 60:
		return minutes
	case minutes <= 240:
		return 60 + (minutes-60)*0.5
	default:
		return 90 + (minutes-240)*0.25
	}
}

// FormatDuration renders a duration as a compact unit cascade, e.g.
// "1 day 1 hr 1 min 1 sec". Zero-valued units are omitted; a zero duration
// renders as "0 sec".
func FormatDuration(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}

	days := total / 86400
	total %= 86400
	hours := total / 3600
	total %= 3600
	minutes := total / 60
	seconds := total % 60

	var parts []string
	if days == 1 {
		parts = append(parts, "1 day")
	} else if days > 1 {
		parts = append(parts, fmt.Sprintf("%d days", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hr", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d min", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d sec", seconds))
	}
	return strings.Join(parts, " ")
}
