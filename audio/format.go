package audio

import "fmt"

// FormatDuration is the one canonical duration formatter: h:mm:ss once hours
// are involved, m:ss otherwise. Negative or unknown values render as 0:00.
func FormatDuration(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}
