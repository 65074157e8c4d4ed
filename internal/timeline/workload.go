package timeline

import "time"

// Intensity classifies a day's total scheduled minutes.
type Intensity string

const (
	IntensityNone       Intensity = "none"
	IntensityLight      Intensity = "light"
	IntensityModerate   Intensity = "moderate"
	IntensityHeavy      Intensity = "heavy"
	IntensityOverloaded Intensity = "overloaded"
)

// MinutesOn sums the durations of all items starting on the same calendar day
// as day (local date components, not a 24h window). Items with a missing
// duration count as 30 minutes.
func MinutesOn(items []Item, day time.Time) int {
	total := 0
	for _, it := range items {
		if !sameDay(it.StartTime, day) {
			continue
		}
		minutes := it.DurationMinutes
		if minutes <= 0 {
			minutes = fallbackMinutes
		}
		total += minutes
	}
	return total
}

// IntensityOf buckets a minute total. Upper bounds are inclusive.
func IntensityOf(minutes int) Intensity {
	switch {
	case minutes <= 0:
		return IntensityNone
	case minutes <= 120:
		return IntensityLight
	case minutes <= 240:
		return IntensityModerate
	case minutes <= 360:
		return IntensityHeavy
	default:
		return IntensityOverloaded
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
