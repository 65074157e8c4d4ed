package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/mohammedsoliman1619/fpp815/internal/timeline"
)

var categoryIcons = map[timeline.Category]string{
	timeline.CategoryTask:      "📋",
	timeline.CategoryEvent:     "📅",
	timeline.CategoryGoal:      "🎯",
	timeline.CategoryReminder:  "⏰",
	timeline.CategoryTimeBlock: "🧱",
}

var intensityLabels = map[timeline.Intensity]string{
	timeline.IntensityNone:       "free",
	timeline.IntensityLight:      "light",
	timeline.IntensityModerate:   "moderate",
	timeline.IntensityHeavy:      "heavy",
	timeline.IntensityOverloaded: "overloaded",
}

// Agenda renders a day's (or longer window's) timeline with a per-day
// workload summary line.
func Agenda(title string, items []timeline.Item, windowStart, windowEnd time.Time) string {
	var sb strings.Builder
	sb.WriteString("**" + title + "**")
	if windowEnd.Sub(windowStart) > 24*time.Hour {
		sb.WriteString(fmt.Sprintf(" (%s – %s)",
			windowStart.Format("Jan 2"), windowEnd.Format("Jan 2")))
	}
	sb.WriteString("\n")

	if len(items) == 0 {
		sb.WriteString("\nNothing scheduled.\n")
		return sb.String()
	}

	var currentDay string
	for _, it := range items {
		day := it.StartTime.Format("2006-01-02 (Mon)")
		if day != currentDay {
			currentDay = day
			minutes := timeline.MinutesOn(items, it.StartTime)
			sb.WriteString(fmt.Sprintf("\n**%s** — %s (%s)\n",
				day, formatMinutes(minutes), intensityLabels[timeline.IntensityOf(minutes)]))
		}
		sb.WriteString("• " + Line(it) + "\n")
	}
	return sb.String()
}

// Line renders one timeline item as a single agenda row.
func Line(it timeline.Item) string {
	var sb strings.Builder
	sb.WriteString(it.StartTime.Format("15:04"))
	if it.EndTime != nil {
		sb.WriteString("–" + it.EndTime.Format("15:04"))
	}
	sb.WriteString(" " + categoryIcons[it.Category] + " " + it.Title)
	if it.Project != "" {
		sb.WriteString(" [" + it.Project + "]")
	}
	if it.IsAutoRolled {
		sb.WriteString(" (rolled over)")
	}
	return sb.String()
}

// Conflicts renders the overlap report for one item.
func Conflicts(it timeline.Item, conflicts []timeline.Item) string {
	if len(conflicts) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚠️ **%s** overlaps with:\n", it.Title))
	for _, c := range conflicts {
		sb.WriteString("• " + Line(c) + "\n")
	}
	return sb.String()
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}
