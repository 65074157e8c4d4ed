package timeline

// FindConflicts returns every item whose [start, end) interval overlaps the
// candidate's. A candidate without an end time cannot conflict, and items
// without an end time (point-in-time reminders, due-date-only tasks) are never
// reported: only true intervals compete for the same stretch of time.
// Back-to-back intervals sharing a boundary do not conflict.
func FindConflicts(items []Item, candidate Item) []Item {
	conflicts := []Item{}
	if candidate.EndTime == nil {
		return conflicts
	}

	for _, it := range items {
		if it.ID == candidate.ID || it.EndTime == nil {
			continue
		}
		if candidate.StartTime.Before(*it.EndTime) && it.StartTime.Before(*candidate.EndTime) {
			conflicts = append(conflicts, it)
		}
	}
	return conflicts
}
