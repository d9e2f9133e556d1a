package events

import (
	"log/slog"
	"sort"
)

// ExpandYears returns every year touched by the given events, deduplicated
// and ascending. A start-only event contributes its start year; a ranged
// event contributes each year from start to end inclusive. Events without
// a usable start date, or ending in a year before they start, are skipped.
// MariaDB's zero date scans as the zero time and counts as missing.
func ExpandYears(ranges []DateRange) []int {
	seen := make(map[int]struct{})
	for _, r := range ranges {
		if r.StartDate == nil || r.StartDate.IsZero() {
			slog.Warn("skipping event without start date for years",
				slog.Int("event_id", r.EventID), slog.String("name", r.Name))
			continue
		}
		first := r.StartDate.Year()
		last := first
		if r.EndDate != nil && !r.EndDate.IsZero() {
			// Only the years matter: an end earlier in the start year still
			// counts that year.
			if r.EndDate.Year() < first {
				slog.Warn("skipping event ending before it starts",
					slog.Int("event_id", r.EventID), slog.String("name", r.Name))
				continue
			}
			last = r.EndDate.Year()
		}
		for y := first; y <= last; y++ {
			seen[y] = struct{}{}
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
