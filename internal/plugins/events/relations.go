package events

import (
	"log/slog"
	"sort"
)

// Related holds an event's related events bucketed by date.
type Related struct {
	Preceding  []Event
	Succeeding []Event
}

// BucketRelated splits related events around anchor. An event starting
// strictly after the anchor succeeds it; everything else, including a
// same-day start, precedes it. Related events without a start date are
// dropped. If the anchor has no start date, every dated event precedes it.
// Both buckets are sorted by start date, then ID.
func BucketRelated(anchor *Event, related []Event) Related {
	out := Related{Preceding: []Event{}, Succeeding: []Event{}}
	for _, other := range related {
		if other.ID == anchor.ID {
			continue
		}
		if other.StartDate == nil {
			slog.Warn("related event has no start date",
				slog.Int("event_id", anchor.ID),
				slog.Int("related_id", other.ID),
			)
			continue
		}
		if anchor.StartDate != nil && other.StartDate.After(*anchor.StartDate) {
			out.Succeeding = append(out.Succeeding, other)
		} else {
			out.Preceding = append(out.Preceding, other)
		}
	}
	sortByStart(out.Preceding)
	sortByStart(out.Succeeding)
	return out
}

// sortByStart orders dated events ascending by start date, ties by ID.
func sortByStart(list []Event) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].StartDate, list[j].StartDate
		if !a.Equal(*b) {
			return a.Before(*b)
		}
		return list[i].ID < list[j].ID
	})
}
