package events

import (
	"testing"
)

func ids(list []Event) []int {
	out := make([]int, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBucketRelated_IsSymmetric(t *testing.T) {
	a := Event{ID: 1, StartDate: date(1960, 2, 1)}
	b := Event{ID: 2, StartDate: date(1965, 3, 7)}

	fromA := BucketRelated(&a, []Event{b})
	if !equalIDs(ids(fromA.Succeeding), []int{2}) || len(fromA.Preceding) != 0 {
		t.Errorf("from A: expected B succeeding, got %+v", fromA)
	}

	fromB := BucketRelated(&b, []Event{a})
	if !equalIDs(ids(fromB.Preceding), []int{1}) || len(fromB.Succeeding) != 0 {
		t.Errorf("from B: expected A preceding, got %+v", fromB)
	}
}

func TestBucketRelated_SameDayPrecedes(t *testing.T) {
	anchor := Event{ID: 1, StartDate: date(1963, 8, 28)}
	twin := Event{ID: 2, StartDate: date(1963, 8, 28)}

	got := BucketRelated(&anchor, []Event{twin})
	if !equalIDs(ids(got.Preceding), []int{2}) {
		t.Errorf("expected same-day event preceding, got %+v", got)
	}
}

func TestBucketRelated_SortsByDateThenID(t *testing.T) {
	anchor := Event{ID: 10, StartDate: date(1950, 1, 1)}
	related := []Event{
		{ID: 5, StartDate: date(1970, 1, 1)},
		{ID: 4, StartDate: date(1960, 1, 1)},
		{ID: 3, StartDate: date(1960, 1, 1)},
		{ID: 2, StartDate: date(1940, 1, 1)},
		{ID: 1, StartDate: date(1930, 1, 1)},
	}

	got := BucketRelated(&anchor, related)
	if !equalIDs(ids(got.Preceding), []int{1, 2}) {
		t.Errorf("preceding = %v", ids(got.Preceding))
	}
	if !equalIDs(ids(got.Succeeding), []int{3, 4, 5}) {
		t.Errorf("succeeding = %v", ids(got.Succeeding))
	}
}

func TestBucketRelated_NullDates(t *testing.T) {
	anchor := Event{ID: 1, StartDate: date(1960, 1, 1)}
	undated := Event{ID: 2}
	later := Event{ID: 3, StartDate: date(1961, 1, 1)}

	got := BucketRelated(&anchor, []Event{undated, later})
	if len(got.Preceding) != 0 || !equalIDs(ids(got.Succeeding), []int{3}) {
		t.Errorf("expected undated event dropped, got %+v", got)
	}

	undatedAnchor := Event{ID: 4}
	got = BucketRelated(&undatedAnchor, []Event{later, undated})
	if !equalIDs(ids(got.Preceding), []int{3}) || len(got.Succeeding) != 0 {
		t.Errorf("expected everything preceding an undated anchor, got %+v", got)
	}
}

func TestBucketRelated_EmptyBucketsAreNotNil(t *testing.T) {
	got := BucketRelated(&Event{ID: 1}, nil)
	if got.Preceding == nil || got.Succeeding == nil {
		t.Error("expected empty, non-nil buckets")
	}
}
