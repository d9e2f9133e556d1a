package events

import (
	"reflect"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestExpandYears(t *testing.T) {
	tests := []struct {
		name   string
		ranges []DateRange
		want   []int
	}{
		{
			name:   "range expands inclusively",
			ranges: []DateRange{{EventID: 1, StartDate: date(1965, 3, 7), EndDate: date(1968, 4, 4)}},
			want:   []int{1965, 1966, 1967, 1968},
		},
		{
			name:   "start only",
			ranges: []DateRange{{EventID: 1, StartDate: date(1954, 5, 17)}},
			want:   []int{1954},
		},
		{
			name: "overlaps are deduplicated and sorted",
			ranges: []DateRange{
				{EventID: 1, StartDate: date(1966, 1, 1), EndDate: date(1967, 1, 1)},
				{EventID: 2, StartDate: date(1954, 5, 17)},
				{EventID: 3, StartDate: date(1965, 1, 1), EndDate: date(1966, 12, 31)},
			},
			want: []int{1954, 1965, 1966, 1967},
		},
		{
			name: "missing start is skipped",
			ranges: []DateRange{
				{EventID: 1, Name: "undated"},
				{EventID: 2, StartDate: date(1920, 8, 18)},
			},
			want: []int{1920},
		},
		{
			name:   "end year before start year is skipped",
			ranges: []DateRange{{EventID: 1, StartDate: date(1970, 1, 1), EndDate: date(1960, 1, 1)}},
			want:   []int{},
		},
		{
			name: "zero start date is skipped",
			ranges: []DateRange{
				{EventID: 1, Name: "bad import", StartDate: &time.Time{}, EndDate: date(1968, 1, 1)},
				{EventID: 2, StartDate: date(1963, 8, 28)},
			},
			want: []int{1963},
		},
		{
			name:   "zero end date is treated as missing",
			ranges: []DateRange{{EventID: 1, StartDate: date(1954, 5, 17), EndDate: &time.Time{}}},
			want:   []int{1954},
		},
		{
			name:   "end earlier in the start year keeps the year",
			ranges: []DateRange{{EventID: 1, StartDate: date(1965, 6, 1), EndDate: date(1965, 3, 1)}},
			want:   []int{1965},
		},
		{
			name: "no events",
			want: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandYears(tt.ranges)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExpandYears() = %v, want %v", got, tt.want)
			}
		})
	}
}
