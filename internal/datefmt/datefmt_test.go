package datefmt

import (
	"testing"
	"time"
)

func TestISOAndLong(t *testing.T) {
	d := time.Date(1965, time.March, 7, 0, 0, 0, 0, time.UTC)
	if got := *ISO(&d); got != "1965-03-07" {
		t.Errorf("ISO = %q", got)
	}
	if got := *Long(&d); got != "March 07, 1965" {
		t.Errorf("Long = %q", got)
	}
}

func TestNilDates(t *testing.T) {
	if ISO(nil) != nil || Long(nil) != nil {
		t.Error("expected nil output for nil date")
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("1954-05-17")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 1954 || d.Month() != time.May || d.Day() != 17 {
		t.Errorf("unexpected date %s", d)
	}

	if d, err := Parse(""); err != nil || d != nil {
		t.Errorf("expected nil, nil for empty input; got %v, %v", d, err)
	}
	if _, err := Parse("May 17 1954"); err == nil {
		t.Error("expected error for non-ISO input")
	}
}
