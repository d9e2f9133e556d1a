// Package datefmt renders nullable dates the way the timeline viewer expects
// them: an ISO day string for sorting and a long form for display.
package datefmt

import "time"

const (
	// ISOLayout is the machine form, e.g. "1965-03-07".
	ISOLayout = "2006-01-02"

	// LongLayout is the display form, e.g. "March 07, 1965".
	LongLayout = "January 02, 2006"
)

// ISO returns t as "YYYY-MM-DD", or nil when t is nil.
func ISO(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(ISOLayout)
	return &s
}

// Long returns t as "Month DD, YYYY", or nil when t is nil.
func Long(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(LongLayout)
	return &s
}

// Parse parses an optional "YYYY-MM-DD" string. Empty input yields nil.
func Parse(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
