// Package pages holds the server-rendered HTML pages.
package pages

// TimelineLink is one entry on the index page.
type TimelineLink struct {
	Slug     string
	Title    string
	Subtitle string
}
