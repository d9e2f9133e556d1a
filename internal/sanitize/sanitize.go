// Package sanitize cleans editor-supplied HTML before it is stored. Event,
// finding and group descriptions are written through the admin API and
// rendered as HTML by the timeline viewer.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy  *bluemonday.Policy
	plainPolicy *bluemonday.Policy
	policyOnce  sync.Once
)

// initPolicies builds both policies once.
func initPolicies() {
	policyOnce.Do(func() {
		richPolicy = bluemonday.UGCPolicy()
		// Footnote-style citation anchors link back to citation ids.
		richPolicy.AllowAttrs("data-citation-id").OnElements("a", "sup")
		richPolicy.AllowAttrs("class").OnElements("span", "p", "blockquote")

		plainPolicy = bluemonday.StrictPolicy()
	})
}

// HTML strips dangerous markup (scripts, event handlers, javascript: URLs)
// from rich description fields while keeping formatting.
func HTML(input string) string {
	if input == "" {
		return ""
	}
	initPolicies()
	return richPolicy.Sanitize(input)
}

// Text strips all markup from single-line fields such as titles and names.
// Entities escaped by the policy are decoded again since the result is
// stored as plain text.
func Text(input string) string {
	if input == "" {
		return ""
	}
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(input)))
}
