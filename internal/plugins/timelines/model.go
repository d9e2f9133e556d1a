// Package timelines owns per-timeline metadata (Meta) and the themes shared
// by all timelines. Every read-API route is scoped to a timeline slug, and
// this plugin's middleware resolves that slug before any handler runs: an
// unregistered slug is a 404 for every endpoint.
package timelines

// Meta is the per-timeline configuration keyed by slug.
type Meta struct {
	ID          int    `json:"-"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}

// Theme is a named thematic thread events can be tagged with.
type Theme struct {
	ID   int
	Slug string
	Name string
}

// ThemeMap is the themes endpoint payload: theme slug -> theme name.
type ThemeMap map[string]string

// NewThemeMap builds the slug -> name map from a theme list.
func NewThemeMap(themes []Theme) ThemeMap {
	m := make(ThemeMap, len(themes))
	for _, t := range themes {
		m[t.Slug] = t.Name
	}
	return m
}
