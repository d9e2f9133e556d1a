// Package themes manages the global theme vocabulary and which themes are
// attached to each event. Themes are read publicly through the timeline
// themes endpoint; this widget is the admin side.
package themes

// Theme is a label events can carry, e.g. "voting" -> "Voting Rights".
type Theme struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// --- Request DTOs (bound from HTTP requests) ---

// SaveThemeRequest holds the data submitted when creating or renaming a
// theme. An empty slug is derived from the name on create and left
// unchanged on update.
type SaveThemeRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SetEventThemesRequest replaces every theme on an event with the given set.
type SetEventThemesRequest struct {
	ThemeIDs []int `json:"theme_ids"`
}
