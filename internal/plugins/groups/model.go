// Package groups manages the communities and organizations events are
// associated with, and the regions they are listed under. Groups are shared
// across timelines; the viewer toggles events on and off by group slug.
package groups

import (
	"strings"
	"time"
)

// Group is a community or organization events can be tagged with.
type Group struct {
	ID          int
	Name        string
	Slug        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time

	// RegionID is nil for groups not listed under a region.
	RegionID   *int
	RegionName string
	RegionSlug string
}

// Region is a geographic grouping of groups.
type Region struct {
	ID   int
	Name string
	Slug string
}

// DeriveSlug returns the slug for a group name: lowercase with spaces
// replaced by underscores ("North America" -> "north_america").
func DeriveSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// EnsureSlug sets the slug from the name when it has none. An existing
// slug is never regenerated, so renaming a group keeps its slug stable.
func (g *Group) EnsureSlug() {
	if g.Slug == "" {
		g.Slug = DeriveSlug(g.Name)
	}
}

// Pair is a [slug, name] entry of the groups endpoint.
type Pair [2]string

// RegionGroupJSON is a group inside a region listing. The double-underscore
// keys are part of the viewer's contract.
type RegionGroupJSON struct {
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	RegionName string `json:"region__name"`
	RegionSlug string `json:"region__slug"`
}

// RegionJSON is one entry of the groups-by-region endpoint.
type RegionJSON struct {
	Slug   string            `json:"slug"`
	Name   string            `json:"name"`
	Groups []RegionGroupJSON `json:"groups"`
}

// GroupJSON is the admin API's view of a saved group.
type GroupJSON struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	RegionID    *int    `json:"region_id"`
}

// --- Request DTOs (bound from HTTP requests) ---

// SaveGroupRequest is the admin API body for creating or updating a group.
type SaveGroupRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	RegionID    *int   `json:"region_id"`
}
