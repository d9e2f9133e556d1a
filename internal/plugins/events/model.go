// Package events serves the timeline's events: the static per-timeline
// export, a single event with its related events, and the list of years
// the timeline touches.
//
// Relationships are stored directed (preceding -> succeeding) but shown as
// undirected: related events are bucketed by date relative to the event
// being viewed, not by how the row was entered.
package events

import (
	"time"

	"github.com/keyxmakerx/timeline/internal/datefmt"
	"github.com/keyxmakerx/timeline/internal/plugins/citations"
)

// Type classifies an event for the viewer's filters.
type Type string

// Event types. Must match the events.type ENUM.
const (
	TypeUS          Type = "us"
	TypeWorld       Type = "world"
	TypeLegislation Type = "legislation"
	TypeCaselaw     Type = "caselaw"
)

// Event is a dated entry on a timeline.
type Event struct {
	ID       int
	Timeline string
	Name     string

	// StartDate may be nil for events still being researched. Such events
	// cannot be ordered or bucketed into years.
	StartDate *time.Time
	EndDate   *time.Time

	DescriptionShort string
	DescriptionLong  string
	Hide             bool
	Type             Type

	Citations  []citations.Citation
	GroupSlugs []string
	ThemeSlugs []string
	Weight     *Weight
	Image      *Image
}

// Weight is an importance level driving display prominence.
type Weight struct {
	ID          int
	Level       *int
	Description string
}

// Image is the event's illustration, as joined onto the event row.
type Image struct {
	ID         int
	Filename   string
	Thumbnail  string
	CitationID *int
}

// DateRange is the slice of an event needed for year expansion.
type DateRange struct {
	EventID   int
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
}

// --- JSON projections ---

// JSON is an event's projection for the timeline viewer. Field names are
// the viewer's contract.
type JSON struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	Timeline         string           `json:"timeline"`
	Type             Type             `json:"type"`
	StartDate        *string          `json:"start_date"`
	StartDateParsed  *string          `json:"start_date_parsed"`
	EndDate          *string          `json:"end_date"`
	EndDateParsed    *string          `json:"end_date_parsed"`
	DescriptionShort string           `json:"description_short"`
	DescriptionLong  string           `json:"description_long"`
	Citations        []citations.JSON `json:"citations"`
	Groups           []string         `json:"groups"`
	Themes           []string         `json:"themes"`
	Weight           *WeightJSON      `json:"weight"`
	Image            *ImageJSON       `json:"image"`
}

// WeightJSON is the weight projection.
type WeightJSON struct {
	Level       *int   `json:"level"`
	Description string `json:"description"`
}

// ImageJSON is the image projection. URLs are absolute paths under the
// media URL prefix.
type ImageJSON struct {
	ID           int    `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	CitationID   *int   `json:"citation_id"`
}

// RelatedJSON holds related events bucketed relative to the viewed event.
type RelatedJSON struct {
	Preceding  []JSON `json:"preceding"`
	Succeeding []JSON `json:"succeeding"`
}

// DetailJSON is the single-event endpoint payload.
type DetailJSON struct {
	Event         JSON        `json:"event"`
	RelatedEvents RelatedJSON `json:"related_events"`
}

// AsJSON builds the event's projection. mediaURL prefixes image paths.
// Relations are always emitted as arrays, never null.
func (e *Event) AsJSON(mediaURL string) JSON {
	out := JSON{
		ID:               e.ID,
		Name:             e.Name,
		Timeline:         e.Timeline,
		Type:             e.Type,
		StartDate:        datefmt.ISO(e.StartDate),
		StartDateParsed:  datefmt.Long(e.StartDate),
		EndDate:          datefmt.ISO(e.EndDate),
		EndDateParsed:    datefmt.Long(e.EndDate),
		DescriptionShort: e.DescriptionShort,
		DescriptionLong:  e.DescriptionLong,
		Citations:        make([]citations.JSON, 0, len(e.Citations)),
		Groups:           nonNil(e.GroupSlugs),
		Themes:           nonNil(e.ThemeSlugs),
	}
	for i := range e.Citations {
		out.Citations = append(out.Citations, e.Citations[i].AsJSON())
	}
	if e.Weight != nil {
		out.Weight = &WeightJSON{Level: e.Weight.Level, Description: e.Weight.Description}
	}
	if e.Image != nil {
		img := &ImageJSON{
			ID:         e.Image.ID,
			URL:        mediaURL + "/" + e.Image.Filename,
			CitationID: e.Image.CitationID,
		}
		if e.Image.Thumbnail != "" {
			img.ThumbnailURL = mediaURL + "/" + e.Image.Thumbnail
		} else {
			img.ThumbnailURL = img.URL
		}
		out.Image = img
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
