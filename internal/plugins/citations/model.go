// Package citations manages the sources backing timeline events: books,
// articles, web pages, case law and images. Saving a citation with a URL
// also archives that URL with the permanence service, once.
package citations

import (
	"time"

	"github.com/keyxmakerx/timeline/internal/datefmt"
)

// Type classifies a citation's source.
type Type string

// Citation types. Must match the citations.type ENUM.
const (
	TypeImage   Type = "image"
	TypeCaselaw Type = "caselaw"
	TypeWebpage Type = "webpage"
	TypeArticle Type = "article"
	TypeBook    Type = "book"
)

// Valid reports whether t is one of the known citation types.
func (t Type) Valid() bool {
	switch t {
	case TypeImage, TypeCaselaw, TypeWebpage, TypeArticle, TypeBook:
		return true
	}
	return false
}

// Citation is a sourced reference backing one or more events.
type Citation struct {
	ID              int
	Title           string
	CaselawCitation string
	URL             string

	PublicationTitle  string
	PublicationAuthor string
	PublicationVolume string
	PublicationIssue  string
	PublicationDate   *time.Time

	// ArchivedURL is the permanent link; once set it is never replaced.
	ArchivedURL  string
	ArchivedDate *time.Time

	Type Type
}

// IsArchived reports whether a permanent link has been stored.
func (c *Citation) IsArchived() bool {
	return c.ArchivedURL != ""
}

// NeedsArchive reports whether a save should call the archiving service.
func (c *Citation) NeedsArchive() bool {
	return c.URL != "" && !c.IsArchived()
}

// JSON is the citation's projection for the timeline viewer.
type JSON struct {
	ID                    int     `json:"id"`
	Title                 string  `json:"title"`
	Citation              string  `json:"citation"`
	URL                   string  `json:"url"`
	PublicationTitle      string  `json:"publication_title"`
	PublicationAuthor     string  `json:"publication_author"`
	PublicationVolume     string  `json:"publication_volume"`
	PublicationIssue      string  `json:"publication_issue"`
	PublicationDate       *string `json:"publication_date"`
	PublicationDateParsed *string `json:"publication_date_parsed"`
	ArchivedURL           string  `json:"archived_url"`
	ArchivedDate          *string `json:"archived_date"`
	ArchivedDateParsed    *string `json:"archived_date_parsed"`
	Type                  Type    `json:"type"`
}

// AsJSON builds the citation's JSON projection.
func (c *Citation) AsJSON() JSON {
	return JSON{
		ID:                    c.ID,
		Title:                 c.Title,
		Citation:              c.CaselawCitation,
		URL:                   c.URL,
		PublicationTitle:      c.PublicationTitle,
		PublicationAuthor:     c.PublicationAuthor,
		PublicationVolume:     c.PublicationVolume,
		PublicationIssue:      c.PublicationIssue,
		PublicationDate:       datefmt.ISO(c.PublicationDate),
		PublicationDateParsed: datefmt.Long(c.PublicationDate),
		ArchivedURL:           c.ArchivedURL,
		ArchivedDate:          datefmt.ISO(c.ArchivedDate),
		ArchivedDateParsed:    datefmt.Long(c.ArchivedDate),
		Type:                  c.Type,
	}
}

// --- Request DTOs (bound from HTTP requests) ---

// SaveCitationRequest is the admin API body for creating or updating a
// citation. Archive fields are not accepted; they are owned by the save hook.
type SaveCitationRequest struct {
	Title             string `json:"title"`
	Citation          string `json:"citation"`
	URL               string `json:"url"`
	PublicationTitle  string `json:"publication_title"`
	PublicationAuthor string `json:"publication_author"`
	PublicationVolume string `json:"publication_volume"`
	PublicationIssue  string `json:"publication_issue"`
	PublicationDate   string `json:"publication_date"`
	Type              Type   `json:"type"`
}
