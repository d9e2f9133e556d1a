// Package audit records every successful write made through the admin API.
// Entries are observations only: a failure to record one never fails the
// write it describes.
package audit

import (
	"net/http"
	"strings"
	"time"
)

// Verbs appended to the resource name to form an action, e.g.
// "citation.created".
const (
	verbCreated = "created"
	verbUpdated = "updated"
	verbDeleted = "deleted"
)

// Entry represents a single recorded admin write.
type Entry struct {
	ID         int64     `json:"id"`
	Action     string    `json:"action"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	ResourceID string    `json:"resource_id,omitempty"`
	Status     int       `json:"status"`
	RemoteIP   string    `json:"remote_ip"`
	CreatedAt  time.Time `json:"created_at"`
}

// Page is one page of the audit feed, most recent first.
type Page struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
}

// ActionFor derives "resource.verb" from a request method and the matched
// route pattern relative to the admin prefix. The resource is the first
// path segment, singularized by dropping a trailing "s". Returns "" for
// methods that do not write.
func ActionFor(method, route string) string {
	var verb string
	switch method {
	case http.MethodPost:
		verb = verbCreated
	case http.MethodPut, http.MethodPatch:
		verb = verbUpdated
	case http.MethodDelete:
		verb = verbDeleted
	default:
		return ""
	}

	resource, _, _ := strings.Cut(strings.TrimPrefix(route, "/"), "/")
	if resource == "" {
		resource = "unknown"
	}
	return strings.TrimSuffix(resource, "s") + "." + verb
}
