// Package relations edits the links between events. A relationship is
// stored once, directed from the earlier-entered "preceding" event to the
// "succeeding" one, and read back from either end; the event detail view
// re-buckets related events by date, so direction only records intent.
package relations

// Relationship is a stored link between two events.
type Relationship struct {
	ID                int    `json:"id"`
	PrecedingEventID  int    `json:"preceding_event_id"`
	SucceedingEventID int    `json:"succeeding_event_id"`
	Description       string `json:"description"`

	// OtherEventName is the name of the event on the far end, populated when
	// listing by event.
	OtherEventName string `json:"other_event_name,omitempty"`
}

// Other returns the ID of the event on the other end from eventID.
func (r Relationship) Other(eventID int) int {
	if r.PrecedingEventID == eventID {
		return r.SucceedingEventID
	}
	return r.PrecedingEventID
}

// --- Request DTOs (bound from HTTP requests) ---

// CreateRelationshipRequest is the admin API body for linking two events.
type CreateRelationshipRequest struct {
	PrecedingEventID  int    `json:"preceding_event_id"`
	SucceedingEventID int    `json:"succeeding_event_id"`
	Description       string `json:"description"`
}
