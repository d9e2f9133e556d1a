// Package findings serves research conclusions drawn across several events.
package findings

// Finding is a conclusion linked to the events that support it.
type Finding struct {
	ID               int    `json:"id"`
	DescriptionShort string `json:"description_short"`
	DescriptionLong  string `json:"description_long"`
	EventIDs         []int  `json:"events"`
}

// SaveFindingRequest is the admin API body for creating or replacing a
// finding. EventIDs replaces the full set of linked events.
type SaveFindingRequest struct {
	DescriptionShort string `json:"description_short"`
	DescriptionLong  string `json:"description_long"`
	EventIDs         []int  `json:"events"`
}
