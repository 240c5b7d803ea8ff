package models

type EditKind string

const (
	EditDelete EditKind = "delete"
	EditModify EditKind = "modify"
	EditInsert EditKind = "insert"
)

// Edit is one persisted patch instruction for a (cohort, date, event key).
// Delete and Modify require a matching source event; Insert materializes a
// synthetic event from the stored times and the overlay's date.
type Edit struct {
	Kind        EditKind `json:"kind"`
	Subject     string   `json:"subject,omitempty"`
	Description string   `json:"description,omitempty"`
	StartTime   string   `json:"start_time,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
}

func (e Edit) Valid() bool {
	switch e.Kind {
	case EditDelete:
		return true
	case EditModify:
		return e.Subject != "" || e.Description != ""
	case EditInsert:
		return e.Subject != "" && e.StartTime != "" && e.EndTime != ""
	default:
		return false
	}
}
