package suggestions

import "time"

// Status is the moderation state of a suggestion.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Suggestion is a correction proposed for a catalog record.
type Suggestion struct {
	ID       string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	ItemID   string    `gorm:"column:item_id;size:36;not null;index:idx_suggestions_item_id" json:"itemId"`
	Proposer *string   `gorm:"column:proposer" json:"proposer,omitempty"`
	Note     string    `gorm:"column:note;type:text;not null" json:"note"`
	Status   Status    `gorm:"column:status;size:16;not null;default:pending" json:"status"`
	Created  time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName overrides the table name used by Suggestion to `suggestions`.
func (Suggestion) TableName() string {
	return "suggestions"
}

// CreateRequest is the payload of a new suggestion.
type CreateRequest struct {
	ItemID   string `json:"itemId"`
	Note     string `json:"note"`
	Proposer string `json:"proposer"`
	Reason   string `json:"reason"`
}

// combinedNote folds the reason into the note.
func (r CreateRequest) combinedNote() string {
	note := r.Note
	if reason := r.Reason; reason != "" {
		note += "\n\nReason: " + reason
	}
	return note
}
