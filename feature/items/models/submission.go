package models

import "time"

// Submission is an immutable record that a submitter observed an item.
type Submission struct {
	ID            string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	ItemID        string    `gorm:"column:item_id;size:36;not null;index" json:"itemId"`
	SubmitterName string    `gorm:"column:submitter_name;size:191" json:"submitterName,omitempty"`
	SubmitterKey  string    `gorm:"column:submitter_key;size:191;index" json:"-"`
	UserID        string    `gorm:"column:user_id;size:191;index" json:"userId,omitempty"`
	IPHash        string    `gorm:"column:ip_hash;size:64" json:"-"`
	Raw           string    `gorm:"column:raw;type:text" json:"raw,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName overrides the table name.
func (Submission) TableName() string {
	return "submissions"
}

// SubmitterStat is the running count of accepted submissions per normalised submitter name.
type SubmitterStat struct {
	Name            string    `gorm:"column:name;primaryKey;size:191" json:"name"`
	DisplayName     string    `gorm:"column:display_name;size:191" json:"displayName"`
	SubmissionCount int       `gorm:"column:submission_count;not null" json:"submissionCount"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

// TableName overrides the table name.
func (SubmitterStat) TableName() string {
	return "submitter_stats"
}

// ContributorItem links a normalised submitter name to an item it contributed to.
type ContributorItem struct {
	Submitter string    `gorm:"column:submitter;primaryKey;size:191" json:"submitter"`
	ItemID    string    `gorm:"column:item_id;primaryKey;size:36" json:"itemId"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName overrides the table name.
func (ContributorItem) TableName() string {
	return "contributor_items"
}

// Provenance is the read-back view of the ledger for one item.
type Provenance struct {
	ItemID          string   `json:"itemId"`
	Contributors    []string `json:"contributors"`
	SubmissionCount int      `json:"submissionCount"`
}
