package models

import (
	"time"

	"item-catalog/core/utils"
)

// Item is a catalog record: the merged representation of one logical item.
type Item struct {
	ID       string `gorm:"column:id;primaryKey;size:36" json:"id"`
	Name     string `gorm:"column:name;not null" json:"name"`
	Keywords string `gorm:"column:keywords;not null" json:"keywords"`
	Type     string `gorm:"column:type;not null" json:"type"`

	// Normalised identity; unique together.
	NameKey     string `gorm:"column:name_key;size:191;not null;uniqueIndex:idx_items_identity" json:"-"`
	KeywordsKey string `gorm:"column:keywords_key;size:191;not null;uniqueIndex:idx_items_identity" json:"-"`
	TypeKey     string `gorm:"column:type_key;size:64;not null;uniqueIndex:idx_items_identity" json:"-"`

	Flags       []string `gorm:"column:flags;serializer:json" json:"flags"`
	SubmittedBy string   `gorm:"column:submitted_by" json:"submittedBy,omitempty"`
	DroppedBy   string   `gorm:"column:dropped_by" json:"droppedBy,omitempty"`
	Worn        []string `gorm:"column:worn;serializer:json" json:"worn"`
	Stats       Stats    `gorm:"column:stats;serializer:json" json:"stats"`
	Ego         string   `gorm:"column:ego" json:"ego,omitempty"`
	IsArtifact  bool     `gorm:"column:is_artifact;not null" json:"isArtifact"`
	Raw         []string `gorm:"column:raw;serializer:json" json:"raw,omitempty"`

	FlaggedForReview bool    `gorm:"column:flagged_for_review;not null" json:"flaggedForReview"`
	DuplicateOf      *string `gorm:"column:duplicate_of;size:36" json:"duplicateOf,omitempty"`

	// Revision is bumped by every write; zero means the record was never stored.
	Revision  int       `gorm:"column:revision;not null" json:"revision"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`

	// Derived from the provenance ledger on read.
	SubmissionCount int      `gorm:"-" json:"submissionCount"`
	Contributors    []string `gorm:"-" json:"contributors"`
}

// TableName overrides the table name.
func (Item) TableName() string {
	return "items"
}

// Identity returns the record's normalised identity key.
func (i Item) Identity() IdentityKey {
	return NewIdentityKey(i.Name, i.Keywords, i.Type)
}

// SyncKeys refreshes the stored identity columns from Name, Keywords and Type.
func (i *Item) SyncKeys() {
	k := i.Identity()
	i.NameKey, i.KeywordsKey, i.TypeKey = k.Name, k.Keywords, k.Type
}

// NormalizedEgo is the ego used for content comparison.
func (i Item) NormalizedEgo() string {
	return utils.Normalize(i.Ego)
}
