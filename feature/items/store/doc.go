// Package store is the gorm storage collaborator for the item catalog.
//
// It owns four tables:
//   - items: catalog records, unique on (name_key, keywords_key, type_key)
//   - submissions: immutable submission events
//   - submitter_stats: running submission count per normalised submitter name
//   - contributor_items: which submitter contributed to which item
//
// Writes to items are optimistic. Every record carries a revision; Upsert only
// updates the row whose identity and revision match what was read, and reports
// ErrWriteConflict otherwise. Inserts race on the unique identity index and report
// the same error, so callers handle both races with one re-read and retry.
package store
