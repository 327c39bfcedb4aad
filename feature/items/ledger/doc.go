// Package ledger is the provenance ledger of the catalog.
//
// Every accepted observation that carries a submitter (a display name, a user id or
// both) becomes one immutable submission event. Named submitters also get a running
// submission count and a list of the items they contributed to, keyed by their
// lowercased, trimmed name.
//
// The ledger is not the source of truth for item stats; it only answers
// "who submitted this, and how often".
package ledger
