// Package identity decides whether an observation is a new item, a repeat of a
// known one, or a different roll of a known item that an operator must confirm.
//
// Items are matched on the exact, case-insensitive, trimmed (name, keywords, type)
// triple. No approximate matching is done here.
package identity
