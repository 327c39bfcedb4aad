// Package suggestions stores corrections proposed by readers for catalog records.
//
// A suggestion targets an existing record, carries a free-form note and is
// stored as pending until an operator approves or rejects it.
package suggestions
