// Package utils provides small normalisation helpers shared by the parser, the ingestion
// handlers and the provenance ledger: case-insensitive keys, loose boolean and integer
// parsing, and list splitting/union.
package utils
