// Package models defines the catalog's data types: observations read from dumps,
// merged catalog records, the tagged Affect variant and the provenance ledger tables.
package models
