// Package database manages the relational store behind the item catalog.
//
// Two drivers are supported through GORM: MySQL for deployments and SQLite for local use and
// tests. Connect applies pool settings, verifies the connection with a ping and enables GORM's
// error translation so that identity collisions surface as gorm.ErrDuplicatedKey.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live schema (SHOW COLUMNS / PRAGMA table_info)
// so the catalog store can verify after migration that every column it writes exists.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "items", []string{"name_key", "stats"})
package database
