// Package sqlite provides a gorm-backed SQLite implementation of
// store.DeckStore for local use without a database server. The schema
// matches the PostgreSQL tables and is created with AutoMigrate.
package sqlite
