// Package store defines interfaces for deck persistence.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing the generate, list and export
// operations to remain independent of specific database technologies.
//
// Implementations live under internal/platform (postgres, sqlite).
package store
