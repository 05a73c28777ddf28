// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests call GetTestDBWithT, which skips when no test database URL is
// configured, applies the embedded migrations and closes the connection on
// cleanup. WithTx runs a test body inside a transaction that is always
// rolled back, so tests leave no rows behind.
package testdb
