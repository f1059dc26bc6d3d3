// Package store provides persistence for the portal: user accounts,
// workflow requests, menu documents, workflow kill-switches, and the
// audit log.
//
// The Store interface has two implementations: SQLiteStore backed by a
// SQLite database (via modernc.org/sqlite, no cgo), and MockStore, an
// in-memory implementation for tests. Menu trees are stored as a single
// JSON document per module and validated on both save and load.
package store
