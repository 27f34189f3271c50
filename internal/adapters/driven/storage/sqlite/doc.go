// Package sqlite provides SQLite-backed persistence for the library and
// reading positions. A single Store owns the database connection and
// hands out per-interface wrappers.
package sqlite
