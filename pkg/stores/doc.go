// Package stores provides the persistence layer for to-do items.
// It includes a database/sql backed ItemStore for SQLite and MySQL with
// embedded migrations, call-scoped connections, and an instrumented
// decorator that adds logging, tracing, metrics, and item events.
package stores
