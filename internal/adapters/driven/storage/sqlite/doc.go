// Package sqlite provides a SQLite-based implementation of the editor's
// driven store ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements several store interfaces
// through a single database connection:
//
//   - BuildingStore: buildings and their ordered floors
//   - ConnectorStore: per-floor vertical connector records
//   - TagStore: tagged locations
//   - PathStore: single and multi-floor paths
//   - EditorStateStore: the last selection and mode
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Point lists, segments and shapes are stored as JSON text columns.
//
// # Data Location
//
// By default, the database is stored at ~/.waymark/data/waymark.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
