// Package store keeps a SQLite history of verification runs.
//
// Each `adder test` invocation with --db writes one run row and one row per
// scenario, inside a single transaction. Rows are append-only; writing a run
// id that already exists is a no-op.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait up to 5s on lock contention
//   - foreign_keys=ON: scenario rows must reference a run
//
// # Ordering
//
// Runs are listed newest first by (created_at DESC, id DESC). Run ids are
// UUIDv7, so ties on created_at still sort by creation time. Scenario rows
// keep the order the scenarios ran in (position ASC).
package store
