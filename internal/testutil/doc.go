// Package testutil holds the deterministic helpers that make scenario traces
// reproducible: a logical clock for event sequence numbers and a run token
// generator that never varies.
package testutil
