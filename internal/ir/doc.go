// Package ir provides the canonical byte encoding used for trace snapshots
// and content hashes.
//
// Every golden file and every stored trace hash goes through
// MarshalCanonical, so two runs that observed the same additions produce
// byte-identical output regardless of map iteration order.
//
// Key constraints:
//   - NO floats: sums and operands are integers
//   - NO null: absent values are omitted, never encoded
//   - All keys use snake_case
package ir
