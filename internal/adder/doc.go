// Package adder adds signed 32-bit integers.
//
// # Overflow Policy
//
// Add uses wrapping arithmetic: a sum outside the int32 range wraps modulo
// 2^32 in two's complement. Go defines this behaviour for signed integers,
// so the result does not depend on build flags or optimisation level.
//
//	adder.Add(math.MaxInt32, 1) // math.MinInt32
//	adder.Add(math.MinInt32, -1) // math.MaxInt32
//
// There is no checked variant. Callers that need to know whether a sum
// wrapped can ask Overflows, which never changes what Add returns.
//
// # Concurrency
//
// Both functions are pure and safe for concurrent use.
package adder
