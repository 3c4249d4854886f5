package adder

import "math"

// Add returns a + b, wrapping on overflow.
func Add(a, b int32) int32 {
	return a + b
}

// Overflows reports whether the mathematical sum of a and b lies outside
// the int32 range, i.e. whether Add(a, b) wrapped.
func Overflows(a, b int32) bool {
	sum := int64(a) + int64(b)
	return sum > math.MaxInt32 || sum < math.MinInt32
}
