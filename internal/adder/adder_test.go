package adder

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// operands covers signs, zero and both ends of the int32 range.
var operands = []int32{
	math.MinInt32, math.MinInt32 + 1, -1 << 16, -7, -3, -2, -1,
	0, 1, 2, 3, 5, 7, 1 << 16, math.MaxInt32 - 1, math.MaxInt32,
}

func TestAdd_Literals(t *testing.T) {
	tests := []struct {
		name string
		a, b int32
		want int32
	}{
		{"positive", 5, 3, 8},
		{"zeros", 0, 0, 0},
		{"negative", -2, -3, -5},
		{"mixed signs", -2, 7, 5},
		{"cancel", 42, -42, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Add(tt.a, tt.b), "Add(%d, %d)", tt.a, tt.b)
		})
	}
}

func TestAdd_WrapsOnOverflow(t *testing.T) {
	tests := []struct {
		name string
		a, b int32
		want int32
	}{
		{"max plus one", math.MaxInt32, 1, math.MinInt32},
		{"one plus max", 1, math.MaxInt32, math.MinInt32},
		{"min minus one", math.MinInt32, -1, math.MaxInt32},
		{"max plus max", math.MaxInt32, math.MaxInt32, -2},
		{"min plus min", math.MinInt32, math.MinInt32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Add(tt.a, tt.b), "Add(%d, %d)", tt.a, tt.b)
			assert.True(t, Overflows(tt.a, tt.b), "Overflows(%d, %d)", tt.a, tt.b)
		})
	}
}

func TestOverflows_InRange(t *testing.T) {
	assert.False(t, Overflows(5, 3))
	assert.False(t, Overflows(math.MaxInt32, 0))
	assert.False(t, Overflows(math.MinInt32, 0))
	assert.False(t, Overflows(math.MaxInt32, math.MinInt32))
	assert.False(t, Overflows(math.MaxInt32-1, 1))
	assert.False(t, Overflows(math.MinInt32+1, -1))
}

func TestAdd_MatchesWideArithmetic(t *testing.T) {
	for _, a := range operands {
		for _, b := range operands {
			wide := int64(a) + int64(b)
			got := Add(a, b)
			if !Overflows(a, b) {
				require.Equal(t, wide, int64(got), "Add(%d, %d)", a, b)
				continue
			}
			// Wrapped sums differ from the wide sum by exactly 2^32.
			diff := wide - int64(got)
			require.True(t, diff == 1<<32 || diff == -(1<<32), "Add(%d, %d) = %d", a, b, got)
		}
	}
}

func TestAdd_Commutative(t *testing.T) {
	for _, a := range operands {
		for _, b := range operands {
			require.Equal(t, Add(a, b), Add(b, a), "Add(%d, %d) != Add(%d, %d)", a, b, b, a)
		}
	}
}

func TestAdd_Identity(t *testing.T) {
	for _, a := range operands {
		require.Equal(t, a, Add(a, 0), "Add(%d, 0)", a)
		require.Equal(t, a, Add(0, a), "Add(0, %d)", a)
	}
}

func TestAdd_Associative(t *testing.T) {
	checked := 0
	for _, a := range operands {
		for _, b := range operands {
			for _, c := range operands {
				if Overflows(a, b) || Overflows(b, c) || Overflows(Add(a, b), c) {
					continue
				}
				checked++
				require.Equal(t, Add(Add(a, b), c), Add(a, Add(b, c)),
					"(%d + %d) + %d != %d + (%d + %d)", a, b, c, a, b, c)
			}
		}
	}
	assert.Greater(t, checked, 0, "no non-overflowing triples were checked")
}

func TestAdd_Concurrent(t *testing.T) {
	const goroutines = 64

	var wg sync.WaitGroup
	results := make([]int32, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Add(5, 3)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, int32(8), got, "goroutine %d", i)
	}
}

func BenchmarkAdd(b *testing.B) {
	var sum int32
	for i := 0; i < b.N; i++ {
		sum = Add(sum, int32(i))
	}
	_ = sum
}
