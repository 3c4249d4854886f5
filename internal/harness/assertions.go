package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/adder/internal/adder"
)

// AssertionError is returned when a property does not hold.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against the executed cases,
// calling add for the extra sums the properties need.
// Returns one message per failed assertion.
func EvaluateAssertions(result *Result, assertions []Assertion, add AddFunc) []string {
	var errs []string
	ops := operands(result.Cases)

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertCommutative:
			err = assertCommutative(ops, add)
		case AssertIdentity:
			err = assertIdentity(ops, add)
		case AssertAssociative:
			err = assertAssociative(ops, add)
		case AssertWraps:
			err = assertWraps(result.Cases)
		case AssertCaseCount:
			err = assertCaseCount(result.Cases, assertion)
		default:
			err = fmt.Errorf("assertions[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}

// operands returns every distinct operand of the cases in first-seen order.
func operands(cases []CaseResult) []int32 {
	seen := make(map[int32]bool)
	var ops []int32
	for _, c := range cases {
		for _, v := range [2]int32{c.A, c.B} {
			if !seen[v] {
				seen[v] = true
				ops = append(ops, v)
			}
		}
	}
	return ops
}

func assertCommutative(ops []int32, add AddFunc) error {
	for _, x := range ops {
		for _, y := range ops {
			if xy, yx := add(x, y), add(y, x); xy != yx {
				return &AssertionError{
					Type:     AssertCommutative,
					Expected: fmt.Sprintf("add(%d, %d) == add(%d, %d)", x, y, y, x),
					Actual:   fmt.Sprintf("%d != %d", xy, yx),
				}
			}
		}
	}
	return nil
}

func assertIdentity(ops []int32, add AddFunc) error {
	for _, x := range ops {
		if got := add(x, 0); got != x {
			return &AssertionError{
				Type:     AssertIdentity,
				Expected: fmt.Sprintf("add(%d, 0) == %d", x, x),
				Actual:   fmt.Sprintf("%d", got),
			}
		}
		if got := add(0, x); got != x {
			return &AssertionError{
				Type:     AssertIdentity,
				Expected: fmt.Sprintf("add(0, %d) == %d", x, x),
				Actual:   fmt.Sprintf("%d", got),
			}
		}
	}
	return nil
}

// assertAssociative skips triples where any partial or final sum leaves the
// int32 range, since grouping only needs to agree on representable sums.
func assertAssociative(ops []int32, add AddFunc) error {
	for _, x := range ops {
		for _, y := range ops {
			if adder.Overflows(x, y) {
				continue
			}
			for _, z := range ops {
				if adder.Overflows(y, z) || adder.Overflows(x+y, z) {
					continue
				}
				left := add(add(x, y), z)
				right := add(x, add(y, z))
				if left != right {
					return &AssertionError{
						Type:     AssertAssociative,
						Expected: fmt.Sprintf("add(add(%d, %d), %d) == add(%d, add(%d, %d))", x, y, z, x, y, z),
						Actual:   fmt.Sprintf("%d != %d", left, right),
					}
				}
			}
		}
	}
	return nil
}

// assertWraps pins the overflow policy in data: overflowing cases must
// expect, and observe, the two's complement wrapped sum.
func assertWraps(cases []CaseResult) error {
	overflowing := 0
	for _, c := range cases {
		if !c.Overflow {
			continue
		}
		overflowing++
		wrapped := int32(int64(c.A) + int64(c.B))
		if c.Want != wrapped {
			return &AssertionError{
				Type:     AssertWraps,
				Expected: fmt.Sprintf("case %q to expect wrapped sum %d", c.Name, wrapped),
				Actual:   fmt.Sprintf("want %d", c.Want),
			}
		}
		if c.Got != wrapped {
			return &AssertionError{
				Type:     AssertWraps,
				Expected: fmt.Sprintf("case %q add(%d, %d) to wrap to %d", c.Name, c.A, c.B, wrapped),
				Actual:   fmt.Sprintf("%d", c.Got),
			}
		}
	}
	if overflowing == 0 {
		return &AssertionError{
			Type:     AssertWraps,
			Expected: "at least one case whose sum overflows int32",
			Actual:   "no overflowing cases",
		}
	}
	return nil
}

func assertCaseCount(cases []CaseResult, assertion Assertion) error {
	if assertion.Count == nil {
		return fmt.Errorf("%s: count is required", AssertCaseCount)
	}
	if len(cases) != *assertion.Count {
		return &AssertionError{
			Type:     AssertCaseCount,
			Expected: fmt.Sprintf("%d cases", *assertion.Count),
			Actual:   fmt.Sprintf("%d cases", len(cases)),
		}
	}
	return nil
}
