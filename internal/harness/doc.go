// Package harness runs data-driven verification scenarios against the adder.
//
// # Scenario Format
//
// Scenarios are YAML (.yaml, .yml) or CUE (.cue) files:
//
//	name: literal_sums
//	description: "Sums every implementation must reproduce"
//	run_token: run-literal-001
//	cases:
//	  - name: positive
//	    a: 5
//	    b: 3
//	    want: 8
//	  - a: -2
//	    b: -3
//	    want: -5
//	assertions:
//	  - type: commutative
//	  - type: identity
//	  - type: associative
//	  - type: case_count
//	    count: 2
//
// Operands and expected sums must fit in int32; anything else is a load error.
//
// # Assertion Types
//
//   - commutative: add(x, y) == add(y, x) for every pair of case operands
//   - identity: add(x, 0) == x == add(0, x) for every case operand
//   - associative: (x + y) + z == x + (y + z) for every operand triple
//     whose partial and final sums stay in range
//   - wraps: at least one case overflows, and every overflowing case
//     expects and receives the two's complement wrapped sum
//   - case_count: exactly count cases were executed
//
// # Deterministic Traces
//
// Every case emits an invocation event and a completion event. Sequence
// numbers come from testutil.DeterministicClock and the run token is fixed
// per scenario, so a scenario always produces the same canonical trace and
// can be compared against a golden file:
//
//	go test ./internal/harness -update
package harness
