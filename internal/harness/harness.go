package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/adder/internal/adder"
	"github.com/roach88/adder/internal/testutil"
)

// AddFunc is the operation under verification.
type AddFunc func(a, b int32) int32

// Clock hands out trace sequence numbers.
type Clock interface {
	Next() int64
}

// Harness executes one scenario. Create it through Run.
type Harness struct {
	add    AddFunc
	clock  Clock
	tokens TokenGenerator
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithAddFunc replaces adder.Add as the operation under verification.
func WithAddFunc(fn AddFunc) Option {
	return func(h *Harness) { h.add = fn }
}

// WithClock replaces the per-run deterministic clock.
func WithClock(c Clock) Option {
	return func(h *Harness) { h.clock = c }
}

// WithTokenGenerator supplies the run token for scenarios without run_token.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(h *Harness) { h.tokens = g }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// Run executes a scenario and returns its result.
//
// Each case emits an invocation event, calls the add function and emits a
// completion event. A sum that differs from the case's want is recorded in
// Result.Errors with both values; it is not a Go error. Assertions run once
// all cases are done.
//
// A returned error means the scenario could not be executed at all: it was
// invalid or ctx was cancelled.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	h := &Harness{
		add:    adder.Add,
		clock:  testutil.NewDeterministicClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	runToken := scenario.RunToken
	if runToken == "" {
		if h.tokens == nil {
			h.tokens = testutil.NewFixedTokenGenerator("")
		}
		runToken = h.tokens.Generate()
	}

	result := NewResult(runToken)
	h.logger.Debug("scenario starting",
		"scenario", scenario.Name,
		"run_token", runToken,
		"cases", len(scenario.Cases))

	if err := h.executeCases(ctx, scenario, result); err != nil {
		return nil, fmt.Errorf("failed to execute cases: %w", err)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions, h.add) {
		result.AddError(msg)
	}

	h.logger.Debug("scenario finished",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"errors", len(result.Errors))

	return result, nil
}

func (h *Harness) executeCases(ctx context.Context, scenario *Scenario, result *Result) error {
	for i, c := range scenario.Cases {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", c.label(i), err)
		}

		a, b := c.Operands()
		want := *c.Want

		result.AddInvocationTrace(c.Name, a, b, h.clock.Next())
		got := h.add(a, b)
		overflow := adder.Overflows(a, b)
		result.AddCompletionTrace(got, overflow, h.clock.Next())

		pass := got == want
		result.Cases = append(result.Cases, CaseResult{
			Name:     c.label(i),
			A:        a,
			B:        b,
			Want:     want,
			Got:      got,
			Overflow: overflow,
			Pass:     pass,
		})

		h.logger.Debug("case executed",
			"case", c.label(i),
			"a", a,
			"b", b,
			"sum", got,
			"overflow", overflow,
			"pass", pass)

		if !pass {
			result.AddError(fmt.Sprintf("case %q add(%d, %d): expected %d, actual %d",
				c.label(i), a, b, want, got))
		}
	}
	return nil
}
