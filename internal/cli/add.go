package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/adder/internal/adder"
)

// AddResult is the JSON payload of the add command.
type AddResult struct {
	A       int32 `json:"a"`
	B       int32 `json:"b"`
	Sum     int32 `json:"sum"`
	Wrapped bool  `json:"wrapped"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <a> <b>",
		Short: "Add two signed 32-bit integers",
		Long: `Add two base-10 signed 32-bit integers and print the sum.

Sums outside the int32 range wrap in two's complement. In JSON mode the
"wrapped" field reports whether that happened.

Negative operands must follow "--" so they are not read as flags.

Exit codes:
  0 - Sum printed
  2 - Operand missing or not an int32

Examples:
  adder add 5 3
  adder add -- -2 -3
  adder add 2147483647 1 --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runAdd(opts *RootOptions, rawA, rawB string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	a, err := parseOperand("a", rawA)
	if err != nil {
		_ = f.Error(ErrCodeInvalidOperand, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid operand", err)
	}
	b, err := parseOperand("b", rawB)
	if err != nil {
		_ = f.Error(ErrCodeInvalidOperand, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid operand", err)
	}

	result := AddResult{
		A:       a,
		B:       b,
		Sum:     adder.Add(a, b),
		Wrapped: adder.Overflows(a, b),
	}
	if result.Wrapped {
		f.VerboseLog("add(%d, %d) wrapped to %d", a, b, result.Sum)
	}

	return f.Success(strconv.FormatInt(int64(result.Sum), 10), result)
}

// parseOperand parses a base-10 int32, rejecting anything that does not fit.
func parseOperand(name, s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("operand %s %q is outside the int32 range", name, s)
		}
		return 0, fmt.Errorf("operand %s %q is not a base-10 integer", name, s)
	}
	return int32(v), nil
}
