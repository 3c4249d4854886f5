package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns stdout, stderr and
// the command error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content to dir/name, creating parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const passingScenario = `name: literal_sums
description: "sums every implementation must reproduce"
run_token: run-cli-001
cases:
  - name: positive
    a: 5
    b: 3
    want: 8
  - name: negative
    a: -2
    b: -3
    want: -5
assertions:
  - type: commutative
  - type: identity
  - type: case_count
    count: 2
`

const failingScenario = `name: wrong_want
description: "expected sum is off by one"
cases:
  - name: bad
    a: 5
    b: 3
    want: 9
`

const overflowScenario = `name: "overflow_policy"
description: "sums past the int32 range wrap"
cases: [
	{name: "max_plus_one", a: 2147483647, b: 1, want: -2147483648},
	{name: "min_minus_one", a: -2147483648, b: -1, want: 2147483647},
]
assertions: [{type: "wraps"}]
`
