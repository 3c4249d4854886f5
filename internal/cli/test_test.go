package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCommand_AllPass(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "literal_sums.yaml", passingScenario)
	writeFile(t, dir, "overflow_policy.cue", overflowScenario)

	stdout, _, err := execute(t, "test", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "✓ literal_sums")
	assert.Contains(t, stdout, "✓ overflow_policy")
	assert.Contains(t, stdout, "Test Summary: 2 passed, 0 failed, 2 total")
	assert.Contains(t, stdout, "✓ All scenarios passed")
}

func TestTestCommand_FailureExitsOne(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "literal_sums.yaml", passingScenario)
	writeFile(t, dir, "wrong_want.yaml", failingScenario)

	stdout, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, stdout, "✗ wrong_want")
	assert.Contains(t, stdout, `case "bad" add(5, 3): expected 9, actual 8`)
	assert.Contains(t, stdout, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTestCommand_LoadErrorIsScenarioFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "name: broken\n")

	stdout, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "✗ broken.yaml")
	assert.Contains(t, stdout, "failed to load scenario")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "literal_sums.yaml", passingScenario)
	writeFile(t, dir, "wrong_want.yaml", failingScenario)

	stdout, _, err := execute(t, "test", dir, "--filter", "literal*")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.NotContains(t, stdout, "wrong_want")
}

func TestTestCommand_InvalidFilter(t *testing.T) {
	_, _, err := execute(t, "test", t.TempDir(), "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestTestCommand_InvalidFilterJSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "test", t.TempDir(), "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeGeneric, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "invalid filter pattern")
}

func TestTestCommand_MissingDirectory(t *testing.T) {
	_, _, err := execute(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommand_NoScenarios(t *testing.T) {
	stdout, _, err := execute(t, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "No scenarios found.")
}

func TestTestCommand_ArgCount(t *testing.T) {
	_, _, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommand_GoldenUpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "literal_sums.yaml", passingScenario)

	stdout, _, err := execute(t, "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ literal_sums")

	goldenPath := filepath.Join(dir, "golden", "literal_sums.golden")
	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario_name":"literal_sums"`)
	assert.Contains(t, string(golden), `"run_token":"run-cli-001"`)

	// Unchanged trace matches.
	_, _, err = execute(t, "test", dir)
	require.NoError(t, err)

	// A tampered golden file fails the scenario.
	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"scenario_name":"literal_sums","trace":[]}`), 0644))
	stdout, _, err = execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "trace does not match golden file")
}

func TestTestCommand_GoldenDirIsNotScanned(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "literal_sums.yaml", passingScenario)
	writeFile(t, dir, filepath.Join("golden", "stray.yaml"), failingScenario)

	stdout, _, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 total")
}

func TestTestCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "literal_sums.yaml", passingScenario)
	writeFile(t, dir, "wrong_want.yaml", failingScenario)

	stdout, _, err := execute(t, "--format", "json", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status  string     `json:"status"`
		Data    TestResult `json:"data"`
		Error   *CLIError  `json:"error"`
		TraceID string     `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))

	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.NotEmpty(t, resp.TraceID)
	assert.Equal(t, resp.TraceID, resp.Data.RunID)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 2)
	assert.Len(t, resp.Data.Scenarios[0].TraceHash, 64)
}

func TestTestCommand_VerboseLogsToStderr(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "literal_sums.yaml", passingScenario)

	stdout, stderr, err := execute(t, "-v", "test", dir)
	require.NoError(t, err)
	assert.Contains(t, stderr, "test run starting")
	assert.NotContains(t, stdout, "test run starting")
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("scenarios", "golden", "literal_sums.golden"),
		goldenFilePath(filepath.Join("scenarios", "literal_sums.yaml")))
	assert.Equal(t,
		filepath.Join("golden", "overflow.golden"),
		goldenFilePath("overflow.cue"))
}
