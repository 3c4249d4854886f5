package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"failure", NewExitError(ExitFailure, "1 scenario(s) failed"), ExitFailure},
		{"command error", NewExitError(ExitCommandError, "bad"), ExitCommandError},
		{"wrapped exit error", fmt.Errorf("outer: %w", NewExitError(ExitFailure, "inner")), ExitFailure},
		{"plain error", errors.New("unknown flag"), ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to open database", cause)

	assert.Equal(t, "failed to open database: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad", NewExitError(ExitCommandError, "bad").Error())
}

func TestOutputFormatter_SuccessText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Success("8", AddResult{A: 5, B: 3, Sum: 8}))
	assert.Equal(t, "8\n", buf.String())
}

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success("8", AddResult{A: 5, B: 3, Sum: 8}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"a": 5.0, "b": 3.0, "sum": 8.0, "wrapped": false}, resp.Data)
}

func TestOutputFormatter_Error(t *testing.T) {
	var text bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &text, Verbose: true}
	require.NoError(t, f.Error(ErrCodeInvalidOperand, "operand a is bad", "details"))
	assert.Equal(t, "Error [E201]: operand a is bad\nDetails: details\n", text.String())

	var js bytes.Buffer
	f = &OutputFormatter{Format: "json", Writer: &js}
	require.NoError(t, f.Error(ErrCodeNotFound, "missing", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(js.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E005", resp.Error.Code)
	assert.Equal(t, "missing", resp.Error.Message)
}

func TestOutputFormatter_VerboseLogGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut, Verbose: true}

	f.VerboseLog("wrapped %d", 1)
	assert.Empty(t, out.String())
	assert.Equal(t, "wrapped 1\n", errOut.String())

	f.Verbose = false
	f.VerboseLog("hidden")
	assert.Equal(t, "wrapped 1\n", errOut.String())
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	newLogger(false, &buf).Debug("quiet")
	assert.Empty(t, buf.String())

	newLogger(true, &buf).Debug("loud", "k", "v")
	assert.Contains(t, buf.String(), "msg=loud")
	assert.Contains(t, buf.String(), "k=v")
}
