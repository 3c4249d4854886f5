package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalErrors stores error messages as a JSON array, byte for byte.
// Messages are not NFC-normalised, unlike canonical traces.
func marshalErrors(errs []string) (string, error) {
	if errs == nil {
		errs = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(errs); err != nil {
		return "", fmt.Errorf("marshal errors: %w", err)
	}
	// Encoder adds a trailing newline.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// unmarshalErrors parses the errors column. An empty array yields nil.
func unmarshalErrors(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var errs []string
	if err := json.Unmarshal([]byte(data), &errs); err != nil {
		return nil, fmt.Errorf("unmarshal errors: %w", err)
	}
	return errs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
