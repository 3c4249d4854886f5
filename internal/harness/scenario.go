package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed scenario_schema.cue
var scenarioSchema string

// Scenario is a named set of add cases plus the properties they must show.
// The json tags drive CUE decoding; the yaml tags drive YAML decoding.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// RunToken is stamped on the trace. Empty means testutil.DefaultRunToken.
	RunToken string `yaml:"run_token,omitempty" json:"run_token,omitempty"`

	// Cases are executed in order, one invocation each.
	Cases []Case `yaml:"cases" json:"cases"`

	// Assertions are evaluated after every case has run.
	Assertions []Assertion `yaml:"assertions,omitempty" json:"assertions,omitempty"`
}

// Case is a single add(a, b) call with its expected sum.
// Pointers distinguish a missing field from an explicit zero.
type Case struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	A    *int32 `yaml:"a" json:"a"`
	B    *int32 `yaml:"b" json:"b"`
	Want *int32 `yaml:"want" json:"want"`
}

// Assertion is a property checked over the operands of a scenario.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type" json:"type"`

	// Count is the expected number of cases (case_count only).
	Count *int `yaml:"count,omitempty" json:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertCommutative = "commutative"
	AssertIdentity    = "identity"
	AssertAssociative = "associative"
	AssertWraps       = "wraps"
	AssertCaseCount   = "case_count"
)

// Operands returns the case's operands. Only valid after validation.
func (c Case) Operands() (a, b int32) {
	return *c.A, *c.B
}

// label names a case in error messages: its name, or its index.
func (c Case) label(index int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("cases[%d]", index)
}

// int32Ptr is a convenience for building cases in code.
func int32Ptr(v int32) *int32 {
	return &v
}

// NewCase builds a case from literal values.
func NewCase(name string, a, b, want int32) Case {
	return Case{Name: name, A: int32Ptr(a), B: int32Ptr(b), Want: int32Ptr(want)}
}

// LoadScenario reads and validates a scenario file. The decoder is chosen by
// extension: .yaml and .yml use YAML, .cue uses CUE.
// Unknown fields are rejected in both formats so typos like "assertion:"
// fail loudly. CUE files are unified with the closed #Scenario definition.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario *Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		scenario, err = decodeYAML(data)
	case ".cue":
		scenario, err = decodeCUE(path, data)
	default:
		return nil, fmt.Errorf("unsupported scenario extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// IsScenarioFile reports whether path has an extension LoadScenario accepts.
func IsScenarioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".cue":
		return true
	}
	return false
}

func decodeYAML(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

func decodeCUE(path string, data []byte) (*Scenario, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile CUE: %w", err)
	}

	schema := ctx.CompileString(scenarioSchema, cue.Filename("scenario_schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile scenario schema: %w", err)
	}
	value = schema.LookupPath(cue.ParsePath("#Scenario")).Unify(value)
	if err := value.Validate(); err != nil {
		return nil, fmt.Errorf("CUE scenario does not match scenario schema: %w", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("CUE scenario is not concrete: %w", err)
	}

	var scenario Scenario
	if err := value.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode CUE: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and assertion parameters.
func validateScenario(s *Scenario) error {
	if s == nil {
		return fmt.Errorf("scenario is nil")
	}

	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]int)
	for i, c := range s.Cases {
		if c.A == nil {
			return fmt.Errorf("cases[%d]: a is required", i)
		}
		if c.B == nil {
			return fmt.Errorf("cases[%d]: b is required", i)
		}
		if c.Want == nil {
			return fmt.Errorf("cases[%d]: want is required", i)
		}
		if c.Name != "" {
			if prev, ok := seen[c.Name]; ok {
				return fmt.Errorf("cases[%d]: duplicate name %q (first used by cases[%d])", i, c.Name, prev)
			}
			seen[c.Name] = i
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertCommutative, AssertIdentity, AssertAssociative, AssertWraps:
		if a.Count != nil {
			return fmt.Errorf("assertions[%d]: count is only valid for %s", index, AssertCaseCount)
		}
	case AssertCaseCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for %s", index, AssertCaseCount)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, AssertCaseCount)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
