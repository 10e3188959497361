package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/zenith/internal/state"
)

// Scenario is one reproducible run of the AppStore.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps are dispatched in order against an empty document.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final document.
	Assertions []Assertion `yaml:"assertions"`
}

// Step dispatches one action.
type Step struct {
	// Action is the action name (e.g., "AddAccount").
	Action string `yaml:"action"`

	// Args is the action payload, in the action's JSON shape.
	Args map[string]any `yaml:"args"`

	// Save names the id returned by this step for later $name references.
	Save string `yaml:"save,omitempty"`

	// Expect is "", ExpectNoop or ExpectRefused.
	Expect string `yaml:"expect,omitempty"`
}

// Step expectations.
const (
	ExpectNoop    = "noop"
	ExpectRefused = "refused"
)

// Assertion validates the final document. Which fields apply depends on
// Type.
type Assertion struct {
	Type string `yaml:"type"`

	// Collection is the JSON collection name (count, exists, field).
	Collection string `yaml:"collection,omitempty"`

	// ID selects one entity (exists, field).
	ID string `yaml:"id,omitempty"`

	// Project selects the project owning a task, and the project for
	// progress.
	Project string `yaml:"project,omitempty"`

	// Account selects the account for balance. Empty means all accounts.
	Account string `yaml:"account,omitempty"`

	// Field is the JSON field name (field).
	Field string `yaml:"field,omitempty"`

	// Equals is the expected value (count, balance, field).
	Equals any `yaml:"equals,omitempty"`

	// Done and Total are the expected task counts (progress).
	Done  int `yaml:"done,omitempty"`
	Total int `yaml:"total,omitempty"`

	// Present defaults to true (exists).
	Present *bool `yaml:"present,omitempty"`
}

// Assertion type constants.
const (
	AssertCount     = "count"
	AssertBalance   = "balance"
	AssertProgress  = "progress"
	AssertExists    = "exists"
	AssertField     = "field"
	AssertIntegrity = "integrity"
)

var assertionTypes = []string{AssertCount, AssertBalance, AssertProgress, AssertExists, AssertField, AssertIntegrity}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks required fields and names without running
// anything.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps must contain at least one step")
	}

	actions := state.ActionNames()
	saved := map[string]bool{}
	for i, step := range s.Steps {
		if !slices.Contains(actions, step.Action) {
			return fmt.Errorf("step %d: unknown action %q", i, step.Action)
		}
		switch step.Expect {
		case "", ExpectNoop, ExpectRefused:
		default:
			return fmt.Errorf("step %d: expect must be %q or %q, got %q", i, ExpectNoop, ExpectRefused, step.Expect)
		}
		if step.Save != "" {
			if saved[step.Save] {
				return fmt.Errorf("step %d: save name %q already used", i, step.Save)
			}
			saved[step.Save] = true
		}
	}

	for i, a := range s.Assertions {
		if !slices.Contains(assertionTypes, a.Type) {
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
	}
	return nil
}
