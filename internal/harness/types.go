package harness

import "github.com/roach88/zenith/internal/model"

// StepResult records what one step did.
type StepResult struct {
	Action   string `json:"action"`
	ID       string `json:"id,omitempty"`
	Changed  bool   `json:"changed"`
	Revision int64  `json:"revision"`
	Error    string `json:"error,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every step met its expectation and every assertion held.
	Pass bool `json:"pass"`

	// Steps has one entry per executed step.
	Steps []StepResult `json:"steps"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Saved maps save names to the ids they captured.
	Saved map[string]string `json:"saved,omitempty"`

	// Final is the document after the last step.
	Final model.AppData `json:"-"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
		Saved:  make(map[string]string),
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
