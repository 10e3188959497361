package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/state"
)

// Harness is the test execution engine for one scenario run.
type Harness struct {
	store  *state.Store
	saved  map[string]string
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh empty store for isolation, with
// sequential ids so results are reproducible.
//
// Execution flow:
// 1. Create an empty store
// 2. Dispatch each step, checking its expectation and capturing saved ids
// 3. Evaluate assertions against the final document
// 4. Return result with pass/fail, step outcomes, and errors
//
// A returned error means the scenario itself is broken (an unresolved
// $name, args that cannot be decoded). Failed expectations and assertions
// are reported in the Result instead.
func Run(scenario *Scenario) (*Result, error) {
	h := &Harness{
		saved:  make(map[string]string),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	h.store = state.New(model.Empty(),
		state.WithIDGenerator(state.NewSequenceGenerator("id")),
		state.WithLogger(h.logger),
		state.WithHistoryLimit(0),
	)

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(i, step, result); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Action, err)
		}
	}

	result.Final = h.store.Snapshot()
	for k, v := range h.saved {
		result.Saved[k] = v
	}

	for i, a := range scenario.Assertions {
		resolved, err := h.resolveAssertion(a)
		if err != nil {
			return nil, fmt.Errorf("assertion %d (%s): %w", i, a.Type, err)
		}
		if err := evaluate(result.Final, resolved); err != nil {
			result.AddError(err.Error())
		}
	}

	return result, nil
}

// executeStep dispatches one step and checks it against step.Expect.
func (h *Harness) executeStep(i int, step Step, result *Result) error {
	args, err := h.substitute(step.Args)
	if err != nil {
		return err
	}
	if args == nil {
		args = map[string]any{}
	}
	payload, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode args: %w", err)
	}
	act, err := state.DecodeAction(step.Action, payload)
	if err != nil {
		return err
	}

	res, dispatchErr := h.store.Dispatch(act)
	sr := StepResult{
		Action:   step.Action,
		ID:       res.ID,
		Changed:  res.Changed,
		Revision: h.store.Revision(),
	}
	if dispatchErr != nil {
		sr.Error = dispatchErr.Error()
	}
	result.Steps = append(result.Steps, sr)

	switch step.Expect {
	case ExpectRefused:
		if dispatchErr == nil {
			result.AddError(fmt.Sprintf("step %d (%s): expected refusal, got success", i, step.Action))
		}
	case ExpectNoop:
		if dispatchErr != nil {
			result.AddError(fmt.Sprintf("step %d (%s): expected no-op, got error: %v", i, step.Action, dispatchErr))
		} else if res.Changed {
			result.AddError(fmt.Sprintf("step %d (%s): expected no-op, document changed", i, step.Action))
		}
	default:
		if dispatchErr != nil {
			result.AddError(fmt.Sprintf("step %d (%s): %v", i, step.Action, dispatchErr))
		} else if !res.Changed {
			result.AddError(fmt.Sprintf("step %d (%s): document did not change", i, step.Action))
		}
	}

	if step.Save != "" {
		if res.ID == "" {
			return fmt.Errorf("save %q: action returned no id", step.Save)
		}
		h.saved[step.Save] = res.ID
	}
	return nil
}

// substitute returns a copy of args with every "$name" string replaced by
// the saved id.
func (h *Harness) substitute(args map[string]any) (map[string]any, error) {
	if args == nil {
		return nil, nil
	}
	out, err := h.substituteValue(args)
	if err != nil {
		return nil, err
	}
	return out.(map[string]any), nil
}

func (h *Harness) substituteValue(v any) (any, error) {
	switch val := v.(type) {
	case string:
		return h.ref(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			s, err := h.substituteValue(item)
			if err != nil {
				return nil, err
			}
			out[k] = s
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			s, err := h.substituteValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	default:
		return v, nil
	}
}

// ref resolves "$name" to its saved id. Other strings pass through.
func (h *Harness) ref(s string) (string, error) {
	name, ok := strings.CutPrefix(s, "$")
	if !ok || name == "" {
		return s, nil
	}
	id, ok := h.saved[name]
	if !ok {
		return "", fmt.Errorf("unknown reference %q", s)
	}
	return id, nil
}

// resolveAssertion replaces $name references in the id-bearing fields.
func (h *Harness) resolveAssertion(a Assertion) (Assertion, error) {
	var err error
	for _, f := range []*string{&a.ID, &a.Project, &a.Account} {
		if *f, err = h.ref(*f); err != nil {
			return a, err
		}
	}
	if s, ok := a.Equals.(string); ok {
		if a.Equals, err = h.ref(s); err != nil {
			return a, err
		}
	}
	return a, nil
}
