package harness

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/report"
	"github.com/roach88/zenith/internal/state"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// evaluate checks one resolved assertion against the final document.
func evaluate(data model.AppData, a Assertion) error {
	switch a.Type {
	case AssertCount:
		return assertCount(data, a)
	case AssertBalance:
		return assertBalance(data, a)
	case AssertProgress:
		return assertProgress(data, a)
	case AssertExists:
		return assertExists(data, a)
	case AssertField:
		return assertField(data, a)
	case AssertIntegrity:
		return assertIntegrity(data)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertCount(data model.AppData, a Assertion) error {
	items, err := collection(data, a)
	if err != nil {
		return err
	}
	want, ok := toInt(a.Equals)
	if !ok {
		return fmt.Errorf("count: equals must be an integer, got %v", a.Equals)
	}
	if len(items) != want {
		return &AssertionError{
			Type:     AssertCount,
			Expected: fmt.Sprintf("%d %s", want, a.Collection),
			Actual:   fmt.Sprintf("%d", len(items)),
		}
	}
	return nil
}

func assertBalance(data model.AppData, a Assertion) error {
	want, err := model.ParseAmount(fmt.Sprint(a.Equals))
	if err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	// No account means the total across all accounts.
	scope := "all accounts"
	if a.Account != "" {
		if _, ok := data.FindAccount(a.Account); !ok {
			return &AssertionError{
				Type:     AssertBalance,
				Expected: fmt.Sprintf("account %q", a.Account),
				Actual:   "account not found",
			}
		}
		scope = a.Account
	}
	got := report.Totals(data, a.Account).Balance
	if !got.Equal(want.Decimal) {
		return &AssertionError{
			Type:     AssertBalance,
			Expected: fmt.Sprintf("balance of %s = %s", scope, want),
			Actual:   got.String(),
		}
	}
	return nil
}

func assertProgress(data model.AppData, a Assertion) error {
	p, ok := data.FindProject(a.Project)
	if !ok {
		return &AssertionError{
			Type:     AssertProgress,
			Expected: fmt.Sprintf("project %q", a.Project),
			Actual:   "project not found",
		}
	}
	got := report.Progress(p)
	if got.Done != a.Done || got.Total != a.Total {
		return &AssertionError{
			Type:     AssertProgress,
			Expected: fmt.Sprintf("%d/%d tasks done", a.Done, a.Total),
			Actual:   fmt.Sprintf("%d/%d", got.Done, got.Total),
		}
	}
	return nil
}

func assertExists(data model.AppData, a Assertion) error {
	items, err := collection(data, a)
	if err != nil {
		return err
	}
	want := a.Present == nil || *a.Present
	_, found := findByID(items, a.ID)
	if found != want {
		return &AssertionError{
			Type:     AssertExists,
			Expected: fmt.Sprintf("%s %q present=%t", a.Collection, a.ID, want),
			Actual:   fmt.Sprintf("present=%t", found),
		}
	}
	return nil
}

func assertField(data model.AppData, a Assertion) error {
	if a.Field == "" {
		return fmt.Errorf("field assertion requires field name")
	}
	items, err := collection(data, a)
	if err != nil {
		return err
	}
	entity, ok := findByID(items, a.ID)
	if !ok {
		return &AssertionError{
			Type:     AssertField,
			Expected: fmt.Sprintf("%s %q", a.Collection, a.ID),
			Actual:   "not found",
		}
	}

	want, err := jsonValue(a.Equals)
	if err != nil {
		return err
	}
	got := entity[a.Field]
	if !fieldValuesEqual(want, got) {
		return &AssertionError{
			Type:     AssertField,
			Expected: fmt.Sprintf("%s %q %s = %v", a.Collection, a.ID, a.Field, want),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

func assertIntegrity(data model.AppData) error {
	vs := state.CheckIntegrity(data)
	if len(vs) == 0 {
		return nil
	}
	return &AssertionError{
		Type:     AssertIntegrity,
		Expected: "no violations",
		Actual:   fmt.Sprintf("%d violation(s), first: %s", len(vs), vs[0]),
	}
}

// collection returns the named collection as JSON objects, so field
// assertions see exactly what an export would contain.
func collection(data model.AppData, a Assertion) ([]map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc map[string][]map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	if a.Collection == "tasks" {
		project, ok := findByID(doc["projects"], a.Project)
		if !ok {
			return nil, fmt.Errorf("tasks: project %q not found", a.Project)
		}
		raw, _ := json.Marshal(project["tasks"])
		var tasks []map[string]any
		if err := json.Unmarshal(raw, &tasks); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		return tasks, nil
	}

	items, ok := doc[a.Collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", a.Collection)
	}
	return items, nil
}

func findByID(items []map[string]any, id string) (map[string]any, bool) {
	for _, item := range items {
		if item["id"] == id {
			return item, true
		}
	}
	return nil, false
}

// jsonValue passes v through JSON so YAML ints compare equal to decoded
// JSON numbers.
func jsonValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode expected value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode expected value: %w", err)
	}
	return out, nil
}

// fieldValuesEqual compares an expected value against a decoded field.
// A nil expectation matches an absent or empty field, which is how
// cleared optional references are exported.
func fieldValuesEqual(want, got any) bool {
	if want == nil {
		return got == nil || got == ""
	}
	return reflect.DeepEqual(want, got)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
