package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/zenith/internal/model"
)

// Accepted date flag layouts. Date-only values are midnight UTC.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

// cleanText trims and NFC-normalizes free text so that visually identical
// input compares equal.
func cleanText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// parseDate parses a date flag value.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or RFC 3339", s)
}

// dateValue is a pflag.Value holding a time. Set records that the flag was
// given.
type dateValue struct {
	t   *time.Time
	set bool
}

func newDateValue(p *time.Time) *dateValue {
	return &dateValue{t: p}
}

func (d *dateValue) String() string {
	if d.t == nil || d.t.IsZero() {
		return ""
	}
	return d.t.Format(time.RFC3339)
}

func (d *dateValue) Set(s string) error {
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	*d.t = t
	d.set = true
	return nil
}

func (d *dateValue) Type() string { return "date" }

// deadlineValue is a pflag.Value holding a task deadline. A bare
// YYYY-MM-DD stays date-only; anything else parseDate accepts becomes a
// timestamp.
type deadlineValue struct {
	d   model.Date
	set bool
}

func (v *deadlineValue) String() string {
	if !v.set {
		return ""
	}
	return v.d.String()
}

func (v *deadlineValue) Set(s string) error {
	if t, err := time.Parse(model.DayLayout, s); err == nil {
		v.d, v.set = model.DayOf(t), true
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return err
	}
	v.d, v.set = model.At(t), true
	return nil
}

func (v *deadlineValue) Type() string { return "date" }

// value returns a fresh pointer to the deadline, or nil if the flag was
// not given.
func (v *deadlineValue) value() *model.Date {
	if !v.set {
		return nil
	}
	d := v.d
	return &d
}

// amountValue is a pflag.Value holding a decimal amount.
type amountValue struct {
	a *model.Amount
}

func newAmountValue(p *model.Amount) *amountValue {
	return &amountValue{a: p}
}

func (v *amountValue) String() string {
	if v.a == nil {
		return "0"
	}
	return v.a.String()
}

func (v *amountValue) Set(s string) error {
	a, err := model.ParseAmount(s)
	if err != nil {
		return err
	}
	*v.a = a
	return nil
}

func (v *amountValue) Type() string { return "amount" }

// window is an inclusive day range given by --from and --to.
type window struct {
	from, to       time.Time
	fromSet, toSet *dateValue
}

// addWindowFlags registers --from and --to on fs.
func addWindowFlags(fs *pflag.FlagSet, w *window) {
	w.fromSet = newDateValue(&w.from)
	w.toSet = newDateValue(&w.to)
	fs.Var(w.fromSet, "from", "first day of the window (YYYY-MM-DD)")
	fs.Var(w.toSet, "to", "last day of the window (YYYY-MM-DD)")
}

// given reports whether either bound was set.
func (w *window) given() bool {
	return w.fromSet.set || w.toSet.set
}

// resolve fills unset bounds: from defaults to def, to to from+span.
func (w *window) resolve(def time.Time, span time.Duration) (time.Time, time.Time) {
	from, to := w.from, w.to
	if !w.fromSet.set {
		from = def
	}
	if !w.toSet.set {
		to = from.Add(span)
	}
	return from, to
}

var titleCaser = cases.Title(language.English)

// statusLabels spell out task statuses for display.
var statusLabels = map[model.TaskStatus]string{
	model.StatusTodo:       "to do",
	model.StatusInProgress: "in progress",
	model.StatusDone:       "done",
}

// label title-cases an enum value for display.
func label[T ~string](v T) string {
	s := string(v)
	if l, ok := statusLabels[model.TaskStatus(s)]; ok {
		s = l
	}
	return titleCaser.String(s)
}

// relative describes t against now, e.g. "3 days from now".
func relative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// money formats an amount with two decimals.
func money(a model.Amount) string {
	return a.StringFixed(2)
}

// day formats the date part of t.
func day(t time.Time) string {
	return t.Format("2006-01-02")
}
