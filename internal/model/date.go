package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayLayout is the layout of a bare calendar date.
const DayLayout = "2006-01-02"

// Date is a task deadline. It holds either a bare calendar day, as the
// browser app writes them ("2026-10-20"), or a full timestamp. It marshals
// back in the form it was read.
type Date struct {
	t       time.Time
	dayOnly bool
}

// Day returns the date-only value for y-m-d.
func Day(y int, m time.Month, d int) Date {
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), dayOnly: true}
}

// DayOf returns the calendar day t falls on, in t's location.
func DayOf(t time.Time) Date {
	y, m, d := t.Date()
	return Day(y, m, d)
}

// At returns a timestamp deadline.
func At(t time.Time) Date {
	return Date{t: t}
}

// ParseDate accepts YYYY-MM-DD or RFC 3339.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DayLayout, s); err == nil {
		return Date{t: t, dayOnly: true}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or RFC 3339", s)
	}
	return Date{t: t}, nil
}

// Time returns the instant. A date-only value is midnight UTC of its day.
func (d Date) Time() time.Time { return d.t }

// DayOnly reports whether d carries no time of day.
func (d Date) DayOnly() bool { return d.dayOnly }

func (d Date) IsZero() bool { return d.t.IsZero() }

// In returns the instant d stands for in loc. A date-only value is midnight
// of its day in loc, so it lands on the same calendar day everywhere.
func (d Date) In(loc *time.Location) time.Time {
	if !d.dayOnly {
		return d.t.In(loc)
	}
	y, m, day := d.t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

// OnDay reports whether d falls on ref's calendar day in ref's location.
func (d Date) OnDay(ref time.Time) bool {
	y1, m1, d1 := d.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Equal compares instant and form.
func (d Date) Equal(o Date) bool {
	return d.dayOnly == o.dayOnly && d.t.Equal(o.t)
}

func (d Date) String() string {
	if d.dayOnly {
		return d.t.Format(DayLayout)
	}
	return d.t.Format(time.RFC3339)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.dayOnly {
		return json.Marshal(d.t.Format(DayLayout))
	}
	return d.t.MarshalJSON()
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
