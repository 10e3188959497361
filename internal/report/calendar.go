package report

import (
	"slices"
	"time"

	"github.com/roach88/zenith/internal/model"
)

// EventKind says what a calendar event stands for.
type EventKind string

const (
	EventProject EventKind = "project"
	EventTask    EventKind = "task"
)

// Event is one dated entry on the calendar.
type Event struct {
	Date      time.Time
	Kind      EventKind
	Title     string
	ProjectID string
	TaskID    string // Empty for project events
}

// CalendarEvents returns the deadlines of incomplete projects and of
// unfinished tasks that fall on any day from from through to, earliest
// first. Tasks without a deadline never appear. A date-only task deadline
// is placed at midnight of its day in from's location.
func CalendarEvents(data model.AppData, from, to time.Time) []Event {
	start, end := dayWindow(from, to)
	var out []Event
	for _, p := range data.Projects {
		if !p.IsCompleted && inWindow(p.Deadline, start, end) {
			out = append(out, Event{Date: p.Deadline, Kind: EventProject, Title: p.Name, ProjectID: p.ID})
		}
	}
	for _, p := range data.Projects {
		for _, t := range p.Tasks {
			if t.Status == model.StatusDone || t.Deadline == nil {
				continue
			}
			due := t.Deadline.In(start.Location())
			if inWindow(due, start, end) {
				out = append(out, Event{Date: due, Kind: EventTask, Title: t.Text, ProjectID: p.ID, TaskID: t.ID})
			}
		}
	}
	slices.SortStableFunc(out, func(a, b Event) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

// MoodForDay returns the first mood log on day's calendar day.
func MoodForDay(data model.AppData, day time.Time) (model.MoodLog, bool) {
	for _, m := range data.MoodLogs {
		if sameDay(m.Date, day) {
			return m, true
		}
	}
	return model.MoodLog{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayWindow returns [start of from's day, start of the day after to).
func dayWindow(from, to time.Time) (time.Time, time.Time) {
	return startOfDay(from), startOfDay(to.In(from.Location())).AddDate(0, 0, 1)
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// sameDay compares calendar days in ref's location.
func sameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
