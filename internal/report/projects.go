package report

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roach88/zenith/internal/model"
)

// ProjectProgress counts finished tasks.
type ProjectProgress struct {
	Done  int
	Total int
}

// Ratio is Done/Total, or 0 for a project without tasks.
func (p ProjectProgress) Ratio() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}

// Percent is Ratio as a whole percentage, rounded half away from zero.
func (p ProjectProgress) Percent() int {
	return int(math.Round(p.Ratio() * 100))
}

// Progress counts the done tasks of p.
func Progress(p model.Project) ProjectProgress {
	pr := ProjectProgress{Total: len(p.Tasks)}
	for _, t := range p.Tasks {
		if t.Status == model.StatusDone {
			pr.Done++
		}
	}
	return pr
}

// TasksByStatus groups the tasks of p into board columns. Every status has
// an entry, empty or not; tasks keep their order within a column.
func TasksByStatus(p model.Project) map[model.TaskStatus][]model.Task {
	out := make(map[model.TaskStatus][]model.Task, len(model.TaskStatuses))
	for _, s := range model.TaskStatuses {
		out[s] = []model.Task{}
	}
	for _, t := range p.Tasks {
		out[t.Status] = append(out[t.Status], t)
	}
	return out
}

// UpcomingDeadlines returns incomplete projects due on or after the start of
// now's day, soonest first. limit <= 0 returns them all.
func UpcomingDeadlines(data model.AppData, now time.Time, limit int) []model.Project {
	today := startOfDay(now)
	var out []model.Project
	for _, p := range data.Projects {
		if !p.IsCompleted && !p.Deadline.Before(today) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Project) int {
		return a.Deadline.Compare(b.Deadline)
	})
	return truncate(out, limit)
}

// TaskRef is a task together with the project that owns it.
type TaskRef struct {
	ProjectID   string
	ProjectName string
	Task        model.Task
}

// TodaysTasks returns the unfinished tasks whose deadline falls on now's
// calendar day, in storage order. A date-only deadline matches by calendar
// date alone.
func TodaysTasks(data model.AppData, now time.Time) []TaskRef {
	var out []TaskRef
	for _, p := range data.Projects {
		for _, t := range p.Tasks {
			if t.Status == model.StatusDone || t.Deadline == nil {
				continue
			}
			if t.Deadline.OnDay(now) {
				out = append(out, TaskRef{ProjectID: p.ID, ProjectName: p.Name, Task: t})
			}
		}
	}
	return out
}

// ClientValue sums the value of every project whose client is contactID.
// Projects without a value count as zero.
func ClientValue(data model.AppData, contactID string) model.Amount {
	sum := decimal.Zero
	for _, p := range ClientProjects(data, contactID) {
		if p.Value != nil {
			sum = sum.Add(p.Value.Decimal)
		}
	}
	return model.AmountOf(sum)
}

// ClientProjects returns the projects whose client is contactID.
func ClientProjects(data model.AppData, contactID string) []model.Project {
	var out []model.Project
	for _, p := range data.Projects {
		if contactID != "" && p.ClientID == contactID {
			out = append(out, p)
		}
	}
	return out
}

// ClientName resolves a project's client. A dangling or empty clientId
// yields "" and false.
func ClientName(data model.AppData, p model.Project) (string, bool) {
	if p.ClientID == "" {
		return "", false
	}
	c, ok := data.FindContact(p.ClientID)
	if !ok {
		return "", false
	}
	return c.Name, true
}

// ProjectsInCategory returns the projects in categoryID. An empty
// categoryID returns every project.
func ProjectsInCategory(data model.AppData, categoryID string) []model.Project {
	if categoryID == "" {
		return slices.Clone(data.Projects)
	}
	var out []model.Project
	for _, p := range data.Projects {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// ContactsInCategory returns the contacts in categoryID. An empty
// categoryID returns every contact.
func ContactsInCategory(data model.AppData, categoryID string) []model.Contact {
	if categoryID == "" {
		return slices.Clone(data.Contacts)
	}
	var out []model.Contact
	for _, c := range data.Contacts {
		if c.CategoryID == categoryID {
			out = append(out, c)
		}
	}
	return out
}
