package state

import (
	"fmt"
	"slices"

	"github.com/roach88/zenith/internal/model"
)

// Outcome is the result of one transition.
type Outcome struct {
	// Data is the next snapshot. When Changed is false it is the input.
	Data model.AppData

	// ID is the id assigned by an Add transition, empty otherwise.
	ID string

	// Changed is false for no-ops (unknown ids, missing parents).
	Changed bool
}

// Reduce applies act to data and returns the next snapshot.
//
// Reduce is pure apart from drawing fresh ids from ids: data is never
// modified, every collection that changes is reallocated, and payloads are
// cloned on the way in so the caller keeps no handle into the snapshot. Transitions
// that reference missing entities return data unchanged; they never fail.
// Payload validation happens in Store.Dispatch, before Reduce.
func Reduce(data model.AppData, act Action, ids IDGenerator) Outcome {
	unchanged := Outcome{Data: data}

	switch a := act.(type) {
	case SetData:
		return Outcome{Data: a.Data.Normalize(), Changed: true}

	// Accounts
	case AddAccount:
		acc := a.Account.Clone()
		acc.ID = ids.NewID()
		data.Accounts = appended(data.Accounts, acc)
		return Outcome{Data: data, ID: acc.ID, Changed: true}
	case DeleteAccount:
		accounts, ok := without(data.Accounts, func(x model.Account) bool { return x.ID == a.ID })
		if !ok {
			return unchanged
		}
		data.Accounts = accounts
		return Outcome{Data: enforceIntegrity(data, removal{kind: KindAccount, id: a.ID}), Changed: true}

	// Transactions
	case AddTransaction:
		tx := a.Transaction.Clone()
		tx.ID = ids.NewID()
		data.Transactions = appended(data.Transactions, tx)
		return Outcome{Data: data, ID: tx.ID, Changed: true}
	case DeleteTransaction:
		txs, ok := without(data.Transactions, func(x model.Transaction) bool { return x.ID == a.ID })
		if !ok {
			return unchanged
		}
		data.Transactions = txs
		return Outcome{Data: enforceIntegrity(data, removal{kind: KindTransaction, id: a.ID}), Changed: true}

	// Categories
	case AddCategory:
		cat := a.Category
		cat.ID = ids.NewID()
		data.Categories = appended(data.Categories, cat)
		return Outcome{Data: data, ID: cat.ID, Changed: true}
	case DeleteCategory:
		cat, found := data.FindCategory(a.ID)
		if !found {
			return unchanged
		}
		data.Categories, _ = without(data.Categories, func(x model.Category) bool { return x.ID == a.ID })
		return Outcome{
			Data:    enforceIntegrity(data, removal{kind: KindCategory, id: a.ID, categoryType: cat.Type}),
			Changed: true,
		}

	// Projects
	case AddProject:
		p := a.Project.Clone()
		p.ID = ids.NewID()
		p.Tasks = withTaskIDs(p.Tasks, ids)
		data.Projects = appended(data.Projects, p)
		return Outcome{Data: data, ID: p.ID, Changed: true}
	case UpdateProject:
		p := a.Project.Clone()
		projects, ok := replaced(data.Projects,
			func(x model.Project) bool { return x.ID == p.ID },
			func(model.Project) model.Project { return p })
		if !ok {
			return unchanged
		}
		data.Projects = projects
		return Outcome{Data: data, Changed: true}
	case DeleteProject:
		projects, ok := without(data.Projects, func(x model.Project) bool { return x.ID == a.ID })
		if !ok {
			return unchanged
		}
		data.Projects = projects
		return Outcome{Data: enforceIntegrity(data, removal{kind: KindProject, id: a.ID}), Changed: true}

	// Tasks
	case AddTask:
		if _, found := data.FindProject(a.ProjectID); !found {
			return unchanged
		}
		task := a.Task.Clone()
		task.ID = ids.NewID()
		next, _ := updateProject(data, a.ProjectID, func(p model.Project) (model.Project, bool) {
			p.Tasks = appended(p.Tasks, task)
			return p, true
		})
		return Outcome{Data: next, ID: task.ID, Changed: true}
	case UpdateTask:
		next, ok := updateProject(data, a.ProjectID, func(p model.Project) (model.Project, bool) {
			tasks, ok := replaced(p.Tasks,
				func(t model.Task) bool { return t.ID == a.Task.ID },
				func(model.Task) model.Task { return a.Task.Clone() })
			p.Tasks = tasks
			return p, ok
		})
		if !ok {
			return unchanged
		}
		return Outcome{Data: next, Changed: true}
	case DeleteTask:
		next, ok := updateProject(data, a.ProjectID, func(p model.Project) (model.Project, bool) {
			tasks, ok := without(p.Tasks, func(t model.Task) bool { return t.ID == a.TaskID })
			p.Tasks = tasks
			return p, ok
		})
		if !ok {
			return unchanged
		}
		return Outcome{Data: enforceIntegrity(next, removal{kind: KindTask, id: a.TaskID}), Changed: true}
	case UpdateTaskStatus:
		next, ok := updateProject(data, a.ProjectID, func(p model.Project) (model.Project, bool) {
			tasks, ok := replaced(p.Tasks,
				func(t model.Task) bool { return t.ID == a.TaskID },
				func(t model.Task) model.Task {
					t.Status = a.Status
					return t
				})
			p.Tasks = tasks
			return p, ok
		})
		if !ok {
			return unchanged
		}
		return Outcome{Data: next, Changed: true}

	// Contacts
	case AddContact:
		c := a.Contact
		c.ID = ids.NewID()
		data.Contacts = appended(data.Contacts, c)
		return Outcome{Data: data, ID: c.ID, Changed: true}
	case UpdateContact:
		contacts, ok := replaced(data.Contacts,
			func(x model.Contact) bool { return x.ID == a.Contact.ID },
			func(model.Contact) model.Contact { return a.Contact })
		if !ok {
			return unchanged
		}
		data.Contacts = contacts
		return Outcome{Data: data, Changed: true}
	case DeleteContact:
		contacts, ok := without(data.Contacts, func(x model.Contact) bool { return x.ID == a.ID })
		if !ok {
			return unchanged
		}
		data.Contacts = contacts
		return Outcome{Data: enforceIntegrity(data, removal{kind: KindContact, id: a.ID}), Changed: true}

	// Journal
	case AddJournalEntry:
		e := a.Entry
		e.ID = ids.NewID()
		data.JournalEntries = appended(data.JournalEntries, e)
		return Outcome{Data: data, ID: e.ID, Changed: true}
	case UpdateJournalEntry:
		entries, ok := replaced(data.JournalEntries,
			func(x model.JournalEntry) bool { return x.ID == a.Entry.ID },
			func(model.JournalEntry) model.JournalEntry { return a.Entry })
		if !ok {
			return unchanged
		}
		data.JournalEntries = entries
		return Outcome{Data: data, Changed: true}
	case DeleteJournalEntry:
		entries, ok := without(data.JournalEntries, func(x model.JournalEntry) bool { return x.ID == a.ID })
		if !ok {
			return unchanged
		}
		data.JournalEntries = entries
		return Outcome{Data: enforceIntegrity(data, removal{kind: KindJournalEntry, id: a.ID}), Changed: true}

	// Mood
	case AddMoodLog:
		l := a.Log
		l.ID = ids.NewID()
		data.MoodLogs = appended(data.MoodLogs, l)
		return Outcome{Data: data, ID: l.ID, Changed: true}
	case DeleteMoodLog:
		logs, ok := without(data.MoodLogs, func(x model.MoodLog) bool { return x.ID == a.ID })
		if !ok {
			return unchanged
		}
		data.MoodLogs = logs
		return Outcome{Data: enforceIntegrity(data, removal{kind: KindMoodLog, id: a.ID}), Changed: true}

	default:
		// Unreachable while Action stays sealed; a new action type without
		// an arm here is a programming error.
		panic(fmt.Sprintf("state: unhandled action %T", act))
	}
}

// withTaskIDs copies tasks, giving a fresh id to any task that has none.
func withTaskIDs(tasks []model.Task, ids IDGenerator) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			t.ID = ids.NewID()
		}
		out[i] = t
	}
	return out
}

// updateProject applies fn to the project with projectID. The projects
// slice is copied only if fn reports a change.
func updateProject(data model.AppData, projectID string, fn func(model.Project) (model.Project, bool)) (model.AppData, bool) {
	idx := slices.IndexFunc(data.Projects, func(p model.Project) bool { return p.ID == projectID })
	if idx < 0 {
		return data, false
	}
	p, changed := fn(data.Projects[idx])
	if !changed {
		return data, false
	}
	projects := slices.Clone(data.Projects)
	projects[idx] = p
	data.Projects = projects
	return data, true
}

// appended returns a new slice holding s followed by v. Unlike append, it
// never writes into s's backing array, which may be shared with older
// snapshots.
func appended[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

// without returns a new slice holding the elements of s for which drop is
// false, and whether anything was dropped.
func without[T any](s []T, drop func(T) bool) ([]T, bool) {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if drop(v) {
			continue
		}
		out = append(out, v)
	}
	return out, len(out) != len(s)
}

// replaced returns a new slice in which every element matching match is
// replaced by with(element), and whether anything matched.
func replaced[T any](s []T, match func(T) bool, with func(T) T) ([]T, bool) {
	out := make([]T, len(s))
	found := false
	for i, v := range s {
		if match(v) {
			out[i] = with(v)
			found = true
			continue
		}
		out[i] = v
	}
	return out, found
}
