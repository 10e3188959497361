package state

import (
	"fmt"

	"github.com/roach88/zenith/internal/model"
)

// Action is a transition request. The set of implementations is closed:
// only types in this package satisfy it.
type Action interface {
	// Name is the stable action name used in logs and DecodeAction.
	Name() string
	isAction()
}

// Entity payloads on Add actions carry every field except the id; any ID
// present is ignored and replaced with a fresh one.

type SetData struct {
	Data model.AppData `json:"data"`
}

type AddAccount struct {
	Account model.Account `json:"account"`
}

type DeleteAccount struct {
	ID string `json:"id"`
}

type AddTransaction struct {
	Transaction model.Transaction `json:"transaction"`
}

type DeleteTransaction struct {
	ID string `json:"id"`
}

type AddCategory struct {
	Category model.Category `json:"category"`
}

type DeleteCategory struct {
	ID string `json:"id"`
}

type AddProject struct {
	Project model.Project `json:"project"`
}

// UpdateProject replaces the project with the same id, tasks included.
type UpdateProject struct {
	Project model.Project `json:"project"`
}

type DeleteProject struct {
	ID string `json:"id"`
}

type AddTask struct {
	ProjectID string     `json:"projectId"`
	Task      model.Task `json:"task"`
}

type UpdateTask struct {
	ProjectID string     `json:"projectId"`
	Task      model.Task `json:"task"`
}

type DeleteTask struct {
	ProjectID string `json:"projectId"`
	TaskID    string `json:"taskId"`
}

// UpdateTaskStatus changes only the status of one task.
type UpdateTaskStatus struct {
	ProjectID string           `json:"projectId"`
	TaskID    string           `json:"taskId"`
	Status    model.TaskStatus `json:"status"`
}

type AddContact struct {
	Contact model.Contact `json:"contact"`
}

type UpdateContact struct {
	Contact model.Contact `json:"contact"`
}

// DeleteContact leaves projects' clientId untouched.
type DeleteContact struct {
	ID string `json:"id"`
}

type AddJournalEntry struct {
	Entry model.JournalEntry `json:"entry"`
}

type UpdateJournalEntry struct {
	Entry model.JournalEntry `json:"entry"`
}

type DeleteJournalEntry struct {
	ID string `json:"id"`
}

// AddMoodLog appends without any one-per-day check.
type AddMoodLog struct {
	Log model.MoodLog `json:"log"`
}

type DeleteMoodLog struct {
	ID string `json:"id"`
}

func (SetData) Name() string            { return "SetData" }
func (AddAccount) Name() string         { return "AddAccount" }
func (DeleteAccount) Name() string      { return "DeleteAccount" }
func (AddTransaction) Name() string     { return "AddTransaction" }
func (DeleteTransaction) Name() string  { return "DeleteTransaction" }
func (AddCategory) Name() string        { return "AddCategory" }
func (DeleteCategory) Name() string     { return "DeleteCategory" }
func (AddProject) Name() string         { return "AddProject" }
func (UpdateProject) Name() string      { return "UpdateProject" }
func (DeleteProject) Name() string      { return "DeleteProject" }
func (AddTask) Name() string            { return "AddTask" }
func (UpdateTask) Name() string         { return "UpdateTask" }
func (DeleteTask) Name() string         { return "DeleteTask" }
func (UpdateTaskStatus) Name() string   { return "UpdateTaskStatus" }
func (AddContact) Name() string         { return "AddContact" }
func (UpdateContact) Name() string      { return "UpdateContact" }
func (DeleteContact) Name() string      { return "DeleteContact" }
func (AddJournalEntry) Name() string    { return "AddJournalEntry" }
func (UpdateJournalEntry) Name() string { return "UpdateJournalEntry" }
func (DeleteJournalEntry) Name() string { return "DeleteJournalEntry" }
func (AddMoodLog) Name() string         { return "AddMoodLog" }
func (DeleteMoodLog) Name() string      { return "DeleteMoodLog" }

func (SetData) isAction()            {}
func (AddAccount) isAction()         {}
func (DeleteAccount) isAction()      {}
func (AddTransaction) isAction()     {}
func (DeleteTransaction) isAction()  {}
func (AddCategory) isAction()        {}
func (DeleteCategory) isAction()     {}
func (AddProject) isAction()         {}
func (UpdateProject) isAction()      {}
func (DeleteProject) isAction()      {}
func (AddTask) isAction()            {}
func (UpdateTask) isAction()         {}
func (DeleteTask) isAction()         {}
func (UpdateTaskStatus) isAction()   {}
func (AddContact) isAction()         {}
func (UpdateContact) isAction()      {}
func (DeleteContact) isAction()      {}
func (AddJournalEntry) isAction()    {}
func (UpdateJournalEntry) isAction() {}
func (DeleteJournalEntry) isAction() {}
func (AddMoodLog) isAction()         {}
func (DeleteMoodLog) isAction()      {}

// validate checks the payload's enum values and signs. It does not look at
// the current state: references to missing entities are no-ops, not errors.
func validate(act Action) error {
	switch a := act.(type) {
	case AddAccount:
		if !a.Account.Icon.Valid() {
			return invalidAction(act, "icon", fmt.Sprintf("unknown icon %q", a.Account.Icon))
		}
	case AddTransaction:
		return validateTransaction(act, a.Transaction)
	case AddCategory:
		if !a.Category.Type.Valid() {
			return invalidAction(act, "type", fmt.Sprintf("unknown category type %q", a.Category.Type))
		}
	case AddProject:
		return validateTasks(act, a.Project.Tasks)
	case UpdateProject:
		return validateTasks(act, a.Project.Tasks)
	case AddTask:
		return validateTasks(act, []model.Task{a.Task})
	case UpdateTask:
		return validateTasks(act, []model.Task{a.Task})
	case UpdateTaskStatus:
		if !a.Status.Valid() {
			return invalidAction(act, "status", fmt.Sprintf("unknown task status %q", a.Status))
		}
	case AddMoodLog:
		if !a.Log.Mood.Valid() {
			return invalidAction(act, "mood", fmt.Sprintf("unknown mood %q", a.Log.Mood))
		}
	}
	return nil
}

func validateTransaction(act Action, tx model.Transaction) error {
	if !tx.Type.Valid() {
		return invalidAction(act, "type", fmt.Sprintf("unknown transaction type %q", tx.Type))
	}
	if tx.Amount.IsNegative() {
		return invalidAction(act, "amount", "amount must not be negative")
	}
	if !model.ValidCategory(tx.Type, tx.Category) {
		return invalidAction(act, "category",
			fmt.Sprintf("category %q is not valid for %s, must be one of %v", tx.Category, tx.Type, model.CategoriesFor(tx.Type)))
	}
	return nil
}

// validateTasks checks statuses and refuses repeated task ids. Empty ids
// are allowed; AddProject fills them in.
func validateTasks(act Action, tasks []model.Task) error {
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if !t.Status.Valid() {
			return invalidAction(act, fmt.Sprintf("tasks[%d].status", i), fmt.Sprintf("unknown task status %q", t.Status))
		}
		if t.ID == "" {
			continue
		}
		if seen[t.ID] {
			return invalidAction(act, fmt.Sprintf("tasks[%d].id", i), fmt.Sprintf("duplicate task id %q", t.ID))
		}
		seen[t.ID] = true
	}
	return nil
}
