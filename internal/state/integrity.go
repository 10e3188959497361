package state

import (
	"fmt"

	"github.com/roach88/zenith/internal/model"
)

// EntityKind names an entity collection (or, for tasks, the embedded list).
type EntityKind string

const (
	KindAccount      EntityKind = "account"
	KindTransaction  EntityKind = "transaction"
	KindCategory     EntityKind = "category"
	KindProject      EntityKind = "project"
	KindTask         EntityKind = "task"
	KindContact      EntityKind = "contact"
	KindJournalEntry EntityKind = "journalEntry"
	KindMoodLog      EntityKind = "moodLog"
)

// removal describes an entity a delete transition just removed.
type removal struct {
	kind         EntityKind
	id           string
	categoryType model.CategoryType // set for KindCategory
}

// cascadeRule repairs references to a removed entity.
type cascadeRule func(model.AppData, removal) model.AppData

// cascades lists, per removed kind, what else must change. Kinds mapped to
// nil have no dependents:
//   - project: tasks are embedded and leave with it
//   - contact: projects' clientId may dangle
//   - transaction, task, journal entry, mood log: nothing references them
var cascades = map[EntityKind]cascadeRule{
	KindAccount:      dropAccountTransactions,
	KindCategory:     clearCategoryReferences,
	KindProject:      nil,
	KindTask:         nil,
	KindContact:      nil,
	KindTransaction:  nil,
	KindJournalEntry: nil,
	KindMoodLog:      nil,
}

// enforceIntegrity runs the cascade rule for r. Every delete arm in Reduce
// calls it after removing the entity itself.
func enforceIntegrity(data model.AppData, r removal) model.AppData {
	rule, known := cascades[r.kind]
	if !known {
		panic(fmt.Sprintf("state: no cascade entry for %q", r.kind))
	}
	if rule == nil {
		return data
	}
	return rule(data, r)
}

// dropAccountTransactions deletes every transaction booked on the removed account.
func dropAccountTransactions(data model.AppData, r removal) model.AppData {
	txs, ok := without(data.Transactions, func(t model.Transaction) bool { return t.AccountID == r.id })
	if ok {
		data.Transactions = txs
	}
	return data
}

// clearCategoryReferences unsets categoryId on entities of the removed
// category's domain. The other domain is left alone even if it happens to
// carry the same id.
func clearCategoryReferences(data model.AppData, r removal) model.AppData {
	switch r.categoryType {
	case model.CategoryProject:
		projects, ok := replaced(data.Projects,
			func(p model.Project) bool { return p.CategoryID == r.id },
			func(p model.Project) model.Project {
				p.CategoryID = ""
				return p
			})
		if ok {
			data.Projects = projects
		}
	case model.CategoryContact:
		contacts, ok := replaced(data.Contacts,
			func(c model.Contact) bool { return c.CategoryID == r.id },
			func(c model.Contact) model.Contact {
				c.CategoryID = ""
				return c
			})
		if ok {
			data.Contacts = contacts
		}
	}
	return data
}

// Violation is one broken invariant found by CheckIntegrity.
type Violation struct {
	Kind    EntityKind
	ID      string
	Field   string
	Message string
}

func (v Violation) String() string {
	if v.Field != "" {
		return fmt.Sprintf("%s %q: %s: %s", v.Kind, v.ID, v.Field, v.Message)
	}
	return fmt.Sprintf("%s %q: %s", v.Kind, v.ID, v.Message)
}

// CheckIntegrity audits a whole document and returns every violation in
// collection order. A document built only through Reduce from a clean
// document always passes.
//
// Checked:
//   - ids are non-empty and unique per collection (tasks: per project)
//   - transactions reference an existing account
//   - project and contact categoryId reference a category of their domain
//
// A dangling project clientId is tolerated and not reported.
func CheckIntegrity(data model.AppData) []Violation {
	var vs []Violation

	vs = append(vs, checkIDs(KindAccount, data.Accounts, func(a model.Account) string { return a.ID })...)
	vs = append(vs, checkIDs(KindTransaction, data.Transactions, func(t model.Transaction) string { return t.ID })...)
	vs = append(vs, checkIDs(KindProject, data.Projects, func(p model.Project) string { return p.ID })...)
	vs = append(vs, checkIDs(KindContact, data.Contacts, func(c model.Contact) string { return c.ID })...)
	vs = append(vs, checkIDs(KindCategory, data.Categories, func(c model.Category) string { return c.ID })...)
	vs = append(vs, checkIDs(KindMoodLog, data.MoodLogs, func(m model.MoodLog) string { return m.ID })...)
	vs = append(vs, checkIDs(KindJournalEntry, data.JournalEntries, func(e model.JournalEntry) string { return e.ID })...)

	accounts := make(map[string]bool, len(data.Accounts))
	for _, a := range data.Accounts {
		accounts[a.ID] = true
	}
	for _, t := range data.Transactions {
		if !accounts[t.AccountID] {
			vs = append(vs, Violation{Kind: KindTransaction, ID: t.ID, Field: "accountId",
				Message: fmt.Sprintf("references missing account %q", t.AccountID)})
		}
	}

	categories := make(map[string]model.CategoryType, len(data.Categories))
	for _, c := range data.Categories {
		categories[c.ID] = c.Type
	}
	for _, p := range data.Projects {
		if v, bad := checkCategoryRef(KindProject, p.ID, p.CategoryID, model.CategoryProject, categories); bad {
			vs = append(vs, v)
		}
		for _, v := range checkIDs(KindTask, p.Tasks, func(t model.Task) string { return t.ID }) {
			v.Field = "project " + p.ID
			vs = append(vs, v)
		}
	}
	for _, c := range data.Contacts {
		if v, bad := checkCategoryRef(KindContact, c.ID, c.CategoryID, model.CategoryContact, categories); bad {
			vs = append(vs, v)
		}
	}

	return vs
}

func checkIDs[T any](kind EntityKind, items []T, id func(T) string) []Violation {
	var vs []Violation
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		v := id(item)
		if v == "" {
			vs = append(vs, Violation{Kind: kind, Message: fmt.Sprintf("entry %d has an empty id", i)})
			continue
		}
		if seen[v] {
			vs = append(vs, Violation{Kind: kind, ID: v, Message: "duplicate id"})
		}
		seen[v] = true
	}
	return vs
}

func checkCategoryRef(kind EntityKind, id, categoryID string, want model.CategoryType, categories map[string]model.CategoryType) (Violation, bool) {
	if categoryID == "" {
		return Violation{}, false
	}
	got, ok := categories[categoryID]
	if !ok {
		return Violation{Kind: kind, ID: id, Field: "categoryId",
			Message: fmt.Sprintf("references missing category %q", categoryID)}, true
	}
	if got != want {
		return Violation{Kind: kind, ID: id, Field: "categoryId",
			Message: fmt.Sprintf("references %s category %q", got, categoryID)}, true
	}
	return Violation{}, false
}
