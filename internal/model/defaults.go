package model

import "time"

// SeedProjectID and the seed task ids are stable so a fresh install looks the
// same on every machine.
const (
	SeedProjectID = "proj-1"
	seedTaskOneID = "task-1"
	seedTaskTwoID = "task-2"
)

// DefaultData returns the document used for a first run, or when the stored
// blob cannot be read: empty collections plus one example project due a
// week after now.
func DefaultData(now time.Time) AppData {
	return AppData{
		Accounts:     []Account{},
		Transactions: []Transaction{},
		Projects: []Project{
			{
				ID:          SeedProjectID,
				Name:        "Plan vacation",
				Deadline:    now.UTC().Add(7 * 24 * time.Hour),
				IsCompleted: false,
				Tasks: []Task{
					{ID: seedTaskOneID, Text: "Book flights", Status: StatusTodo},
					{ID: seedTaskTwoID, Text: "Reserve hotel", Status: StatusTodo},
				},
			},
		},
		Contacts:       []Contact{},
		Categories:     []Category{},
		MoodLogs:       []MoodLog{},
		JournalEntries: []JournalEntry{},
	}
}

// Empty returns a normalized document with no entities.
func Empty() AppData {
	return AppData{}.Normalize()
}

// Normalize returns a deep copy of d in which every collection, and every
// project's task list, is non-nil and every amount is canonical. nil and
// empty collections mean the same thing; normalizing keeps exports free of
// JSON nulls.
//
// The result shares no slices or pointers with d.
func (d AppData) Normalize() AppData {
	return AppData{
		Accounts:       copied(d.Accounts, Account.Clone),
		Transactions:   copied(d.Transactions, Transaction.Clone),
		Projects:       copied(d.Projects, Project.Clone),
		Contacts:       copied[Contact](d.Contacts, nil),
		Categories:     copied[Category](d.Categories, nil),
		MoodLogs:       copied[MoodLog](d.MoodLogs, nil),
		JournalEntries: copied[JournalEntry](d.JournalEntries, nil),
	}
}
