package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/zenith/internal/model"
)

var testDay = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

// reduceOK applies act and fails the test if it was a no-op.
func reduceOK(t *testing.T, data model.AppData, act Action, ids IDGenerator) Outcome {
	t.Helper()
	out := Reduce(data, act, ids)
	require.True(t, out.Changed, "%s should change state", act.Name())
	return out
}

// populated builds a document touching every collection, with ids from a
// sequence generator so tests can refer to them.
//
//	acc-1, acc-2         accounts
//	tx-1 (acc-1), tx-2 (acc-2), tx-3 (acc-1)
//	cat-1 project, cat-2 contact
//	proj-1 (cat-1, client con-1) with tasks t-1, t-2
//	con-1 (cat-2), con-2
func populated(t *testing.T) model.AppData {
	t.Helper()
	d := model.Empty()
	ids := NewFixedGenerator(
		"acc-1", "acc-2", "tx-1", "tx-2", "tx-3",
		"cat-1", "cat-2", "con-1", "con-2", "proj-1", "t-1", "t-2",
		"mood-1", "j-1",
	)
	steps := []Action{
		AddAccount{Account: model.Account{Name: "Cash", Icon: model.IconCash, InitialBalance: model.MustAmount("100")}},
		AddAccount{Account: model.Account{Name: "Bank", Icon: model.IconBank, InitialBalance: model.MustAmount("-20.50")}},
		AddTransaction{Transaction: expense("acc-1", "5")},
		AddTransaction{Transaction: expense("acc-2", "7.25")},
		AddTransaction{Transaction: model.Transaction{Description: "Pay", Amount: model.MustAmount("50"), Type: model.Income, Category: "salary", AccountID: "acc-1", Date: testDay}},
		AddCategory{Category: model.Category{Name: "Work", Type: model.CategoryProject}},
		AddCategory{Category: model.Category{Name: "VIP", Type: model.CategoryContact}},
		AddContact{Contact: model.Contact{Name: "Ada", CategoryID: "cat-2"}},
		AddContact{Contact: model.Contact{Name: "Grace"}},
		AddProject{Project: model.Project{
			Name: "Launch", Deadline: testDay, CategoryID: "cat-1", ClientID: "con-1",
			Tasks: []model.Task{{Text: "Write spec", Status: model.StatusTodo}, {Text: "Ship", Status: model.StatusTodo}},
		}},
		AddMoodLog{Log: model.MoodLog{Mood: model.MoodHappy, Notes: "sunny", Date: testDay}},
		AddJournalEntry{Entry: model.JournalEntry{Title: "Day one", Content: "hello", Date: testDay}},
	}
	for _, act := range steps {
		d = reduceOK(t, d, act, ids).Data
	}
	return d
}

func expense(accountID, amount string) model.Transaction {
	return model.Transaction{
		Description: "Coffee",
		Amount:      model.MustAmount(amount),
		Type:        model.Expense,
		Category:    "personal",
		AccountID:   accountID,
		Date:        testDay,
	}
}
