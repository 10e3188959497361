package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/state"
)

var now = time.Date(2026, 10, 15, 14, 0, 0, 0, time.UTC)

func day(offset int, hour int) time.Time {
	return time.Date(2026, 10, 15+offset, hour, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// stamp is a timestamp task deadline offset days from now's day.
func stamp(offset, hour int) *model.Date { return ptr(model.At(day(offset, hour))) }

func dispatchAll(t *testing.T, s *state.Store, acts ...state.Action) {
	t.Helper()
	for _, act := range acts {
		_, err := s.Dispatch(act)
		require.NoError(t, err, act.Name())
	}
}

func TestBalance_ExpenseScenario(t *testing.T) {
	s := state.New(model.Empty(), state.WithIDGenerator(state.NewFixedGenerator("acc-1", "tx-1")))
	dispatchAll(t, s,
		state.AddAccount{Account: model.Account{Name: "Cash", Icon: model.IconCash, InitialBalance: model.MustAmount("1000")}},
		state.AddTransaction{Transaction: model.Transaction{
			Description: "Coffee", Amount: model.MustAmount("5"), Type: model.Expense,
			Category: "personal", AccountID: "acc-1", Date: now,
		}},
	)

	assert.Equal(t, "995", Balance(s.Snapshot(), "acc-1").String())
}

func TestTotals(t *testing.T) {
	data := model.AppData{
		Accounts: []model.Account{
			{ID: "a", InitialBalance: model.MustAmount("100")},
			{ID: "b", InitialBalance: model.MustAmount("-20.50")},
		},
		Transactions: []model.Transaction{
			{ID: "1", AccountID: "a", Type: model.Income, Amount: model.MustAmount("50")},
			{ID: "2", AccountID: "a", Type: model.Expense, Amount: model.MustAmount("5.25")},
			{ID: "3", AccountID: "b", Type: model.Expense, Amount: model.MustAmount("0.10")},
		},
	}

	a := Totals(data, "a")
	assert.Equal(t, "144.75", a.Balance.String())
	assert.Equal(t, "50", a.Income.String())
	assert.Equal(t, "5.25", a.Expenses.String())

	all := Totals(data, "")
	assert.Equal(t, "124.15", all.Balance.String())
	assert.Equal(t, "5.35", all.Expenses.String())

	assert.Equal(t, "0", Balance(data, "missing").String())
}

func TestBalance_DecimalIsExact(t *testing.T) {
	data := model.AppData{
		Accounts: []model.Account{{ID: "a", InitialBalance: model.MustAmount("0.1")}},
		Transactions: []model.Transaction{
			{ID: "1", AccountID: "a", Type: model.Income, Amount: model.MustAmount("0.2")},
		},
	}
	assert.Equal(t, "0.3", Balance(data, "a").String())
}

func TestBalances(t *testing.T) {
	data := model.AppData{
		Accounts: []model.Account{
			{ID: "a", Name: "Cash", InitialBalance: model.MustAmount("10")},
			{ID: "b", Name: "Bank", InitialBalance: model.MustAmount("20")},
		},
		Transactions: []model.Transaction{{ID: "1", AccountID: "b", Type: model.Expense, Amount: model.MustAmount("5")}},
	}
	got := Balances(data)
	require.Len(t, got, 2)
	assert.Equal(t, "Cash", got[0].Account.Name)
	assert.Equal(t, "10", got[0].Balance.String())
	assert.Equal(t, "15", got[1].Balance.String())
}

func TestRecentTransactions(t *testing.T) {
	data := model.AppData{Transactions: []model.Transaction{
		{ID: "old", AccountID: "a", Date: day(-3, 9)},
		{ID: "new", AccountID: "a", Date: day(0, 9)},
		{ID: "other", AccountID: "b", Date: day(-1, 9)},
		{ID: "mid", AccountID: "a", Date: day(-1, 9)},
	}}

	ids := func(txs []model.Transaction) []string {
		out := []string{}
		for _, tx := range txs {
			out = append(out, tx.ID)
		}
		return out
	}
	assert.Equal(t, []string{"new", "other", "mid", "old"}, ids(RecentTransactions(data, "", 0)))
	assert.Equal(t, []string{"new", "mid"}, ids(RecentTransactions(data, "a", 2)))
	assert.Equal(t, []string{"other", "mid"}, ids(TransactionsBetween(data, day(-2, 0), day(-1, 0))))
	assert.Empty(t, TransactionsBetween(data, day(1, 0), day(5, 0)))
}

func TestProgress(t *testing.T) {
	p := model.Project{Tasks: []model.Task{
		{ID: "1", Status: model.StatusDone},
		{ID: "2", Status: model.StatusTodo},
		{ID: "3", Status: model.StatusInProgress},
	}}
	pr := Progress(p)
	assert.Equal(t, 1, pr.Done)
	assert.Equal(t, 3, pr.Total)
	assert.Equal(t, 33, pr.Percent())

	empty := Progress(model.Project{})
	assert.Equal(t, 0.0, empty.Ratio())
	assert.Equal(t, 0, empty.Percent())
}

func TestProgress_LaunchScenario(t *testing.T) {
	s := state.New(model.Empty(), state.WithIDGenerator(state.NewFixedGenerator("p1", "t1")))
	dispatchAll(t, s,
		state.AddProject{Project: model.Project{Name: "Launch", Deadline: day(7, 0), Tasks: []model.Task{}}},
		state.AddTask{ProjectID: "p1", Task: model.Task{Text: "Write spec", Status: model.StatusTodo}},
		state.UpdateTaskStatus{ProjectID: "p1", TaskID: "t1", Status: model.StatusDone},
	)

	p, ok := s.Snapshot().FindProject("p1")
	require.True(t, ok)
	pr := Progress(p)
	assert.Equal(t, ProjectProgress{Done: 1, Total: 1}, pr)
	assert.Equal(t, 1.0, pr.Ratio())
	assert.Equal(t, 100, pr.Percent())
}

func TestTasksByStatus(t *testing.T) {
	p := model.Project{Tasks: []model.Task{
		{ID: "1", Status: model.StatusTodo},
		{ID: "2", Status: model.StatusDone},
		{ID: "3", Status: model.StatusTodo},
	}}
	cols := TasksByStatus(p)
	assert.Len(t, cols, 3)
	assert.Len(t, cols[model.StatusTodo], 2)
	assert.Equal(t, "3", cols[model.StatusTodo][1].ID)
	assert.Empty(t, cols[model.StatusInProgress])
	assert.NotNil(t, cols[model.StatusInProgress])
}

func TestUpcomingDeadlines(t *testing.T) {
	data := model.AppData{Projects: []model.Project{
		{ID: "late", Deadline: day(5, 0)},
		{ID: "earlier-today", Deadline: day(0, 1)},
		{ID: "yesterday", Deadline: day(-1, 23)},
		{ID: "done", Deadline: day(1, 0), IsCompleted: true},
		{ID: "soon", Deadline: day(1, 0)},
		{ID: "later", Deadline: day(3, 0)},
	}}

	got := UpcomingDeadlines(data, now, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "earlier-today", got[0].ID)
	assert.Equal(t, "soon", got[1].ID)
	assert.Equal(t, "later", got[2].ID)

	assert.Len(t, UpcomingDeadlines(data, now, 0), 4)
}

func TestTodaysTasks(t *testing.T) {
	data := model.AppData{Projects: []model.Project{
		{ID: "p1", Name: "Launch", Tasks: []model.Task{
			{ID: "t1", Text: "today", Status: model.StatusTodo, Deadline: stamp(0, 23)},
			{ID: "t2", Text: "done today", Status: model.StatusDone, Deadline: stamp(0, 9)},
			{ID: "t3", Text: "tomorrow", Status: model.StatusTodo, Deadline: stamp(1, 0)},
			{ID: "t4", Text: "no deadline", Status: model.StatusTodo},
		}},
		{ID: "p2", Name: "Move", Tasks: []model.Task{
			{ID: "t5", Text: "pack", Status: model.StatusInProgress, Deadline: stamp(0, 0)},
		}},
	}}

	got := TodaysTasks(data, now)
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].Task.ID)
	assert.Equal(t, "Launch", got[0].ProjectName)
	assert.Equal(t, "p2", got[1].ProjectID)
}

func TestCalendarEvents(t *testing.T) {
	data := model.AppData{Projects: []model.Project{
		{ID: "p1", Name: "Launch", Deadline: day(3, 12), Tasks: []model.Task{
			{ID: "t1", Text: "Write", Status: model.StatusTodo, Deadline: stamp(1, 9)},
			{ID: "t2", Text: "Done", Status: model.StatusDone, Deadline: stamp(2, 9)},
			{ID: "t3", Text: "Free", Status: model.StatusTodo},
		}},
		{ID: "p2", Name: "Finished", Deadline: day(2, 0), IsCompleted: true, Tasks: []model.Task{
			{ID: "t4", Text: "Left over", Status: model.StatusInProgress, Deadline: stamp(2, 10)},
		}},
		{ID: "p3", Name: "Far", Deadline: day(30, 0)},
	}}

	got := CalendarEvents(data, day(0, 0), day(3, 0))
	require.Len(t, got, 3)
	assert.Equal(t, Event{Date: day(1, 9), Kind: EventTask, Title: "Write", ProjectID: "p1", TaskID: "t1"}, got[0])
	assert.Equal(t, "t4", got[1].TaskID)
	assert.Equal(t, EventProject, got[2].Kind)
	assert.Equal(t, "p1", got[2].ProjectID)
}

func TestTodaysTasks_DateOnlyMatchesLocalCalendarDay(t *testing.T) {
	honolulu := time.FixedZone("HST", -10*60*60)
	// 2026-10-15 08:00 UTC is still the evening of the 14th in Honolulu.
	local := time.Date(2026, 10, 14, 22, 0, 0, 0, honolulu)

	data := model.AppData{Projects: []model.Project{
		{ID: "p1", Name: "Launch", Tasks: []model.Task{
			{ID: "t1", Text: "due 14th", Status: model.StatusTodo, Deadline: ptr(model.Day(2026, 10, 14))},
			{ID: "t2", Text: "due 15th", Status: model.StatusTodo, Deadline: ptr(model.Day(2026, 10, 15))},
		}},
	}}

	got := TodaysTasks(data, local)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].Task.ID)

	got = TodaysTasks(data, now)
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].Task.ID)
}

func TestCalendarEvents_DateOnlyDeadlineAtLocalMidnight(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	from := time.Date(2026, 10, 20, 0, 0, 0, 0, tokyo)

	data := model.AppData{Projects: []model.Project{
		{ID: "p1", Name: "Launch", Deadline: day(60, 0), Tasks: []model.Task{
			{ID: "t1", Text: "Ship", Status: model.StatusTodo, Deadline: ptr(model.Day(2026, 10, 20))},
			{ID: "t2", Text: "Later", Status: model.StatusTodo, Deadline: ptr(model.Day(2026, 10, 21))},
		}},
	}}

	got := CalendarEvents(data, from, from)
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].TaskID)
	assert.Equal(t, from, got[0].Date)
}

func TestMoodForDay(t *testing.T) {
	data := model.AppData{MoodLogs: []model.MoodLog{
		{ID: "m1", Mood: model.MoodSad, Date: day(-1, 22)},
		{ID: "m2", Mood: model.MoodHappy, Date: day(0, 8)},
		{ID: "m3", Mood: model.MoodAnxious, Date: day(0, 20)},
	}}

	m, ok := MoodForDay(data, now)
	require.True(t, ok)
	assert.Equal(t, "m2", m.ID)

	_, ok = MoodForDay(data, day(1, 0))
	assert.False(t, ok)
}

func TestClientValue(t *testing.T) {
	data := model.AppData{
		Contacts: []model.Contact{{ID: "c1", Name: "Ada"}},
		Projects: []model.Project{
			{ID: "p1", ClientID: "c1", Value: ptr(model.MustAmount("1500.00"))},
			{ID: "p2", ClientID: "c1"},
			{ID: "p3", ClientID: "c1", Value: ptr(model.MustAmount("250.50"))},
			{ID: "p4", ClientID: "c2", Value: ptr(model.MustAmount("99"))},
		},
	}
	assert.Equal(t, "1750.5", ClientValue(data, "c1").String())
	assert.Len(t, ClientProjects(data, "c1"), 3)
	assert.Equal(t, "0", ClientValue(data, "nobody").String())
	assert.Empty(t, ClientProjects(data, ""))

	name, ok := ClientName(data, data.Projects[0])
	assert.True(t, ok)
	assert.Equal(t, "Ada", name)
	_, ok = ClientName(data, data.Projects[3])
	assert.False(t, ok, "dangling client resolves to none")
}

func TestInCategory(t *testing.T) {
	data := model.AppData{
		Projects: []model.Project{{ID: "p1", CategoryID: "work"}, {ID: "p2"}},
		Contacts: []model.Contact{{ID: "c1"}, {ID: "c2", CategoryID: "vip"}},
	}
	assert.Len(t, ProjectsInCategory(data, ""), 2)
	assert.Len(t, ProjectsInCategory(data, "work"), 1)
	assert.Empty(t, ProjectsInCategory(data, "none"))

	got := ContactsInCategory(data, "vip")
	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].ID)
	assert.Len(t, ContactsInCategory(data, ""), 2)
}
