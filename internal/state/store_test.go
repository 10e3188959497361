package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zenith/internal/model"
)

func newTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	return New(model.Empty(), WithIDGenerator(NewFixedGenerator(ids...)))
}

func TestStore_New_NormalizesInitial(t *testing.T) {
	s := New(model.AppData{})
	assert.NotNil(t, s.Snapshot().Accounts)
	assert.Equal(t, int64(0), s.Revision())
}

func TestStore_Dispatch_ReturnsIDAndRevision(t *testing.T) {
	s := newTestStore(t, "acc-1")
	res, err := s.Dispatch(AddAccount{Account: model.Account{Name: "Cash", Icon: model.IconCash, InitialBalance: model.MustAmount("1000")}})
	require.NoError(t, err)

	assert.Equal(t, "acc-1", res.ID)
	assert.True(t, res.Changed)
	assert.Equal(t, int64(1), res.Revision)
	assert.Equal(t, int64(1), s.Revision())
	assert.Len(t, s.Snapshot().Accounts, 1)
}

func TestStore_Dispatch_NoopKeepsRevisionAndSkipsObservers(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	s.Subscribe(ObserverFunc(func(int64, model.AppData) { calls++ }))

	res, err := s.Dispatch(DeleteAccount{ID: "missing"})
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, int64(0), res.Revision)
	assert.Equal(t, 0, calls)
}

func TestStore_Dispatch_RefusesInvalidPayload(t *testing.T) {
	s := newTestStore(t, "unused")
	before := s.Snapshot()

	tests := []Action{
		AddAccount{Account: model.Account{Name: "x", Icon: "piggy"}},
		AddTransaction{Transaction: model.Transaction{Type: model.Expense, Category: "personal", Amount: model.MustAmount("-1")}},
		AddTransaction{Transaction: model.Transaction{Type: "transfer", Category: "personal"}},
		AddTransaction{Transaction: model.Transaction{Type: model.Income, Category: "bills"}},
		AddCategory{Category: model.Category{Name: "x", Type: "both"}},
		UpdateTaskStatus{ProjectID: "p", TaskID: "t", Status: "blocked"},
		AddTask{ProjectID: "p", Task: model.Task{Text: "no status"}},
		AddMoodLog{Log: model.MoodLog{Mood: "meh"}},
		AddProject{Project: model.Project{Name: "x", Tasks: []model.Task{
			{ID: "t-1", Status: model.StatusTodo}, {ID: "t-1", Status: model.StatusDone},
		}}},
		UpdateProject{Project: model.Project{ID: "p", Tasks: []model.Task{
			{ID: "t-1", Status: model.StatusTodo}, {Status: model.StatusTodo}, {ID: "t-1", Status: model.StatusTodo},
		}}},
	}
	for _, act := range tests {
		t.Run(act.Name(), func(t *testing.T) {
			_, err := s.Dispatch(act)
			require.Error(t, err)
			assert.True(t, IsInvalidAction(err))
		})
	}
	_, err := s.Dispatch(nil)
	assert.Error(t, err)

	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, int64(0), s.Revision())
}

func TestStore_Dispatch_DuplicateTaskIDNamesField(t *testing.T) {
	s := newTestStore(t, "p-1", "t-9")
	_, err := s.Dispatch(AddProject{Project: model.Project{Name: "x", Tasks: []model.Task{
		{Status: model.StatusTodo}, {ID: "t-1", Status: model.StatusTodo}, {ID: "t-1", Status: model.StatusTodo},
	}}})

	var ae *ActionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ErrCodeInvalidAction, ae.Code)
	assert.Equal(t, "tasks[2].id", ae.Field)

	// Tasks without ids are not duplicates of each other.
	res, err := s.Dispatch(AddProject{Project: model.Project{Name: "y", Tasks: []model.Task{
		{Status: model.StatusTodo}, {ID: "t-1", Status: model.StatusTodo},
	}}})
	require.NoError(t, err)
	assert.Equal(t, "p-1", res.ID)
}

func TestStore_Observers_CalledInOrderWithRevision(t *testing.T) {
	s := newTestStore(t, "c-1", "c-2")
	var got []string
	s.Subscribe(ObserverFunc(func(rev int64, d model.AppData) {
		got = append(got, "first")
		assert.Equal(t, rev, s.Revision())
	}))
	cancel := s.Subscribe(ObserverFunc(func(rev int64, d model.AppData) {
		got = append(got, "second")
	}))

	_, err := s.Dispatch(AddContact{Contact: model.Contact{Name: "Ada"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)

	cancel()
	got = nil
	_, err = s.Dispatch(AddContact{Contact: model.Contact{Name: "Grace"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, got)
}

func TestStore_UndoRedo(t *testing.T) {
	s := newTestStore(t, "a-1", "a-2", "a-3")
	add := func(name string) {
		_, err := s.Dispatch(AddAccount{Account: model.Account{Name: name, Icon: model.IconWallet}})
		require.NoError(t, err)
	}
	add("one")
	add("two")

	require.True(t, s.Undo())
	assert.Len(t, s.Snapshot().Accounts, 1)
	require.True(t, s.Undo())
	assert.Empty(t, s.Snapshot().Accounts)
	assert.False(t, s.Undo())

	require.True(t, s.Redo())
	assert.Len(t, s.Snapshot().Accounts, 1)

	// A new dispatch clears redo.
	add("three")
	assert.False(t, s.Redo())
	names := []string{}
	for _, a := range s.Snapshot().Accounts {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"one", "three"}, names)

	undo, redo := s.HistoryDepth()
	assert.Equal(t, 2, undo)
	assert.Equal(t, 0, redo)
}

func TestStore_UndoNotifiesObservers(t *testing.T) {
	s := newTestStore(t, "a-1")
	var revs []int64
	s.Subscribe(ObserverFunc(func(rev int64, d model.AppData) { revs = append(revs, rev) }))

	_, err := s.Dispatch(AddAccount{Account: model.Account{Name: "x", Icon: model.IconWallet}})
	require.NoError(t, err)
	require.True(t, s.Undo())
	require.True(t, s.Redo())

	assert.Equal(t, []int64{1, 2, 3}, revs)
}

func TestStore_HistoryLimit(t *testing.T) {
	s := New(model.Empty(), WithIDGenerator(NewSequenceGenerator("a")), WithHistoryLimit(2))
	for i := 0; i < 5; i++ {
		_, err := s.Dispatch(AddAccount{Account: model.Account{Name: "x", Icon: model.IconWallet}})
		require.NoError(t, err)
	}
	assert.True(t, s.Undo())
	assert.True(t, s.Undo())
	assert.False(t, s.Undo())
	assert.Len(t, s.Snapshot().Accounts, 3)
}

func TestStore_HistoryDisabled(t *testing.T) {
	s := New(model.Empty(), WithIDGenerator(NewSequenceGenerator("a")), WithHistoryLimit(0))
	_, err := s.Dispatch(AddAccount{Account: model.Account{Name: "x", Icon: model.IconWallet}})
	require.NoError(t, err)
	assert.False(t, s.Undo())
}

func TestStore_SnapshotsAreImmutable(t *testing.T) {
	s := newTestStore(t, "a-1", "a-2")
	_, err := s.Dispatch(AddAccount{Account: model.Account{Name: "one", Icon: model.IconWallet}})
	require.NoError(t, err)
	old := s.Snapshot()

	_, err = s.Dispatch(AddAccount{Account: model.Account{Name: "two", Icon: model.IconWallet}})
	require.NoError(t, err)

	assert.Len(t, old.Accounts, 1)
	assert.Len(t, s.Snapshot().Accounts, 2)
}

func TestStore_SnapshotsDoNotAliasPayloads(t *testing.T) {
	s := newTestStore(t)

	accounts := []model.Account{{ID: "a-1", Name: "Loaded", Icon: model.IconBank}}
	deadline := model.Day(2026, 10, 20)
	tasks := []model.Task{{ID: "t-1", Text: "draft", Status: model.StatusTodo, Deadline: &deadline}}
	_, err := s.Dispatch(SetData{Data: model.AppData{
		Accounts: accounts,
		Projects: []model.Project{{ID: "p-1", Name: "Site", Deadline: testDay, Tasks: tasks}},
	}})
	require.NoError(t, err)

	accounts[0].Name = "mutated"
	tasks[0].Text = "mutated"
	*tasks[0].Deadline = model.Day(2030, 1, 1)

	snap := s.Snapshot()
	assert.Equal(t, "Loaded", snap.Accounts[0].Name)
	assert.Equal(t, "draft", snap.Projects[0].Tasks[0].Text)
	assert.Equal(t, model.Day(2026, 10, 20), *snap.Projects[0].Tasks[0].Deadline)

	// UpdateProject keeps its own copy of the task list.
	value := model.NewAmount(900)
	updated := []model.Task{{ID: "t-1", Text: "final", Status: model.StatusDone}}
	_, err = s.Dispatch(UpdateProject{Project: model.Project{ID: "p-1", Name: "Site", Deadline: testDay, Value: &value, Tasks: updated}})
	require.NoError(t, err)

	updated[0] = model.Task{ID: "t-9", Text: "mutated", Status: model.StatusTodo}
	value = model.NewAmount(1)

	p, ok := s.Snapshot().FindProject("p-1")
	require.True(t, ok)
	require.Len(t, p.Tasks, 1)
	assert.Equal(t, "final", p.Tasks[0].Text)
	assert.Equal(t, model.NewAmount(900), *p.Value)

	// UpdateTask does not share the deadline pointer.
	due := model.Day(2026, 11, 1)
	_, err = s.Dispatch(UpdateTask{ProjectID: "p-1", Task: model.Task{ID: "t-1", Text: "final", Status: model.StatusDone, Deadline: &due}})
	require.NoError(t, err)
	due = model.Day(1999, 1, 1)

	p, _ = s.Snapshot().FindProject("p-1")
	assert.Equal(t, model.Day(2026, 11, 1), *p.Tasks[0].Deadline)
}

func TestStore_ConcurrentReadersDuringWrites(t *testing.T) {
	s := New(model.Empty(), WithIDGenerator(NewSequenceGenerator("c")))

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				d := s.Snapshot()
				_ = len(d.Contacts)
				_ = s.Revision()
			}
		}()
	}
	for i := 0; i < 50; i++ {
		_, err := s.Dispatch(AddContact{Contact: model.Contact{Name: "n"}})
		require.NoError(t, err)
	}
	wg.Wait()

	assert.Len(t, s.Snapshot().Contacts, 50)
	assert.Equal(t, int64(50), s.Revision())
}
