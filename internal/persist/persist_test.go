package persist

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/state"
)

var testNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// newTestAdapter returns an adapter over a fresh MemoryStore whose logs go
// to the returned buffer.
func newTestAdapter(t *testing.T) (*Adapter, *MemoryStore, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	mem := NewMemoryStore()
	a := NewAdapter(mem,
		WithNow(fixedNow),
		WithLogger(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)
	return a, mem, &logs
}

func populatedData() model.AppData {
	value := model.MustAmount("1500.00")
	taskDeadline := model.Day(2026, 10, 18)
	return model.AppData{
		Accounts: []model.Account{{ID: "acc-1", Name: "Cash", Icon: model.IconCash, InitialBalance: model.MustAmount("1000")}},
		Transactions: []model.Transaction{{
			ID: "tx-1", Description: "Café & croissant", Amount: model.MustAmount("5.50"),
			Type: model.Expense, Category: "personal", AccountID: "acc-1",
			Date: time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC),
		}},
		Projects: []model.Project{{
			ID: "p-1", Name: "Launch", Deadline: time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
			CategoryID: "cat-1", Value: &value,
			Tasks: []model.Task{{ID: "t-1", Text: "Ship", Status: model.StatusInProgress, Deadline: &taskDeadline}},
		}},
		Contacts:       []model.Contact{},
		Categories:     []model.Category{{ID: "cat-1", Name: "Work", Type: model.CategoryProject}},
		MoodLogs:       []model.MoodLog{},
		JournalEntries: []model.JournalEntry{},
	}
}

func TestAdapter_Load_NothingStoredGivesDefaults(t *testing.T) {
	a, _, logs := newTestAdapter(t)
	got := a.Load(context.Background())

	assert.Equal(t, model.DefaultData(testNow), got)
	assert.Contains(t, logs.String(), "no saved data")
}

func TestAdapter_Load_CorruptBlobGivesDefaults(t *testing.T) {
	a, mem, logs := newTestAdapter(t)
	require.NoError(t, mem.Put(context.Background(), DefaultKey, []byte(`{"accounts": [`)))

	got := a.Load(context.Background())
	assert.Equal(t, model.DefaultData(testNow), got)
	assert.Contains(t, logs.String(), "saved data is corrupt")
}

func TestAdapter_Load_ReadErrorGivesDefaults(t *testing.T) {
	var logs bytes.Buffer
	a := NewAdapter(failingGetStore{}, WithNow(fixedNow), WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	got := a.Load(context.Background())
	assert.Equal(t, model.DefaultData(testNow), got)
	assert.Contains(t, logs.String(), "failed to read saved data")
}

func TestAdapter_Load_PartialBlobIsNormalized(t *testing.T) {
	a, mem, _ := newTestAdapter(t)
	require.NoError(t, mem.Put(context.Background(), DefaultKey,
		[]byte(`{"accounts":[{"id":"a","name":"x","icon":"cash","initialBalance":3}],"projects":[{"id":"p","name":"y","deadline":"2026-10-20T00:00:00Z","isCompleted":false}]}`)))

	got := a.Load(context.Background())
	require.Len(t, got.Accounts, 1)
	assert.NotNil(t, got.Transactions)
	assert.NotNil(t, got.JournalEntries)
	require.Len(t, got.Projects, 1)
	assert.NotNil(t, got.Projects[0].Tasks)
}

// browserBlob is a document as the browser app wrote it: millisecond ISO
// timestamps, JS numbers, and task deadlines from a date input.
const browserBlob = `{
  "accounts": [{"id": "1729000000000", "name": "Wallet", "icon": "wallet", "initialBalance": 250}],
  "transactions": [{"id": "1729000000001", "description": "Groceries", "amount": 42.5, "type": "expense",
    "category": "personal", "accountId": "1729000000000", "date": "2026-10-14T18:20:00.000Z"}],
  "projects": [{"id": "proj-1", "name": "Plan vacation", "deadline": "2026-10-22T09:00:00.000Z", "isCompleted": false,
    "tasks": [
      {"id": "task-1", "text": "Book flights", "status": "todo", "deadline": "2026-10-15"},
      {"id": "task-2", "text": "Reserve hotel", "status": "todo"}
    ]}],
  "contacts": [],
  "categories": [],
  "moodLogs": [],
  "journalEntries": []
}`

func TestAdapter_Load_BrowserBlobKeepsDateOnlyDeadline(t *testing.T) {
	a, mem, logs := newTestAdapter(t)
	require.NoError(t, mem.Put(context.Background(), DefaultKey, []byte(browserBlob)))

	got := a.Load(context.Background())
	assert.NotContains(t, logs.String(), "level=WARN")
	require.Len(t, got.Accounts, 1)
	require.Len(t, got.Projects, 1)
	task, ok := got.Projects[0].FindTask("task-1")
	require.True(t, ok)
	require.NotNil(t, task.Deadline)
	assert.Equal(t, model.Day(2026, 10, 15), *task.Deadline)

	require.NoError(t, a.Save(context.Background(), got))
	saved, err := mem.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, string(saved), `"deadline":"2026-10-15"`)
}

func TestAdapter_ImportBrowserBlobBothModes(t *testing.T) {
	for _, mode := range []ImportMode{ImportStrict, ImportLenient} {
		t.Run(string(mode), func(t *testing.T) {
			a, _, _ := newTestAdapter(t)
			s := state.New(model.Empty())

			require.NoError(t, a.Import(context.Background(), strings.NewReader(browserBlob), s, mode))
			p, ok := s.Snapshot().FindProject("proj-1")
			require.True(t, ok)
			require.NotNil(t, p.Tasks[0].Deadline)
			assert.True(t, p.Tasks[0].Deadline.DayOnly())
			assert.Nil(t, p.Tasks[1].Deadline)
		})
	}
}

func TestAdapter_ExportImportZeroAmountsDeepEqual(t *testing.T) {
	a, _, _ := newTestAdapter(t)
	zero := model.AmountOf(decimal.Zero)
	s := state.New(model.Empty())
	_, err := s.Dispatch(state.SetData{Data: model.AppData{
		Accounts: []model.Account{
			{ID: "a-1", Name: "Empty", Icon: model.IconCash},
			{ID: "a-2", Name: "Zero", Icon: model.IconBank, InitialBalance: zero},
			{ID: "a-3", Name: "Round", Icon: model.IconBank, InitialBalance: model.AmountOf(decimal.New(5, 2))},
		},
		Projects: []model.Project{{ID: "p-1", Name: "Free", Deadline: testNow, Value: &zero, Tasks: []model.Task{}}},
	}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, s.Snapshot()))

	restored := state.New(model.Empty())
	require.NoError(t, a.Import(context.Background(), &buf, restored, ImportStrict))
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
}

func TestAdapter_SaveLoadRoundTrip(t *testing.T) {
	a, _, _ := newTestAdapter(t)
	ctx := context.Background()
	want := populatedData()

	require.NoError(t, a.Save(ctx, want))
	assert.Equal(t, want, a.Load(ctx))
}

func TestAdapter_CustomKey(t *testing.T) {
	mem := NewMemoryStore()
	a := NewAdapter(mem, WithKey("other"), WithNow(fixedNow))
	require.NoError(t, a.Save(context.Background(), model.Empty()))

	_, err := mem.Get(context.Background(), "other")
	assert.NoError(t, err)
	_, err = mem.Get(context.Background(), DefaultKey)
	assert.ErrorIs(t, err, ErrBlobNotFound)
	assert.Equal(t, "other", a.Key())
}

func TestAdapter_SavesEveryChangingDispatch(t *testing.T) {
	a, mem, _ := newTestAdapter(t)
	s := state.New(a.Load(context.Background()), state.WithIDGenerator(state.NewFixedGenerator("acc-1")))
	s.Subscribe(a)

	_, err := s.Dispatch(state.AddAccount{Account: model.Account{Name: "Cash", Icon: model.IconCash, InitialBalance: model.MustAmount("1000")}})
	require.NoError(t, err)
	_, err = s.Dispatch(state.DeleteAccount{ID: "missing"})
	require.NoError(t, err)

	assert.Equal(t, 1, mem.Puts(), "no-op dispatches are not saved")
	reloaded := a.Load(context.Background())
	assert.Equal(t, s.Snapshot(), reloaded)
}

func TestAdapter_WriteFailureIsLoggedAndStateKept(t *testing.T) {
	a, mem, logs := newTestAdapter(t)
	s := state.New(model.Empty(), state.WithIDGenerator(state.NewFixedGenerator("con-1")))
	s.Subscribe(a)
	mem.FailPuts(errors.New("disk full"))

	res, err := s.Dispatch(state.AddContact{Contact: model.Contact{Name: "Ada"}})
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Len(t, s.Snapshot().Contacts, 1)

	assert.Contains(t, logs.String(), "failed to save data")
	assert.Contains(t, logs.String(), "disk full")
	assert.Contains(t, logs.String(), "level=ERROR")
}

func TestExport_Golden(t *testing.T) {
	tests := []struct {
		name string
		data model.AppData
	}{
		{name: "export_default", data: model.DefaultData(testNow)},
		{name: "export_populated", data: populatedData()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Export(&buf, tt.data))

			g := goldie.New(t,
				goldie.WithFixtureDir("testdata/golden"),
				goldie.WithNameSuffix(".golden"),
			)
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestExport_NormalizesNilCollections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, model.AppData{}))
	assert.NotContains(t, buf.String(), "null")
}

func TestAdapter_BackupFileName(t *testing.T) {
	a := NewAdapter(NewMemoryStore())
	assert.Equal(t, "zenith-backup-2026-10-15.json", a.BackupFileName(testNow))

	a = NewAdapter(NewMemoryStore(), WithAppName("life"))
	assert.Equal(t, "life-backup-2026-01-02.json", a.BackupFileName(time.Date(2026, 1, 2, 23, 0, 0, 0, time.UTC)))
}

func TestAdapter_ExportFileImportFileRoundTrip(t *testing.T) {
	a, _, _ := newTestAdapter(t)
	dir := filepath.Join(t.TempDir(), "backups")
	want := populatedData()

	b, err := a.ExportFile(dir, want)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "zenith-backup-2026-10-15.json"), b.Path)
	assert.Len(t, b.Digest, 64)
	info, err := os.Stat(b.Path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), b.Size)
	require.NoError(t, VerifyBackup(b.Path, b.Digest))

	s := state.New(model.DefaultData(testNow))
	require.NoError(t, a.ImportFile(context.Background(), b.Path, s, ImportStrict))
	assert.Equal(t, want, s.Snapshot())
	assert.Equal(t, int64(1), s.Revision())
}

func TestAdapter_ImportLenientAcceptsPartialDocument(t *testing.T) {
	a, _, _ := newTestAdapter(t)
	s := state.New(model.DefaultData(testNow))

	err := a.Import(context.Background(), strings.NewReader(`{"contacts":[{"id":"c","name":"Ada","nickname":"A"}]}`), s, ImportLenient)
	require.NoError(t, err)

	got := s.Snapshot()
	require.Len(t, got.Contacts, 1)
	assert.Empty(t, got.Projects)
	assert.NotNil(t, got.Projects)
}

func TestVerifyBackup_DetectsChange(t *testing.T) {
	a, _, _ := newTestAdapter(t)
	b, err := a.ExportFile(t.TempDir(), populatedData())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(b.Path, []byte("{}"), 0o644))
	err = VerifyBackup(b.Path, b.Digest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
}

func TestAdapter_ImportLenientAcceptsComments(t *testing.T) {
	a, _, _ := newTestAdapter(t)
	s := state.New(model.Empty())
	raw := `{
  // edited by hand
  "accounts": [
    {"id": "a", "name": "Cash", "icon": "cash", "initialBalance": 10},
  ],
}`
	require.NoError(t, a.Import(context.Background(), strings.NewReader(raw), s, ImportLenient))
	assert.Len(t, s.Snapshot().Accounts, 1)

	err := a.Import(context.Background(), strings.NewReader(raw), state.New(model.Empty()), ImportStrict)
	assert.True(t, IsImportError(err, ImportParse))
}

func TestAdapter_ImportRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		mode ImportMode
		kind ImportErrorKind
	}{
		{name: "not json", raw: `{"accounts": [`, mode: ImportLenient, kind: ImportParse},
		{name: "not an object", raw: `[1, 2]`, mode: ImportLenient, kind: ImportParse},
		{name: "wrong types", raw: `{"accounts": "many"}`, mode: ImportLenient, kind: ImportParse},
		{name: "unknown field", raw: `{"contacts":[{"id":"c","name":"Ada","nickname":"A"}]}`, mode: ImportStrict, kind: ImportSchema},
		{name: "bad enum", raw: `{"accounts":[{"id":"a","name":"x","icon":"piggy","initialBalance":0}]}`, mode: ImportStrict, kind: ImportSchema},
		{
			name: "dangling account",
			raw:  `{"transactions":[{"id":"t","description":"x","amount":1,"type":"expense","category":"bills","accountId":"acc-404","date":"2026-10-15T00:00:00Z"}]}`,
			mode: ImportStrict,
			kind: ImportIntegrity,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestAdapter(t)
			before := model.DefaultData(testNow)
			s := state.New(before)

			err := a.Import(context.Background(), strings.NewReader(tt.raw), s, tt.mode)
			require.Error(t, err)
			assert.True(t, IsImportError(err, tt.kind), "got %v", err)

			assert.Equal(t, before, s.Snapshot())
			assert.Equal(t, int64(0), s.Revision())
		})
	}
}

func TestAdapter_ImportIntegrityListsViolations(t *testing.T) {
	raw := `{"transactions":[{"id":"t","description":"x","amount":1,"type":"expense","category":"bills","accountId":"acc-404","date":"2026-10-15T00:00:00Z"}]}`
	_, err := Decode([]byte(raw), ImportStrict)

	var ie *ImportError
	require.ErrorAs(t, err, &ie)
	require.Len(t, ie.Violations, 1)
	assert.Equal(t, "accountId", ie.Violations[0].Field)
}

func TestAdapter_ImportFileMissing(t *testing.T) {
	a, _, _ := newTestAdapter(t)
	s := state.New(model.Empty())

	err := a.ImportFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"), s, ImportStrict)
	require.Error(t, err)
	assert.True(t, IsImportError(err, ImportRead))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAdapter_ImportCancelledContext(t *testing.T) {
	a, _, _ := newTestAdapter(t)
	s := state.New(model.Empty())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, populatedData()))
	err := a.Import(ctx, &buf, s, ImportStrict)
	require.Error(t, err)
	assert.Equal(t, int64(0), s.Revision())
}

func TestParseImportMode(t *testing.T) {
	m, err := ParseImportMode("")
	require.NoError(t, err)
	assert.Equal(t, ImportStrict, m)

	m, err = ParseImportMode("lenient")
	require.NoError(t, err)
	assert.Equal(t, ImportLenient, m)

	_, err = ParseImportMode("yolo")
	assert.Error(t, err)
}

func TestImportError_Message(t *testing.T) {
	err := &ImportError{Kind: ImportSchema, Source: "b.json", Err: errors.New("bad icon")}
	assert.Equal(t, "import b.json: SCHEMA: bad icon", err.Error())
}

type failingGetStore struct{}

func (failingGetStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("permission denied")
}

func (failingGetStore) Put(context.Context, string, []byte) error { return nil }
