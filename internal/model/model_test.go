package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_MarshalJSON_BareNumberKeepsScale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1000", "1000"},
		{"5.50", "5.50"},
		{"-12.5", "-12.5"},
		{"0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			data, err := json.Marshal(MustAmount(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestAmount_UnmarshalJSON_AcceptsNumberAndString(t *testing.T) {
	var a, b Amount
	require.NoError(t, json.Unmarshal([]byte(`995.25`), &a))
	require.NoError(t, json.Unmarshal([]byte(`"995.25"`), &b))
	assert.True(t, a.Equal(b.Decimal))
	assert.Equal(t, "995.25", a.String())
}

func TestAmount_UnmarshalJSON_RejectsGarbage(t *testing.T) {
	var a Amount
	err := json.Unmarshal([]byte(`"lots"`), &a)
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("-40.10")
	require.NoError(t, err)
	assert.True(t, a.IsNegative())

	_, err = ParseAmount("ten")
	assert.Error(t, err)
}

func TestEnums_Valid(t *testing.T) {
	assert.True(t, IconCash.Valid())
	assert.False(t, AccountIcon("piggy").Valid())
	assert.True(t, Expense.Valid())
	assert.False(t, TransactionType("transfer").Valid())
	assert.True(t, StatusInProgress.Valid())
	assert.False(t, TaskStatus("blocked").Valid())
	assert.True(t, CategoryContact.Valid())
	assert.False(t, CategoryType("both").Valid())
	assert.True(t, MoodAnxious.Valid())
	assert.False(t, Mood("meh").Valid())
}

func TestValidCategory_DependsOnType(t *testing.T) {
	assert.True(t, ValidCategory(Income, "salary"))
	assert.False(t, ValidCategory(Income, "bills"))
	assert.True(t, ValidCategory(Expense, "bills"))
	assert.True(t, ValidCategory(Expense, "business"))
	assert.True(t, ValidCategory(Income, "business"))
	assert.False(t, ValidCategory(TransactionType("x"), "salary"))
}

func TestDefaultData_SeedProject(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	d := DefaultData(now)

	require.Len(t, d.Projects, 1)
	p := d.Projects[0]
	assert.Equal(t, SeedProjectID, p.ID)
	assert.Equal(t, "Plan vacation", p.Name)
	assert.Equal(t, now.Add(7*24*time.Hour), p.Deadline)
	assert.False(t, p.IsCompleted)
	require.Len(t, p.Tasks, 2)
	assert.Equal(t, StatusTodo, p.Tasks[0].Status)

	assert.NotNil(t, d.Accounts)
	assert.Empty(t, d.Accounts)
	assert.NotNil(t, d.JournalEntries)
}

func TestNormalize_FillsNilCollections(t *testing.T) {
	in := AppData{Projects: []Project{{ID: "p1"}, {ID: "p2", Tasks: []Task{{ID: "t"}}}}}
	out := in.Normalize()

	assert.NotNil(t, out.Accounts)
	assert.NotNil(t, out.Transactions)
	assert.NotNil(t, out.Contacts)
	assert.NotNil(t, out.Categories)
	assert.NotNil(t, out.MoodLogs)
	assert.NotNil(t, out.JournalEntries)
	assert.NotNil(t, out.Projects[0].Tasks)
	assert.Len(t, out.Projects[1].Tasks, 1)

	// Input untouched.
	assert.Nil(t, in.Projects[0].Tasks)
	assert.Nil(t, in.Accounts)
}

func TestNormalize_EncodesEmptyArrays(t *testing.T) {
	data, err := json.Marshal(Empty())
	require.NoError(t, err)
	assert.JSONEq(t, `{"accounts":[],"transactions":[],"projects":[],"contacts":[],"categories":[],"moodLogs":[],"journalEntries":[]}`, string(data))
}

func TestProject_OptionalFieldsOmitted(t *testing.T) {
	p := Project{ID: "p", Name: "n", Deadline: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), Tasks: []Task{}}
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p","name":"n","deadline":"2026-01-02T00:00:00Z","isCompleted":false,"tasks":[]}`, string(data))
}

func TestLookups(t *testing.T) {
	d := DefaultData(time.Now())
	p, ok := d.FindProject(SeedProjectID)
	require.True(t, ok)
	_, ok = p.FindTask("task-2")
	assert.True(t, ok)
	_, ok = p.FindTask("task-9")
	assert.False(t, ok)
	_, ok = d.FindAccount("nope")
	assert.False(t, ok)
}

func TestAmount_RoundTripIsDeepEqual(t *testing.T) {
	tests := []struct {
		name string
		in   Amount
	}{
		{"zero value", Amount{}},
		{"decimal zero", AmountOf(decimal.Zero)},
		{"positive exponent", Amount{decimal.New(12, 3)}},
		{"scaled", MustAmount("5.50")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			require.NoError(t, err)
			var back Amount
			require.NoError(t, json.Unmarshal(data, &back))

			want := AppData{Accounts: []Account{{ID: "a", InitialBalance: tt.in}}}.Normalize()
			got := AppData{Accounts: []Account{{ID: "a", InitialBalance: back}}}.Normalize()
			assert.Equal(t, want, got)
		})
	}
}

func TestAmount_UnmarshalJSON_ExponentNotation(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`1e3`), &a))
	assert.Equal(t, NewAmount(1000), a)
}

func TestDate_KeepsItsForm(t *testing.T) {
	tests := []struct {
		in      string
		dayOnly bool
	}{
		{`"2026-10-20"`, true},
		{`"2026-10-20T15:30:00Z"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tt.in), &d))
			assert.Equal(t, tt.dayOnly, d.DayOnly())

			out, err := json.Marshal(d)
			require.NoError(t, err)
			assert.Equal(t, tt.in, string(out))
		})
	}
}

func TestDate_UnmarshalJSON_RejectsOtherLayouts(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"20/10/2026"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20261020`), &d))
}

func TestDate_OnDay(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	day := Day(2026, 10, 20)

	// A bare day is the same calendar day in every zone.
	assert.True(t, day.OnDay(time.Date(2026, 10, 20, 1, 0, 0, 0, tokyo)))
	assert.True(t, day.OnDay(time.Date(2026, 10, 20, 23, 0, 0, 0, time.UTC)))
	assert.False(t, day.OnDay(time.Date(2026, 10, 21, 0, 30, 0, 0, tokyo)))

	// A timestamp is compared in the reference's zone.
	stamp := At(time.Date(2026, 10, 20, 20, 0, 0, 0, time.UTC))
	assert.True(t, stamp.OnDay(time.Date(2026, 10, 21, 9, 0, 0, 0, tokyo)))
	assert.False(t, stamp.OnDay(time.Date(2026, 10, 20, 9, 0, 0, 0, tokyo)))
}

func TestNormalize_SharesNothingWithInput(t *testing.T) {
	deadline := Day(2026, 10, 20)
	value := NewAmount(100)
	in := AppData{
		Accounts: []Account{{ID: "a"}},
		Projects: []Project{{ID: "p", Value: &value, Tasks: []Task{{ID: "t", Deadline: &deadline}}}},
	}
	out := in.Normalize()

	in.Accounts[0].Name = "changed"
	in.Projects[0].Tasks[0].Text = "changed"
	*in.Projects[0].Tasks[0].Deadline = Day(2030, 1, 1)
	*in.Projects[0].Value = NewAmount(5)

	assert.Empty(t, out.Accounts[0].Name)
	assert.Empty(t, out.Projects[0].Tasks[0].Text)
	assert.Equal(t, Day(2026, 10, 20), *out.Projects[0].Tasks[0].Deadline)
	assert.True(t, out.Projects[0].Value.Equal(decimal.NewFromInt(100)))
}
