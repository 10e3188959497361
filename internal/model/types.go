package model

import "time"

// AccountIcon selects how an account is displayed.
type AccountIcon string

const (
	IconWallet AccountIcon = "wallet"
	IconBank   AccountIcon = "bank"
	IconCash   AccountIcon = "cash"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// TaskStatus is the board column a task sits in.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "inprogress"
	StatusDone       TaskStatus = "done"
)

// CategoryType is the domain a category belongs to.
type CategoryType string

const (
	CategoryProject CategoryType = "project"
	CategoryContact CategoryType = "contact"
)

// Mood is a single mood log reading.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodExcited Mood = "excited"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAnxious Mood = "anxious"
)

// Account is a money container. Balance is derived from InitialBalance and
// the account's transactions.
type Account struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Icon           AccountIcon `json:"icon"`
	InitialBalance Amount      `json:"initialBalance"` // May be negative
}

// Transaction is a single income or expense booked against an account.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      Amount          `json:"amount"` // Always >= 0; Type carries the sign
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	AccountID   string          `json:"accountId"` // References Account.ID
	Date        time.Time       `json:"date"`
}

// Task is owned by exactly one Project.
type Task struct {
	ID       string     `json:"id"`
	Text     string     `json:"text"`
	Status   TaskStatus `json:"status"`
	Deadline *Date      `json:"deadline,omitempty"`
}

// Project groups tasks under a deadline.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Deadline    time.Time `json:"deadline"`
	IsCompleted bool      `json:"isCompleted"`
	CategoryID  string    `json:"categoryId,omitempty"` // Category of type "project"
	ClientID    string    `json:"clientId,omitempty"`   // Contact; may dangle
	Notes       string    `json:"notes,omitempty"`
	Value       *Amount   `json:"value,omitempty"`
	Tasks       []Task    `json:"tasks"`
}

// Contact is a person in the CRM.
type Contact struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Notes      string `json:"notes,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	CategoryID string `json:"categoryId,omitempty"` // Category of type "contact"
}

// Category labels projects or contacts, never both.
type Category struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// MoodLog records how the user felt at a point in time.
type MoodLog struct {
	ID    string    `json:"id"`
	Mood  Mood      `json:"mood"`
	Notes string    `json:"notes"`
	Date  time.Time `json:"date"`
}

// JournalEntry is a free-form dated note.
type JournalEntry struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// AppData is the whole document. One value of AppData is a snapshot.
type AppData struct {
	Accounts       []Account      `json:"accounts"`
	Transactions   []Transaction  `json:"transactions"`
	Projects       []Project      `json:"projects"`
	Contacts       []Contact      `json:"contacts"`
	Categories     []Category     `json:"categories"`
	MoodLogs       []MoodLog      `json:"moodLogs"`
	JournalEntries []JournalEntry `json:"journalEntries"`
}
