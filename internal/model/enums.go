package model

import "slices"

// IncomeCategories are the categories an income transaction may use.
var IncomeCategories = []string{"salary", "business", "gifts"}

// ExpenseCategories are the categories an expense transaction may use.
var ExpenseCategories = []string{"personal", "bills", "business"}

// AccountIcons lists every valid AccountIcon in display order.
var AccountIcons = []AccountIcon{IconWallet, IconBank, IconCash}

// TaskStatuses lists every valid TaskStatus in board order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusDone}

// Moods lists every valid Mood in display order.
var Moods = []Mood{MoodHappy, MoodExcited, MoodNeutral, MoodSad, MoodAnxious}

func (i AccountIcon) Valid() bool { return slices.Contains(AccountIcons, i) }

func (t TransactionType) Valid() bool { return t == Income || t == Expense }

func (s TaskStatus) Valid() bool { return slices.Contains(TaskStatuses, s) }

func (c CategoryType) Valid() bool { return c == CategoryProject || c == CategoryContact }

func (m Mood) Valid() bool { return slices.Contains(Moods, m) }

// CategoriesFor returns the transaction categories allowed for t, or nil if
// t is not a valid type.
func CategoriesFor(t TransactionType) []string {
	switch t {
	case Income:
		return IncomeCategories
	case Expense:
		return ExpenseCategories
	default:
		return nil
	}
}

// ValidCategory reports whether category is allowed for a transaction of type t.
func ValidCategory(t TransactionType, category string) bool {
	return slices.Contains(CategoriesFor(t), category)
}
