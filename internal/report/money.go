package report

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/roach88/zenith/internal/model"
)

// AccountTotals are the money figures for one account or for all of them.
type AccountTotals struct {
	Balance  model.Amount
	Income   model.Amount
	Expenses model.Amount
}

// AccountBalance pairs an account with its current balance.
type AccountBalance struct {
	Account model.Account
	Balance model.Amount
}

// Totals sums the initial balance and the transactions of accountID. An
// empty accountID covers every account.
//
// Balance = initial balance + income - expenses.
func Totals(data model.AppData, accountID string) AccountTotals {
	initial := decimal.Zero
	for _, a := range data.Accounts {
		if accountID == "" || a.ID == accountID {
			initial = initial.Add(a.InitialBalance.Decimal)
		}
	}

	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range data.Transactions {
		if accountID != "" && tx.AccountID != accountID {
			continue
		}
		switch tx.Type {
		case model.Income:
			income = income.Add(tx.Amount.Decimal)
		case model.Expense:
			expenses = expenses.Add(tx.Amount.Decimal)
		}
	}

	return AccountTotals{
		Balance:  model.AmountOf(initial.Add(income).Sub(expenses)),
		Income:   model.AmountOf(income),
		Expenses: model.AmountOf(expenses),
	}
}

// Balance is Totals(data, accountID).Balance.
func Balance(data model.AppData, accountID string) model.Amount {
	return Totals(data, accountID).Balance
}

// Balances returns every account with its balance, in storage order.
func Balances(data model.AppData) []AccountBalance {
	out := make([]AccountBalance, len(data.Accounts))
	for i, a := range data.Accounts {
		out[i] = AccountBalance{Account: a, Balance: Balance(data, a.ID)}
	}
	return out
}

// RecentTransactions returns the transactions of accountID (all when empty),
// newest first. limit <= 0 returns them all.
func RecentTransactions(data model.AppData, accountID string, limit int) []model.Transaction {
	var out []model.Transaction
	for _, tx := range data.Transactions {
		if accountID == "" || tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	sortNewestFirst(out)
	return truncate(out, limit)
}

// TransactionsBetween returns transactions dated on any calendar day from
// from through to, newest first.
func TransactionsBetween(data model.AppData, from, to time.Time) []model.Transaction {
	start, end := dayWindow(from, to)
	var out []model.Transaction
	for _, tx := range data.Transactions {
		if inWindow(tx.Date, start, end) {
			out = append(out, tx)
		}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(txs []model.Transaction) {
	slices.SortStableFunc(txs, func(a, b model.Transaction) int {
		return b.Date.Compare(a.Date)
	})
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
