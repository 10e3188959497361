package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/report"
	"github.com/roach88/zenith/internal/state"
)

// TxAddOptions holds flags for the tx add command.
type TxAddOptions struct {
	*RootOptions
	Account     string
	Amount      model.Amount
	Type        string
	Category    string
	Description string
	Date        time.Time
}

// TxListOptions holds flags for the tx list command.
type TxListOptions struct {
	*RootOptions
	Account string
	Limit   int
	Window  window
}

// NewTxCommand creates the tx command group.
func NewTxCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transaction"},
		Short:   "Record and review income and expenses",
	}
	cmd.AddCommand(newTxAddCommand(rootOpts))
	cmd.AddCommand(newTxListCommand(rootOpts))
	cmd.AddCommand(newTxDeleteCommand(rootOpts))
	return cmd
}

func newTxAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TxAddOptions{RootOptions: rootOpts}
	date := newDateValue(&opts.Date)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: fmt.Sprintf(`Record an income or expense against an account.

The amount is never negative; --type carries the sign. Categories:
  income:  %v
  expense: %v

Example:
  zenith tx add --account <id> --type expense --amount 5 --category personal --description Coffee`,
			model.IncomeCategories, model.ExpenseCategories),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				if !date.set {
					opts.Date = s.Now().UTC()
				}
				return addTx(opts, s, cmd)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Account, "account", "", "account id")
	cmd.Flags().Var(newAmountValue(&opts.Amount), "amount", "amount (not negative)")
	cmd.Flags().StringVar(&opts.Type, "type", string(model.Expense), "income or expense")
	cmd.Flags().StringVar(&opts.Category, "category", "", "transaction category")
	cmd.Flags().StringVar(&opts.Description, "description", "", "what it was for")
	cmd.Flags().Var(date, "date", "date of the transaction (default now)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func addTx(opts *TxAddOptions, s *Session, cmd *cobra.Command) error {
	if _, ok := s.Data().FindAccount(opts.Account); !ok {
		return notFound("account", opts.Account)
	}
	res, err := s.Dispatch(state.AddTransaction{Transaction: model.Transaction{
		Description: cleanText(opts.Description),
		Amount:      opts.Amount,
		Type:        model.TransactionType(opts.Type),
		Category:    opts.Category,
		AccountID:   opts.Account,
		Date:        opts.Date,
	}})
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Render(map[string]string{"id": res.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "Added transaction %s\n", res.ID)
	})
}

func newTxListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TxListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Long: `List transactions, newest first.

With --from or --to only transactions in that inclusive day window are shown.

Examples:
  zenith tx list --limit 5
  zenith tx list --account <id> --from 2026-10-01 --to 2026-10-31`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return listTx(opts, s, cmd)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Account, "account", "", "only this account")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum rows (0 for all)")
	addWindowFlags(cmd.Flags(), &opts.Window)

	return cmd
}

func listTx(opts *TxListOptions, s *Session, cmd *cobra.Command) error {
	data := s.Data()

	var txs []model.Transaction
	if opts.Window.given() {
		from, to := opts.Window.resolve(time.Time{}, 0)
		if !opts.Window.toSet.set {
			to = s.Now()
		}
		for _, tx := range report.TransactionsBetween(data, from, to) {
			if opts.Account == "" || tx.AccountID == opts.Account {
				txs = append(txs, tx)
			}
		}
		if opts.Limit > 0 && len(txs) > opts.Limit {
			txs = txs[:opts.Limit]
		}
	} else {
		txs = report.RecentTransactions(data, opts.Account, opts.Limit)
	}
	if txs == nil {
		txs = []model.Transaction{}
	}

	return opts.formatter(cmd).Render(txs, func(w io.Writer) {
		if len(txs) == 0 {
			fmt.Fprintln(w, "No transactions.")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tCATEGORY\tAMOUNT")
		for _, tx := range txs {
			sign := "+"
			if tx.Type == model.Expense {
				sign = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%s\n", tx.ID, day(tx.Date), tx.Description, label(tx.Category), sign, money(tx.Amount))
		}
		tw.Flush()
	})
}

func newTxDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a transaction",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return deleteEntity(rootOpts, s, cmd, "transaction", args[0], state.DeleteTransaction{ID: args[0]})
			})
		},
	}
}
