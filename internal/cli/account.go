package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/report"
	"github.com/roach88/zenith/internal/state"
)

// AccountAddOptions holds flags for the account add command.
type AccountAddOptions struct {
	*RootOptions
	Name    string
	Icon    string
	Balance model.Amount
}

type accountView struct {
	model.Account
	Balance model.Amount `json:"balance"`
}

// NewAccountCommand creates the account command group.
func NewAccountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage money accounts",
	}
	cmd.AddCommand(newAccountAddCommand(rootOpts))
	cmd.AddCommand(newAccountListCommand(rootOpts))
	cmd.AddCommand(newAccountDeleteCommand(rootOpts))
	return cmd
}

func newAccountAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AccountAddOptions{RootOptions: rootOpts, Balance: model.NewAmount(0)}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		Long: `Add an account with an opening balance. The balance may be negative.

Example:
  zenith account add --name Cash --icon cash --balance 1000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return addAccount(opts, s, cmd)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "account name")
	cmd.Flags().StringVar(&opts.Icon, "icon", string(model.IconWallet), fmt.Sprintf("icon %v", model.AccountIcons))
	cmd.Flags().Var(newAmountValue(&opts.Balance), "balance", "opening balance")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func addAccount(opts *AccountAddOptions, s *Session, cmd *cobra.Command) error {
	res, err := s.Dispatch(state.AddAccount{Account: model.Account{
		Name:           cleanText(opts.Name),
		Icon:           model.AccountIcon(opts.Icon),
		InitialBalance: opts.Balance,
	}})
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Render(map[string]string{"id": res.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "Added account %s\n", res.ID)
	})
}

func newAccountListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List accounts with their balances",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				data := s.Data()
				views := []accountView{}
				for _, b := range report.Balances(data) {
					views = append(views, accountView{Account: b.Account, Balance: b.Balance})
				}
				total := report.Totals(data, "")
				return rootOpts.formatter(cmd).Render(views, func(w io.Writer) {
					if len(views) == 0 {
						fmt.Fprintln(w, "No accounts.")
						return
					}
					tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tNAME\tICON\tBALANCE")
					for _, v := range views {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Name, label(v.Icon), money(v.Balance))
					}
					fmt.Fprintf(tw, "\t\tTotal\t%s\n", money(total.Balance))
					tw.Flush()
				})
			})
		},
	}
}

func newAccountDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete an account and all of its transactions",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return deleteEntity(rootOpts, s, cmd, "account", args[0], state.DeleteAccount{ID: args[0]})
			})
		},
	}
}

// deleteEntity dispatches a delete and reports a no-op as not found.
func deleteEntity(opts *RootOptions, s *Session, cmd *cobra.Command, kind, id string, act state.Action) error {
	res, err := s.Dispatch(act)
	if err != nil {
		return err
	}
	if !res.Changed {
		return notFound(kind, id)
	}
	return opts.formatter(cmd).Render(map[string]string{"deleted": id}, func(w io.Writer) {
		fmt.Fprintf(w, "Deleted %s %s\n", kind, id)
	})
}
