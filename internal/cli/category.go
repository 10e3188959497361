package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/state"
)

// NewCategoryCommand creates the category command group.
func NewCategoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage project and contact categories",
	}
	cmd.AddCommand(newCategoryAddCommand(rootOpts))
	cmd.AddCommand(newCategoryListCommand(rootOpts))
	cmd.AddCommand(newCategoryDeleteCommand(rootOpts))
	return cmd
}

func newCategoryAddCommand(rootOpts *RootOptions) *cobra.Command {
	var name, typ string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		Long: `Add a category. A category belongs to projects or to contacts, never both.

Example:
  zenith category add --name VIP --type contact`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				res, err := s.Dispatch(state.AddCategory{Category: model.Category{
					Name: cleanText(name),
					Type: model.CategoryType(typ),
				}})
				if err != nil {
					return err
				}
				return rootOpts.formatter(cmd).Render(map[string]string{"id": res.ID}, func(w io.Writer) {
					fmt.Fprintf(w, "Added category %s\n", res.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&typ, "type", "", "project or contact")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newCategoryListCommand(rootOpts *RootOptions) *cobra.Command {
	var typ string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List categories",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				cats := []model.Category{}
				for _, c := range s.Data().Categories {
					if typ == "" || string(c.Type) == typ {
						cats = append(cats, c)
					}
				}
				return rootOpts.formatter(cmd).Render(cats, func(w io.Writer) {
					if len(cats) == 0 {
						fmt.Fprintln(w, "No categories.")
						return
					}
					tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tNAME\tTYPE")
					for _, c := range cats {
						fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, label(c.Type))
					}
					tw.Flush()
				})
			})
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "only project or contact categories")

	return cmd
}

func newCategoryDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a category and clear it from projects or contacts",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return deleteEntity(rootOpts, s, cmd, "category", args[0], state.DeleteCategory{ID: args[0]})
			})
		},
	}
}
