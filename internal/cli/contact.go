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

type contactView struct {
	model.Contact
	CategoryName string          `json:"categoryName,omitempty"`
	Projects     []model.Project `json:"projects"`
	TotalValue   model.Amount    `json:"totalValue"`
}

// NewContactCommand creates the contact command group.
func NewContactCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contacts and clients",
	}
	cmd.AddCommand(newContactAddCommand(rootOpts))
	cmd.AddCommand(newContactListCommand(rootOpts))
	cmd.AddCommand(newContactShowCommand(rootOpts))
	cmd.AddCommand(newContactDeleteCommand(rootOpts))
	return cmd
}

func newContactAddCommand(rootOpts *RootOptions) *cobra.Command {
	var c model.Contact

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Long: `Add a contact. Only the name is required.

Example:
  zenith contact add --name "Ada Lovelace" --email ada@example.com --category <id>`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				if c.CategoryID != "" {
					if cat, ok := s.Data().FindCategory(c.CategoryID); !ok || cat.Type != model.CategoryContact {
						return notFound("contact category", c.CategoryID)
					}
				}
				contact := model.Contact{
					Name:       cleanText(c.Name),
					Email:      cleanText(c.Email),
					Phone:      cleanText(c.Phone),
					Notes:      cleanText(c.Notes),
					ImageURL:   cleanText(c.ImageURL),
					CategoryID: c.CategoryID,
				}
				res, err := s.Dispatch(state.AddContact{Contact: contact})
				if err != nil {
					return err
				}
				return rootOpts.formatter(cmd).Render(map[string]string{"id": res.ID}, func(w io.Writer) {
					fmt.Fprintf(w, "Added contact %s\n", res.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&c.Name, "name", "", "full name")
	cmd.Flags().StringVar(&c.Email, "email", "", "email address")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&c.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&c.ImageURL, "image-url", "", "avatar image URL")
	cmd.Flags().StringVar(&c.CategoryID, "category", "", "contact category id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newContactListCommand(rootOpts *RootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List contacts",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				contacts := report.ContactsInCategory(s.Data(), category)
				if contacts == nil {
					contacts = []model.Contact{}
				}
				return rootOpts.formatter(cmd).Render(contacts, func(w io.Writer) {
					if len(contacts) == 0 {
						fmt.Fprintln(w, "No contacts.")
						return
					}
					tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE")
					for _, c := range contacts {
						fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone)
					}
					tw.Flush()
				})
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only contacts in this category")

	return cmd
}

func newContactShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Show a contact with their projects",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				data := s.Data()
				c, ok := data.FindContact(args[0])
				if !ok {
					return notFound("contact", args[0])
				}
				v := contactView{
					Contact:    c,
					Projects:   report.ClientProjects(data, c.ID),
					TotalValue: report.ClientValue(data, c.ID),
				}
				if v.Projects == nil {
					v.Projects = []model.Project{}
				}
				if cat, ok := data.FindCategory(c.CategoryID); ok {
					v.CategoryName = cat.Name
				}
				return rootOpts.formatter(cmd).Render(v, func(w io.Writer) {
					writeContact(w, v)
				})
			})
		},
	}
}

func writeContact(w io.Writer, v contactView) {
	fmt.Fprintf(w, "%s (%s)\n", v.Name, v.ID)
	for _, f := range []struct{ name, value string }{
		{"Email", v.Email},
		{"Phone", v.Phone},
		{"Category", v.CategoryName},
		{"Notes", v.Notes},
	} {
		if f.value != "" {
			fmt.Fprintf(w, "  %s: %s\n", f.name, f.value)
		}
	}
	fmt.Fprintf(w, "  Projects: %d, total value %s\n", len(v.Projects), money(v.TotalValue))
	for _, p := range v.Projects {
		fmt.Fprintf(w, "  - %s [%s]\n", p.Name, p.ID)
	}
}

func newContactDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a contact (projects keep their client reference)",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return deleteEntity(rootOpts, s, cmd, "contact", args[0], state.DeleteContact{ID: args[0]})
			})
		},
	}
}
