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

// ProjectAddOptions holds flags for the project add command.
type ProjectAddOptions struct {
	*RootOptions
	Name     string
	Deadline time.Time
	Category string
	Client   string
	Notes    string
	Value    model.Amount
}

type projectView struct {
	model.Project
	Done         int    `json:"done"`
	Total        int    `json:"total"`
	Percent      int    `json:"percent"`
	CategoryName string `json:"categoryName,omitempty"`
	ClientName   string `json:"clientName,omitempty"`
}

func newProjectView(data model.AppData, p model.Project) projectView {
	pr := report.Progress(p)
	v := projectView{Project: p, Done: pr.Done, Total: pr.Total, Percent: pr.Percent()}
	if c, ok := data.FindCategory(p.CategoryID); ok {
		v.CategoryName = c.Name
	}
	v.ClientName, _ = report.ClientName(data, p)
	return v
}

// NewProjectCommand creates the project command group.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectAddCommand(rootOpts))
	cmd.AddCommand(newProjectListCommand(rootOpts))
	cmd.AddCommand(newProjectShowCommand(rootOpts))
	cmd.AddCommand(newProjectCompleteCommand(rootOpts))
	cmd.AddCommand(newProjectDeleteCommand(rootOpts))
	return cmd
}

func newProjectAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProjectAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project",
		Long: `Add a project with a deadline. Tasks are added with "zenith task add".

Example:
  zenith project add --name Launch --deadline 2026-10-22 --value 1500`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return addProject(opts, s, cmd)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "project name")
	cmd.Flags().Var(newDateValue(&opts.Deadline), "deadline", "project deadline")
	cmd.Flags().StringVar(&opts.Category, "category", "", "project category id")
	cmd.Flags().StringVar(&opts.Client, "client", "", "client contact id")
	cmd.Flags().StringVar(&opts.Notes, "notes", "", "free-form notes")
	cmd.Flags().Var(newAmountValue(&opts.Value), "value", "monetary value of the project")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("deadline")

	return cmd
}

func addProject(opts *ProjectAddOptions, s *Session, cmd *cobra.Command) error {
	data := s.Data()
	if opts.Category != "" {
		if c, ok := data.FindCategory(opts.Category); !ok || c.Type != model.CategoryProject {
			return notFound("project category", opts.Category)
		}
	}
	if opts.Client != "" {
		if _, ok := data.FindContact(opts.Client); !ok {
			return notFound("contact", opts.Client)
		}
	}

	p := model.Project{
		Name:       cleanText(opts.Name),
		Deadline:   opts.Deadline,
		CategoryID: opts.Category,
		ClientID:   opts.Client,
		Notes:      cleanText(opts.Notes),
		Tasks:      []model.Task{},
	}
	if cmd.Flags().Changed("value") {
		v := opts.Value
		p.Value = &v
	}

	res, err := s.Dispatch(state.AddProject{Project: p})
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Render(map[string]string{"id": res.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "Added project %s\n", res.ID)
	})
}

func newProjectListCommand(rootOpts *RootOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List projects with progress",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				data := s.Data()
				now := s.Now()
				views := []projectView{}
				for _, p := range report.ProjectsInCategory(data, category) {
					views = append(views, newProjectView(data, p))
				}
				return rootOpts.formatter(cmd).Render(views, func(w io.Writer) {
					if len(views) == 0 {
						fmt.Fprintln(w, "No projects.")
						return
					}
					tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tNAME\tPROGRESS\tDEADLINE\tSTATE")
					for _, v := range views {
						st := "Open"
						if v.IsCompleted {
							st = "Completed"
						}
						fmt.Fprintf(tw, "%s\t%s\t%d/%d (%d%%)\t%s\t%s\n",
							v.ID, v.Name, v.Done, v.Total, v.Percent, relative(v.Deadline, now), st)
					}
					tw.Flush()
				})
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only projects in this category")

	return cmd
}

func newProjectShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Show a project and its task board",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				data := s.Data()
				p, ok := data.FindProject(args[0])
				if !ok {
					return notFound("project", args[0])
				}
				v := newProjectView(data, p)
				now := s.Now()
				return rootOpts.formatter(cmd).Render(v, func(w io.Writer) {
					writeProject(w, v, now)
				})
			})
		},
	}
}

func writeProject(w io.Writer, v projectView, now time.Time) {
	fmt.Fprintf(w, "%s (%s)\n", v.Name, v.ID)
	fmt.Fprintf(w, "  Deadline: %s (%s)\n", day(v.Deadline), relative(v.Deadline, now))
	fmt.Fprintf(w, "  Progress: %d/%d tasks done (%d%%)\n", v.Done, v.Total, v.Percent)
	if v.IsCompleted {
		fmt.Fprintln(w, "  Completed")
	}
	if v.CategoryName != "" {
		fmt.Fprintf(w, "  Category: %s\n", v.CategoryName)
	}
	if v.ClientName != "" {
		fmt.Fprintf(w, "  Client: %s\n", v.ClientName)
	}
	if v.Value != nil {
		fmt.Fprintf(w, "  Value: %s\n", money(*v.Value))
	}
	if v.Notes != "" {
		fmt.Fprintf(w, "  Notes: %s\n", v.Notes)
	}

	board := report.TasksByStatus(v.Project)
	for _, status := range model.TaskStatuses {
		fmt.Fprintf(w, "\n%s (%d)\n", label(status), len(board[status]))
		for _, t := range board[status] {
			line := fmt.Sprintf("  - %s [%s]", t.Text, t.ID)
			if t.Deadline != nil {
				line += fmt.Sprintf(" due %s", relative(t.Deadline.In(now.Location()), now))
			}
			fmt.Fprintln(w, line)
		}
	}
}

func newProjectCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	var reopen bool

	cmd := &cobra.Command{
		Use:           "complete <id>",
		Short:         "Mark a project completed",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				p, ok := s.Data().FindProject(args[0])
				if !ok {
					return notFound("project", args[0])
				}
				p.IsCompleted = !reopen
				if _, err := s.Dispatch(state.UpdateProject{Project: p}); err != nil {
					return err
				}
				verb := "Completed"
				if reopen {
					verb = "Reopened"
				}
				return rootOpts.formatter(cmd).Render(map[string]any{"id": p.ID, "isCompleted": p.IsCompleted}, func(w io.Writer) {
					fmt.Fprintf(w, "%s project %s\n", verb, p.ID)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&reopen, "reopen", false, "mark the project open again")

	return cmd
}

func newProjectDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a project and its tasks",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return deleteEntity(rootOpts, s, cmd, "project", args[0], state.DeleteProject{ID: args[0]})
			})
		},
	}
}
