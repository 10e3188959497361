package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/state"
)

// NewTaskCommand creates the task command group.
func NewTaskCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the tasks of a project",
	}
	cmd.AddCommand(newTaskAddCommand(rootOpts))
	cmd.AddCommand(newTaskUpdateCommand(rootOpts))
	cmd.AddCommand(newTaskStatusCommand(rootOpts))
	cmd.AddCommand(newTaskDeleteCommand(rootOpts))
	return cmd
}

func newTaskAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		text         string
		status       string
		deadlineFlag deadlineValue
	)

	cmd := &cobra.Command{
		Use:   "add <project>",
		Short: "Add a task to a project",
		Long: `Add a task to a project.

Example:
  zenith task add <project-id> --text "Write spec" --deadline 2026-10-20`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				task := model.Task{Text: cleanText(text), Status: model.TaskStatus(status)}
				task.Deadline = deadlineFlag.value()
				res, err := s.Dispatch(state.AddTask{ProjectID: args[0], Task: task})
				if err != nil {
					return err
				}
				if !res.Changed {
					return notFound("project", args[0])
				}
				return rootOpts.formatter(cmd).Render(map[string]string{"id": res.ID}, func(w io.Writer) {
					fmt.Fprintf(w, "Added task %s\n", res.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "what needs doing")
	cmd.Flags().StringVar(&status, "status", string(model.StatusTodo), fmt.Sprintf("initial status %v", model.TaskStatuses))
	cmd.Flags().Var(&deadlineFlag, "deadline", "task deadline")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newTaskUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		text          string
		deadlineFlag  deadlineValue
		clearDeadline bool
	)

	cmd := &cobra.Command{
		Use:           "update <project> <task>",
		Short:         "Change a task's text or deadline",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				task, err := findTask(s.Data(), args[0], args[1])
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("text") {
					task.Text = cleanText(text)
				}
				switch {
				case clearDeadline:
					task.Deadline = nil
				case deadlineFlag.set:
					task.Deadline = deadlineFlag.value()
				}
				if _, err := s.Dispatch(state.UpdateTask{ProjectID: args[0], Task: task}); err != nil {
					return err
				}
				return rootOpts.formatter(cmd).Render(task, func(w io.Writer) {
					fmt.Fprintf(w, "Updated task %s\n", task.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "new text")
	cmd.Flags().Var(&deadlineFlag, "deadline", "new deadline")
	cmd.Flags().BoolVar(&clearDeadline, "clear-deadline", false, "remove the deadline")
	cmd.MarkFlagsMutuallyExclusive("deadline", "clear-deadline")

	return cmd
}

func newTaskStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <project> <task> <status>",
		Short: "Move a task to another column",
		Long: fmt.Sprintf(`Move a task to another column of the board.

Statuses: %v

Example:
  zenith task status <project-id> <task-id> done`, model.TaskStatuses),
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				if _, err := findTask(s.Data(), args[0], args[1]); err != nil {
					return err
				}
				status := model.TaskStatus(args[2])
				if _, err := s.Dispatch(state.UpdateTaskStatus{ProjectID: args[0], TaskID: args[1], Status: status}); err != nil {
					return err
				}
				return rootOpts.formatter(cmd).Render(map[string]string{"id": args[1], "status": string(status)}, func(w io.Writer) {
					fmt.Fprintf(w, "Task %s is now %s\n", args[1], label(status))
				})
			})
		},
	}
}

func newTaskDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <project> <task>",
		Short:         "Delete a task",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return deleteEntity(rootOpts, s, cmd, "task", args[1], state.DeleteTask{ProjectID: args[0], TaskID: args[1]})
			})
		},
	}
}

// findTask looks a task up by project and task id.
func findTask(data model.AppData, projectID, taskID string) (model.Task, error) {
	p, ok := data.FindProject(projectID)
	if !ok {
		return model.Task{}, notFound("project", projectID)
	}
	t, ok := p.FindTask(taskID)
	if !ok {
		return model.Task{}, notFound("task", taskID)
	}
	return t, nil
}
