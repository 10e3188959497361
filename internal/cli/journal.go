package cli

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/report"
	"github.com/roach88/zenith/internal/state"
)

// NewJournalCommand creates the journal command group.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries",
	}
	cmd.AddCommand(newJournalAddCommand(rootOpts))
	cmd.AddCommand(newJournalEditCommand(rootOpts))
	cmd.AddCommand(newJournalListCommand(rootOpts))
	cmd.AddCommand(newJournalDeleteCommand(rootOpts))
	return cmd
}

func newJournalAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		title, content string
		date           time.Time
	)
	dateFlag := newDateValue(&date)

	cmd := &cobra.Command{
		Use:           "add",
		Short:         "Write a journal entry",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				if !dateFlag.set {
					date = s.Now().UTC()
				}
				res, err := s.Dispatch(state.AddJournalEntry{Entry: model.JournalEntry{
					Title:   cleanText(title),
					Content: cleanText(content),
					Date:    date,
				}})
				if err != nil {
					return err
				}
				return rootOpts.formatter(cmd).Render(map[string]string{"id": res.ID}, func(w io.Writer) {
					fmt.Fprintf(w, "Added journal entry %s\n", res.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "entry title")
	cmd.Flags().StringVar(&content, "content", "", "entry text")
	cmd.Flags().Var(dateFlag, "date", "entry date (default now)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newJournalEditCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		title, content string
		date           time.Time
	)
	dateFlag := newDateValue(&date)

	cmd := &cobra.Command{
		Use:           "edit <id>",
		Short:         "Change a journal entry",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				e, ok := s.Data().FindJournalEntry(args[0])
				if !ok {
					return notFound("journal entry", args[0])
				}
				if cmd.Flags().Changed("title") {
					e.Title = cleanText(title)
				}
				if cmd.Flags().Changed("content") {
					e.Content = cleanText(content)
				}
				if dateFlag.set {
					e.Date = date
				}
				if _, err := s.Dispatch(state.UpdateJournalEntry{Entry: e}); err != nil {
					return err
				}
				return rootOpts.formatter(cmd).Render(e, func(w io.Writer) {
					fmt.Fprintf(w, "Updated journal entry %s\n", e.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new text")
	cmd.Flags().Var(dateFlag, "date", "new date")

	return cmd
}

func newJournalListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List journal entries, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				entries := slices.Clone(s.Data().JournalEntries)
				slices.SortStableFunc(entries, func(a, b model.JournalEntry) int {
					return b.Date.Compare(a.Date)
				})
				return rootOpts.formatter(cmd).Render(entries, func(w io.Writer) {
					if len(entries) == 0 {
						fmt.Fprintln(w, "No journal entries.")
						return
					}
					for _, e := range entries {
						fmt.Fprintf(w, "%s  %s [%s]\n", day(e.Date), e.Title, e.ID)
						if e.Content != "" {
							fmt.Fprintf(w, "    %s\n", e.Content)
						}
					}
				})
			})
		},
	}
}

func newJournalDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a journal entry",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return deleteEntity(rootOpts, s, cmd, "journal entry", args[0], state.DeleteJournalEntry{ID: args[0]})
			})
		},
	}
}

// NewMoodCommand creates the mood command group.
func NewMoodCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Log how you feel",
	}
	cmd.AddCommand(newMoodLogCommand(rootOpts))
	cmd.AddCommand(newMoodListCommand(rootOpts))
	cmd.AddCommand(newMoodDeleteCommand(rootOpts))
	return cmd
}

func newMoodLogCommand(rootOpts *RootOptions) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "log <mood>",
		Short: "Log today's mood",
		Long: fmt.Sprintf(`Log today's mood. Only one mood can be logged per day.

Moods: %v

Example:
  zenith mood log happy --notes "Shipped it"`, model.Moods),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				now := s.Now()
				if prev, ok := report.MoodForDay(s.Data(), now); ok {
					return NewExitError(ExitFailure,
						fmt.Sprintf("mood already logged today (%s at %s)", prev.Mood, prev.Date.Format("15:04")))
				}
				res, err := s.Dispatch(state.AddMoodLog{Log: model.MoodLog{
					Mood:  model.Mood(args[0]),
					Notes: cleanText(notes),
					Date:  now.UTC(),
				}})
				if err != nil {
					return err
				}
				return rootOpts.formatter(cmd).Render(map[string]string{"id": res.ID}, func(w io.Writer) {
					fmt.Fprintf(w, "Logged %s\n", label(model.Mood(args[0])))
				})
			})
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "what's behind it")

	return cmd
}

func newMoodListCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List logged moods, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				logs := slices.Clone(s.Data().MoodLogs)
				slices.SortStableFunc(logs, func(a, b model.MoodLog) int {
					return b.Date.Compare(a.Date)
				})
				if limit > 0 && len(logs) > limit {
					logs = logs[:limit]
				}
				return rootOpts.formatter(cmd).Render(logs, func(w io.Writer) {
					if len(logs) == 0 {
						fmt.Fprintln(w, "No moods logged.")
						return
					}
					for _, m := range logs {
						line := fmt.Sprintf("%s  %s", day(m.Date), label(m.Mood))
						if m.Notes != "" {
							line += " - " + m.Notes
						}
						fmt.Fprintln(w, line)
					}
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum rows (0 for all)")

	return cmd
}

func newMoodDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a mood log",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return deleteEntity(rootOpts, s, cmd, "mood log", args[0], state.DeleteMoodLog{ID: args[0]})
			})
		},
	}
}
