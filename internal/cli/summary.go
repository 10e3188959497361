package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/report"
)

type summaryView struct {
	Balance      model.Amount        `json:"balance"`
	Income       model.Amount        `json:"income"`
	Expenses     model.Amount        `json:"expenses"`
	Upcoming     []projectView       `json:"upcoming"`
	TodaysTasks  []todayTaskView     `json:"todaysTasks"`
	Recent       []model.Transaction `json:"recentTransactions"`
	TodaysMood   *model.MoodLog      `json:"todaysMood,omitempty"`
	OpenProjects int                 `json:"openProjects"`
}

type todayTaskView struct {
	ProjectID   string     `json:"projectId"`
	ProjectName string     `json:"projectName"`
	Task        model.Task `json:"task"`
}

type eventView struct {
	Date      time.Time        `json:"date"`
	Kind      report.EventKind `json:"kind"`
	Title     string           `json:"title"`
	ProjectID string           `json:"projectId"`
	TaskID    string           `json:"taskId,omitempty"`
}

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	var upcoming, recent int

	cmd := &cobra.Command{
		Use:           "summary",
		Aliases:       []string{"dashboard"},
		Short:         "Show balances, deadlines, today's tasks and recent spending",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				now := s.Now()
				v := buildSummary(s.Data(), now, upcoming, recent)
				return rootOpts.formatter(cmd).Render(v, func(w io.Writer) {
					writeSummary(w, v, now)
				})
			})
		},
	}

	cmd.Flags().IntVar(&upcoming, "upcoming", 3, "number of upcoming deadlines")
	cmd.Flags().IntVar(&recent, "recent", 5, "number of recent transactions")

	return cmd
}

func buildSummary(data model.AppData, now time.Time, upcoming, recent int) summaryView {
	totals := report.Totals(data, "")
	v := summaryView{
		Balance:     totals.Balance,
		Income:      totals.Income,
		Expenses:    totals.Expenses,
		Upcoming:    []projectView{},
		TodaysTasks: []todayTaskView{},
		Recent:      report.RecentTransactions(data, "", recent),
	}
	if v.Recent == nil {
		v.Recent = []model.Transaction{}
	}
	for _, p := range report.UpcomingDeadlines(data, now, upcoming) {
		v.Upcoming = append(v.Upcoming, newProjectView(data, p))
	}
	for _, ref := range report.TodaysTasks(data, now) {
		v.TodaysTasks = append(v.TodaysTasks, todayTaskView{ProjectID: ref.ProjectID, ProjectName: ref.ProjectName, Task: ref.Task})
	}
	if m, ok := report.MoodForDay(data, now); ok {
		v.TodaysMood = &m
	}
	for _, p := range data.Projects {
		if !p.IsCompleted {
			v.OpenProjects++
		}
	}
	return v
}

func writeSummary(w io.Writer, v summaryView, now time.Time) {
	fmt.Fprintf(w, "Balance: %s (income %s, expenses %s)\n", money(v.Balance), money(v.Income), money(v.Expenses))
	fmt.Fprintf(w, "Open projects: %d\n", v.OpenProjects)
	if v.TodaysMood != nil {
		fmt.Fprintf(w, "Today's mood: %s\n", label(v.TodaysMood.Mood))
	}

	fmt.Fprintln(w, "\nUpcoming deadlines")
	if len(v.Upcoming) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, p := range v.Upcoming {
		fmt.Fprintf(w, "  %s - %s (%d%%)\n", p.Name, relative(p.Deadline, now), p.Percent)
	}

	fmt.Fprintln(w, "\nToday's tasks")
	if len(v.TodaysTasks) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, t := range v.TodaysTasks {
		fmt.Fprintf(w, "  %s (%s) [%s]\n", t.Task.Text, t.ProjectName, label(t.Task.Status))
	}

	fmt.Fprintln(w, "\nRecent transactions")
	if len(v.Recent) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, tx := range v.Recent {
		sign := "+"
		if tx.Type == model.Expense {
			sign = "-"
		}
		fmt.Fprintf(w, "  %s %s %s%s\n", day(tx.Date), tx.Description, sign, money(tx.Amount))
	}
}

// NewCalendarCommand creates the calendar command.
func NewCalendarCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		win  window
		days int
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List project and task deadlines by day",
		Long: `List the deadlines of open projects and unfinished tasks in a day window.

Without --from the window starts today; without --to it spans --days days.

Example:
  zenith calendar --from 2026-10-01 --to 2026-10-31`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				from, to := win.resolve(s.Now(), time.Duration(days)*24*time.Hour)
				events := []eventView{}
				for _, e := range report.CalendarEvents(s.Data(), from, to) {
					events = append(events, eventView(e))
				}
				return rootOpts.formatter(cmd).Render(events, func(w io.Writer) {
					if len(events) == 0 {
						fmt.Fprintf(w, "Nothing due %s to %s.\n", day(from), day(to))
						return
					}
					last := ""
					for _, e := range events {
						if d := day(e.Date); d != last {
							fmt.Fprintln(w, d)
							last = d
						}
						fmt.Fprintf(w, "  [%s] %s\n", label(e.Kind), e.Title)
					}
				})
			})
		},
	}

	addWindowFlags(cmd.Flags(), &win)
	cmd.Flags().IntVar(&days, "days", 30, "window length when --to is not given")

	return cmd
}
