package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type historyView struct {
	Changed  bool  `json:"changed"`
	Revision int64 `json:"revision"`
	Undo     int   `json:"undo"`
	Redo     int   `json:"redo"`
}

// NewUndoCommand creates the undo command.
func NewUndoCommand(rootOpts *RootOptions) *cobra.Command {
	return newHistoryCommand(rootOpts, "undo", "Revert the last change", "Nothing to undo",
		func(s *Session) bool { return s.Store.Undo() })
}

// NewRedoCommand creates the redo command.
func NewRedoCommand(rootOpts *RootOptions) *cobra.Command {
	return newHistoryCommand(rootOpts, "redo", "Reapply the last undone change", "Nothing to redo",
		func(s *Session) bool { return s.Store.Redo() })
}

func newHistoryCommand(rootOpts *RootOptions, use, short, empty string, step func(*Session) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

History lives in memory, so undo and redo only reach back to changes made
in the same process. Use them inside "zenith shell".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				changed := step(s)
				undo, redo := s.Store.HistoryDepth()
				v := historyView{Changed: changed, Revision: s.Store.Revision(), Undo: undo, Redo: redo}
				return rootOpts.formatter(cmd).Render(v, func(w io.Writer) {
					if !v.Changed {
						fmt.Fprintln(w, empty)
						return
					}
					fmt.Fprintf(w, "Done (%d to undo, %d to redo)\n", v.Undo, v.Redo)
				})
			})
		},
	}
}
