package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/zenith/internal/state"
)

// DispatchOptions holds flags for the dispatch command.
type DispatchOptions struct {
	*RootOptions
	Args string
}

type dispatchView struct {
	Action   string `json:"action"`
	ID       string `json:"id,omitempty"`
	Changed  bool   `json:"changed"`
	Revision int64  `json:"revision"`
}

// NewDispatchCommand creates the dispatch command.
func NewDispatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DispatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dispatch <action>",
		Short: "Dispatch a raw action against the document",
		Long: fmt.Sprintf(`Dispatch a raw action against the document.

The payload is the action's JSON shape. Unknown fields are rejected.
A no-op (for example deleting an id that does not exist) succeeds with
changed=false.

Actions:
  %s

Example:
  zenith dispatch AddCategory --args '{"category":{"name":"Work","type":"project"}}'`,
			strings.Join(state.ActionNames(), "\n  ")),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return dispatchAction(opts, s, args[0], cmd)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Args, "args", "{}", "action arguments as JSON")

	return cmd
}

func dispatchAction(opts *DispatchOptions, s *Session, name string, cmd *cobra.Command) error {
	// Validate args JSON
	if !json.Valid([]byte(opts.Args)) {
		return NewExitError(ExitCommandError, "invalid --args JSON")
	}

	act, err := state.DecodeAction(name, []byte(opts.Args))
	if err != nil {
		return WrapExitError(ExitCommandError, "decode action", err)
	}

	opts.formatter(cmd).VerboseLog("dispatching %s", act.Name())
	res, err := s.Dispatch(act)
	if err != nil {
		return err
	}

	v := dispatchView{Action: act.Name(), ID: res.ID, Changed: res.Changed, Revision: res.Revision}
	return opts.formatter(cmd).Render(v, func(w io.Writer) {
		switch {
		case !v.Changed:
			fmt.Fprintf(w, "%s: no change\n", v.Action)
		case v.ID != "":
			fmt.Fprintf(w, "%s: ok (id %s)\n", v.Action, v.ID)
		default:
			fmt.Fprintf(w, "%s: ok\n", v.Action)
		}
	})
}
