package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/zenith/internal/inspire"
)

type inspireView struct {
	Kind inspire.Kind `json:"kind"`
	Text string       `json:"text"`
}

// NewInspireCommand creates the inspire command.
func NewInspireCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspire <quote|verse>",
		Short: "Show a motivational quote or Bible verse",
		Long: `Fetch a motivational quote or Bible verse from the configured
generative text API.

The API key is read from the environment variable named by
inspiration.api_key_env. Without a key, or when the request fails or is
interrupted, a fixed fallback text is shown instead.

Examples:
  zenith inspire quote
  zenith inspire verse --format json`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     []string{string(inspire.Quote), string(inspire.Verse)},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := inspire.ParseKind(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid kind", err)
			}
			return rootOpts.withSession(cmd, func(s *Session) error {
				text := fetchInspiration(cmd, s, kind)
				v := inspireView{Kind: kind, Text: text}
				return rootOpts.formatter(cmd).Render(v, func(w io.Writer) {
					fmt.Fprintln(w, v.Text)
				})
			})
		},
	}
}

// fetchInspiration waits for the request, abandoning it on SIGINT or SIGTERM.
func fetchInspiration(cmd *cobra.Command, s *Session, kind inspire.Kind) string {
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}

	req := s.Inspire.Request(parentCtx, kind)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		s.logger.Info("received signal, cancelling request", "signal", sig)
		req.Cancel()
	case <-req.Done():
	}
	return req.Result()
}
