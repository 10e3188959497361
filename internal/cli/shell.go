package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// lineReader yields one input line at a time. io.EOF ends the session.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

type scanReader struct {
	sc *bufio.Scanner
}

func (r scanReader) Readline() (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (scanReader) Close() error { return nil }

// NewShellCommand creates the interactive shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands against one open document",
		Long: `Start an interactive session. Every line is a zenith command without
the leading "zenith", run against the same open document, so undo and
redo reach back through the whole session.

Type "exit" or "quit" (or press Ctrl-D) to leave.

Example:
  zenith shell
  zenith> account add --name Checking --balance 1000
  zenith> undo`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.session != nil {
				return NewExitError(ExitCommandError, "already in a shell")
			}
			return rootOpts.withSession(cmd, func(s *Session) error {
				rootOpts.session = s
				defer func() { rootOpts.session = nil }()
				return runShell(rootOpts, cmd)
			})
		},
	}
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	rl, err := newLineReader(cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "start shell", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(cmd.ErrOrStderr(), `Use "exit" or "quit" to leave.`)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		args, err := splitWords(line)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			continue
		}
		if err := runShellLine(opts, cmd, args); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
	}
}

// runShellLine runs args through a fresh command tree sharing opts, and so
// the open session.
func runShellLine(opts *RootOptions, parent *cobra.Command, args []string) error {
	line := newRootCommand(opts)
	line.SetArgs(args)
	line.SetIn(parent.InOrStdin())
	line.SetOut(parent.OutOrStdout())
	line.SetErr(parent.ErrOrStderr())
	return line.ExecuteContext(parent.Context())
}

// newLineReader uses readline on a terminal and plain line scanning
// otherwise, so piped scripts work.
func newLineReader(cmd *cobra.Command) (lineReader, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return readline.NewEx(&readline.Config{
			Prompt:          "zenith> ",
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
			Stdin:           f,
			Stdout:          cmd.OutOrStdout(),
			Stderr:          cmd.ErrOrStderr(),
		})
	}
	return scanReader{sc: bufio.NewScanner(in)}, nil
}

// splitWords splits a command line on spaces. Single and double quotes
// group words; a backslash escapes the next rune outside single quotes.
func splitWords(s string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped, inWord = true, true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote, inWord = r, true
		case r == ' ' || r == '\t':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, errors.New("trailing backslash")
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
