package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/roach88/zenith/internal/persist"
)

// BackupOptions holds flags for the backup command.
type BackupOptions struct {
	*RootOptions
	Dir string
}

// RestoreOptions holds flags for the restore command.
type RestoreOptions struct {
	*RootOptions
	Lenient bool
	Strict  bool
}

type backupView struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	Digest string `json:"digest"`
}

// NewBackupCommand creates the backup command.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BackupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export the whole document to a JSON file",
		Long: `Export the whole document to <app>-backup-YYYY-MM-DD.json.

The file's BLAKE3 digest is printed so the backup can be checked later with
"zenith backup verify".

Examples:
  zenith backup
  zenith backup --dir ~/backups`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return writeBackup(opts, s, cmd)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "directory to write into (default from config)")
	cmd.AddCommand(newBackupVerifyCommand(rootOpts))

	return cmd
}

func writeBackup(opts *BackupOptions, s *Session, cmd *cobra.Command) error {
	dir := opts.Dir
	if dir == "" {
		dir = s.Config.Backup.Dir
	}
	b, err := s.Adapter.ExportFile(dir, s.Data())
	if err != nil {
		return WrapExitError(ExitFailure, "backup failed", err)
	}

	v := backupView{Path: b.Path, Size: b.Size, Digest: b.Digest}
	return opts.formatter(cmd).Render(v, func(w io.Writer) {
		fmt.Fprintf(w, "Wrote %s (%s)\n", v.Path, humanize.Bytes(uint64(v.Size)))
		fmt.Fprintf(w, "blake3 %s\n", v.Digest)
	})
}

func newBackupVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "verify <file> <digest>",
		Short:         "Check a backup file against its digest",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := persist.VerifyBackup(args[0], args[1]); err != nil {
				return WrapExitError(ExitFailure, "backup changed or unreadable", err)
			}
			return rootOpts.formatter(cmd).Render(map[string]any{"path": args[0], "ok": true}, func(w io.Writer) {
				fmt.Fprintf(w, "%s: OK\n", args[0])
			})
		},
	}
}

// NewRestoreCommand creates the restore command.
func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RestoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the document with a backup",
		Long: `Replace the whole document with the contents of a backup file.

Strict mode (the default unless backup.import_mode says otherwise) checks
the file against the document schema and rejects broken references.
Lenient mode accepts any JSON object, tolerating comments, trailing commas
and missing collections.

The current document is left untouched if the file is rejected.

Exit codes:
  0 - Document replaced
  1 - File rejected
  2 - Command error

Examples:
  zenith restore zenith-backup-2026-10-15.json
  zenith restore old-export.json --lenient`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withSession(cmd, func(s *Session) error {
				return restoreBackup(opts, s, args[0], cmd)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Lenient, "lenient", false, "accept partial or hand-edited files")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "require a schema-valid, consistent file")
	cmd.MarkFlagsMutuallyExclusive("lenient", "strict")

	return cmd
}

func restoreBackup(opts *RestoreOptions, s *Session, path string, cmd *cobra.Command) error {
	mode, err := persist.ParseImportMode(s.Config.Backup.ImportMode)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid import mode", err)
	}
	switch {
	case opts.Lenient:
		mode = persist.ImportLenient
	case opts.Strict:
		mode = persist.ImportStrict
	}

	f := opts.formatter(cmd)
	f.VerboseLog("restoring %s (%s)", path, mode)

	if err := s.Adapter.ImportFile(cmd.Context(), path, s.Store, mode); err != nil {
		return reportImportError(f, err)
	}

	data := s.Data()
	counts := map[string]int{
		"accounts":       len(data.Accounts),
		"transactions":   len(data.Transactions),
		"projects":       len(data.Projects),
		"contacts":       len(data.Contacts),
		"categories":     len(data.Categories),
		"moodLogs":       len(data.MoodLogs),
		"journalEntries": len(data.JournalEntries),
	}
	return f.Render(counts, func(w io.Writer) {
		fmt.Fprintf(w, "Restored %s: %d accounts, %d transactions, %d projects, %d contacts\n",
			path, len(data.Accounts), len(data.Transactions), len(data.Projects), len(data.Contacts))
	})
}

// reportImportError writes the rejection (with every integrity violation)
// and returns the matching exit error.
func reportImportError(f *OutputFormatter, err error) error {
	var ie *persist.ImportError
	if !errors.As(err, &ie) {
		return WrapExitError(ExitFailure, "restore failed", err)
	}

	var details []string
	for _, v := range ie.Violations {
		details = append(details, v.String())
	}

	if f.Format == "json" {
		if encErr := f.Error("IMPORT_"+string(ie.Kind), err.Error(), details); encErr != nil {
			return encErr
		}
	} else {
		for _, d := range details {
			fmt.Fprintf(f.Writer, "  %s\n", d)
		}
	}
	return WrapExitError(ExitFailure, "restore rejected", err)
}
