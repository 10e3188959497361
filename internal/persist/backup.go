package persist

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"

	"github.com/roach88/zenith/internal/model"
	"github.com/roach88/zenith/internal/schema"
	"github.com/roach88/zenith/internal/state"
)

// ImportMode decides how much an import checks before accepting a document.
type ImportMode string

const (
	// ImportStrict requires the document to pass the CUE schema and
	// state.CheckIntegrity.
	ImportStrict ImportMode = "strict"

	// ImportLenient accepts any JSON object that decodes into AppData.
	// Missing collections become empty. Comments and trailing commas are
	// stripped first.
	ImportLenient ImportMode = "lenient"
)

// ParseImportMode parses "strict" or "lenient". Empty means ImportStrict.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(s) {
	case "", ImportStrict:
		return ImportStrict, nil
	case ImportLenient:
		return ImportLenient, nil
	}
	return "", fmt.Errorf("unknown import mode %q, must be strict or lenient", s)
}

// Dispatcher applies actions. *state.Store implements it.
type Dispatcher interface {
	Dispatch(act state.Action) (state.Result, error)
}

// Export writes data as indented JSON.
func Export(w io.Writer, data model.AppData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data.Normalize()); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// BackupFileName returns the name of a backup taken on the day of now, in
// now's location, e.g. "zenith-backup-2026-10-15.json".
func (a *Adapter) BackupFileName(now time.Time) string {
	return fmt.Sprintf("%s-backup-%s.json", a.appName, now.Format("2006-01-02"))
}

// Backup describes a written backup file.
type Backup struct {
	Path string
	Size int64

	// Digest is the hex BLAKE3 hash of the file contents.
	Digest string
}

// ExportFile writes a backup of data into dir. dir is created if needed.
// A backup from earlier the same day is overwritten.
func (a *Adapter) ExportFile(dir string, data model.AppData) (Backup, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Backup{}, fmt.Errorf("export: %w", err)
	}

	var buf bytes.Buffer
	if err := Export(&buf, data); err != nil {
		return Backup{}, err
	}

	path := filepath.Join(dir, a.BackupFileName(a.now()))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Backup{}, fmt.Errorf("export: %w", err)
	}
	b := Backup{Path: path, Size: int64(buf.Len()), Digest: digest(buf.Bytes())}
	a.logger.Info("backup written", "path", path, "bytes", b.Size, "blake3", b.Digest)
	return b, nil
}

// VerifyBackup checks that the file at path still hashes to want.
func VerifyBackup(path, want string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("verify backup: %w", err)
	}
	if got := digest(raw); got != want {
		return fmt.Errorf("verify backup %s: digest %s does not match %s", path, got, want)
	}
	return nil
}

func digest(b []byte) string {
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Decode parses a document in the given mode. Failures are *ImportError.
func Decode(raw []byte, mode ImportMode) (model.AppData, error) {
	return decode(raw, "", mode)
}

func decode(raw []byte, source string, mode ImportMode) (model.AppData, error) {
	fail := func(kind ImportErrorKind, err error) (model.AppData, error) {
		return model.AppData{}, &ImportError{Kind: kind, Source: source, Err: err}
	}

	trimmed := bytes.TrimSpace(raw)
	if mode == ImportLenient {
		trimmed = bytes.TrimSpace(jsonc.ToJSON(trimmed))
	}
	if !json.Valid(trimmed) {
		return fail(ImportParse, fmt.Errorf("not valid JSON"))
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fail(ImportParse, fmt.Errorf("document must be a JSON object"))
	}

	if mode == ImportStrict {
		name := ""
		if source != "" {
			name = filepath.Base(source)
		}
		if err := schema.Validate(trimmed, name); err != nil {
			return fail(ImportSchema, err)
		}
	}

	var data model.AppData
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return fail(ImportParse, err)
	}
	data = data.Normalize()

	if mode == ImportStrict {
		if vs := state.CheckIntegrity(data); len(vs) > 0 {
			msgs := make([]string, len(vs))
			for i, v := range vs {
				msgs[i] = v.String()
			}
			return model.AppData{}, &ImportError{
				Kind:       ImportIntegrity,
				Source:     source,
				Err:        fmt.Errorf("%d problem(s): %s", len(vs), strings.Join(msgs, "; ")),
				Violations: vs,
			}
		}
	}
	return data, nil
}

// Import reads a whole document from r and, if it is acceptable, replaces
// the store's state with one SetData. On failure the store is untouched.
func (a *Adapter) Import(ctx context.Context, r io.Reader, store Dispatcher, mode ImportMode) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return &ImportError{Kind: ImportRead, Err: err}
	}
	return a.apply(ctx, raw, "", store, mode)
}

// ImportFile is Import for a file path.
func (a *Adapter) ImportFile(ctx context.Context, path string, store Dispatcher, mode ImportMode) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return &ImportError{Kind: ImportRead, Source: path, Err: err}
	}
	return a.apply(ctx, raw, path, store, mode)
}

func (a *Adapter) apply(ctx context.Context, raw []byte, source string, store Dispatcher, mode ImportMode) error {
	data, err := decode(raw, source, mode)
	if err != nil {
		a.logger.Warn("import rejected", "source", source, "mode", mode, "error", err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return &ImportError{Kind: ImportRead, Source: source, Err: err}
	}

	res, err := store.Dispatch(state.SetData{Data: data})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	a.logger.Info("import applied",
		"source", source,
		"mode", mode,
		"revision", res.Revision,
		"accounts", len(data.Accounts),
		"transactions", len(data.Transactions),
		"projects", len(data.Projects),
	)
	return nil
}
